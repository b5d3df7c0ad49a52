package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/internal/repositories"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// RecordService is the versioned record store: one current row per record
// identity plus an ordered, append-only log of every prior state. Mutations
// are gated on the permission workflow via CanEdit.
type RecordService struct {
	users       repositories.UserRepositoryContract
	records     repositories.MedicalRecordRepositoryContract
	permissions *PermissionService
}

func NewRecordService(
	users repositories.UserRepositoryContract,
	records repositories.MedicalRecordRepositoryContract,
	permissions *PermissionService,
) *RecordService {
	return &RecordService{users: users, records: records, permissions: permissions}
}

type CreateRecordResult struct {
	Record *models.MedicalRecord
	Created bool
}

// Create opens a patient's record. Policy: one record per patient — when the
// patient already has one, that record is returned untouched instead of
// erroring (get-or-create). Doctor name and hospital fields come from the
// acting doctor's profile, never from the request body.
func (s *RecordService) Create(ctx context.Context, caller models.Caller, input models.CreateRecordInput) (*CreateRecordResult, error) {
	if !caller.IsDoctor {
		return nil, fmt.Errorf("%w: only doctors can create medical records", ErrNotAuthorized)
	}

	patient, err := s.users.FindByEmail(ctx, input.PatientEmail)
	if err != nil {
		return nil, err
	}
	if patient == nil || !patient.IsPatient {
		return nil, fmt.Errorf("%w: no patient with this email", ErrNotFound)
	}

	existing, err := s.records.FindByPatientID(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &CreateRecordResult{Record: &existing[0], Created: false}, nil
	}

	doctor, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("%w: unknown doctor account", ErrNotAuthorized)
	}

	date := input.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	record := &models.MedicalRecord{
		PatientID:           patient.ID,
		Date:                date,
		DoctorName:          doctor.FullName(),
		HospitalName:        doctor.HospitalName,
		HospitalAddress:     doctor.HospitalAddress,
		MedicalHistory:      input.MedicalHistory,
		Vitals:              input.Vitals,
		CurrentVisitDetails: input.CurrentVisitDetails,
		TreatmentPlan:       input.TreatmentPlan,
		ReferralInfo:        input.ReferralInfo,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	return &CreateRecordResult{Record: record, Created: true}, nil
}

type UpdateRecordResult struct {
	Record        *models.MedicalRecord
	ChangedFields []string
}

// NoChanges reports whether the submission matched the current state exactly.
func (r *UpdateRecordResult) NoChanges() bool { return len(r.ChangedFields) == 0 }

// Update applies a partial edit. The caller must be a doctor holding an
// approved, edit-enabled permission for this record. Fields absent from the
// input are untouched; identity and audit fields are never diffed. When
// nothing differs, no write and no history row happen at all. Otherwise the
// prior state is snapshotted and the merged state becomes current, with
// doctor_name and date refreshed to reflect this edit — both inside one
// transaction.
func (s *RecordService) Update(ctx context.Context, caller models.Caller, recordID uint64, input models.UpdateRecordInput) (*UpdateRecordResult, error) {
	if !caller.IsDoctor {
		return nil, fmt.Errorf("%w: only doctors can update medical records", ErrNotAuthorized)
	}

	record, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: medical record %d", ErrNotFound, recordID)
	}

	allowed, err := s.permissions.CanEdit(ctx, caller.ID, record.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: you have no edit permission for this record", ErrNotAuthorized)
	}

	var changed []string
	if input.HospitalName != nil && *input.HospitalName != record.HospitalName {
		changed = append(changed, "hospital_name")
	}
	if input.HospitalAddress != nil && *input.HospitalAddress != record.HospitalAddress {
		changed = append(changed, "hospital_address")
	}
	if input.MedicalHistory != nil && !jsonMapsEqual(*input.MedicalHistory, record.MedicalHistory) {
		changed = append(changed, "medical_history")
	}
	if input.Vitals != nil && !jsonMapsEqual(*input.Vitals, record.Vitals) {
		changed = append(changed, "vitals")
	}
	if input.CurrentVisitDetails != nil && !jsonMapsEqual(*input.CurrentVisitDetails, record.CurrentVisitDetails) {
		changed = append(changed, "current_visit_details")
	}
	if input.TreatmentPlan != nil && !jsonMapsEqual(*input.TreatmentPlan, record.TreatmentPlan) {
		changed = append(changed, "treatment_plan")
	}
	if input.ReferralInfo != nil && !jsonMapsEqual(*input.ReferralInfo, record.ReferralInfo) {
		changed = append(changed, "referral_info")
	}
	if len(changed) == 0 {
		return &UpdateRecordResult{Record: record, ChangedFields: []string{}}, nil
	}

	doctor, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("%w: unknown doctor account", ErrNotAuthorized)
	}

	now := time.Now()
	snapshot := record.Snapshot(caller.ID, now)

	for _, field := range changed {
		switch field {
		case "hospital_name":
			record.HospitalName = *input.HospitalName
		case "hospital_address":
			record.HospitalAddress = *input.HospitalAddress
		case "medical_history":
			record.MedicalHistory = *input.MedicalHistory
		case "vitals":
			record.Vitals = *input.Vitals
		case "current_visit_details":
			record.CurrentVisitDetails = *input.CurrentVisitDetails
		case "treatment_plan":
			record.TreatmentPlan = *input.TreatmentPlan
		case "referral_info":
			record.ReferralInfo = *input.ReferralInfo
		}
	}
	record.DoctorName = doctor.FullName()
	record.Date = now.Format(dateLayout)

	if err := s.records.UpdateWithHistory(ctx, record, snapshot); err != nil {
		return nil, err
	}
	return &UpdateRecordResult{Record: record, ChangedFields: changed}, nil
}

// Get returns one record: the owning patient sees their own, any doctor may
// read it. The doctor-wide read is deliberately not scoped to an approved
// request; only the edit path is.
func (s *RecordService) Get(ctx context.Context, caller models.Caller, recordID uint64) (*models.MedicalRecord, error) {
	record, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: medical record %d", ErrNotFound, recordID)
	}
	if err := s.authorizeRead(caller, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListForPatient returns the caller's own record(s).
func (s *RecordService) ListForPatient(ctx context.Context, caller models.Caller) ([]models.MedicalRecord, error) {
	if !caller.IsPatient {
		return nil, fmt.Errorf("%w: patient role required", ErrNotAuthorized)
	}
	return s.records.FindByPatientID(ctx, caller.ID)
}

// ListGrouped returns every record keyed by the owning patient's email, for
// the doctor-side multi-patient view.
func (s *RecordService) ListGrouped(ctx context.Context, caller models.Caller) (map[string][]models.MedicalRecord, error) {
	if !caller.IsDoctor {
		return nil, fmt.Errorf("%w: doctor role required", ErrNotAuthorized)
	}
	records, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]models.MedicalRecord, len(records))
	for _, record := range records {
		key := fmt.Sprintf("patient-%d", record.PatientID)
		if record.Patient != nil {
			key = record.Patient.Email
		}
		record.Patient = nil // avoid echoing full accounts in the listing
		grouped[key] = append(grouped[key], record)
	}
	return grouped, nil
}

// Versions lists the full history of one record, newest snapshot first.
func (s *RecordService) Versions(ctx context.Context, caller models.Caller, recordID uint64) ([]models.HistoricalMedicalRecord, error) {
	record, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: medical record %d", ErrNotFound, recordID)
	}
	if err := s.authorizeRead(caller, record); err != nil {
		return nil, err
	}
	return s.records.ListHistory(ctx, recordID)
}

// Version fetches one snapshot by its history id.
func (s *RecordService) Version(ctx context.Context, caller models.Caller, recordID, historyID uint64) (*models.HistoricalMedicalRecord, error) {
	record, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: medical record %d", ErrNotFound, recordID)
	}
	if err := s.authorizeRead(caller, record); err != nil {
		return nil, err
	}
	entry, err := s.records.FindHistory(ctx, recordID, historyID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: version %d of medical record %d", ErrNotFound, historyID, recordID)
	}
	return entry, nil
}

// Delete removes the record together with its history and the permission
// requests tied to it.
func (s *RecordService) Delete(ctx context.Context, caller models.Caller, recordID uint64) error {
	if !caller.IsDoctor {
		return fmt.Errorf("%w: only doctors can delete medical records", ErrNotAuthorized)
	}
	record, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: medical record %d", ErrNotFound, recordID)
	}
	return s.records.DeleteCascade(ctx, recordID)
}

func (s *RecordService) authorizeRead(caller models.Caller, record *models.MedicalRecord) error {
	if caller.IsDoctor {
		return nil
	}
	if caller.IsPatient && record.PatientID == caller.ID {
		return nil
	}
	return fmt.Errorf("%w: this record does not belong to you", ErrNotAuthorized)
}

// jsonMapsEqual compares two open-schema documents. Marshaling sorts object
// keys, so equal documents always produce identical bytes; nil and empty maps
// count as equal.
func jsonMapsEqual(a, b datatypes.JSONMap) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}
