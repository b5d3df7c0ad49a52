package models

import (
	"time"

	"gorm.io/datatypes"
)

// MedicalRecord is the single live clinical record of one patient.
// The doctor/hospital columns are plain strings, not foreign keys: they are
// copied from the authoring doctor's profile at write time so the record keeps
// saying who wrote it even if that doctor later changes hospitals.
//
// Updates never mutate silently: the pre-update state is snapshotted into
// HistoricalMedicalRecord in the same transaction (see the record service).
type MedicalRecord struct {
	ID              uint64 `gorm:"primaryKey" json:"id"`
	PatientID       uint64 `gorm:"not null;index" json:"patient_id"`
	Date            string `gorm:"type:date" json:"date"` // Format YYYY-MM-DD, refreshed on edit
	DoctorName      string `gorm:"size:100" json:"doctor_name"`
	HospitalName    string `gorm:"size:100" json:"hospital_name"`
	HospitalAddress string `gorm:"type:text" json:"hospital_address"`

	// Open-ended clinical documents. The store does not enforce a schema here,
	// doctors shape these per specialty.
	MedicalHistory      datatypes.JSONMap `gorm:"type:jsonb" json:"medical_history"`
	Vitals              datatypes.JSONMap `gorm:"type:jsonb" json:"vitals"`
	CurrentVisitDetails datatypes.JSONMap `gorm:"type:jsonb" json:"current_visit_details"`
	TreatmentPlan       datatypes.JSONMap `gorm:"type:jsonb" json:"treatment_plan"`
	ReferralInfo        datatypes.JSONMap `gorm:"type:jsonb" json:"referral_info"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

// HistoricalMedicalRecord is an immutable snapshot of a MedicalRecord taken
// just before an accepted update overwrites it. Rows are only ever inserted,
// ordered by HistoryID.
type HistoricalMedicalRecord struct {
	HistoryID     uint64    `gorm:"primaryKey;autoIncrement" json:"history_id"`
	RecordID      uint64    `gorm:"not null;index" json:"record_id"`
	HistoryDate   time.Time `gorm:"not null" json:"history_date"`
	HistoryUserID *uint64   `json:"history_user_id"` // who caused the change

	PatientID           uint64            `gorm:"not null" json:"patient_id"`
	Date                string            `gorm:"type:date" json:"date"`
	DoctorName          string            `gorm:"size:100" json:"doctor_name"`
	HospitalName        string            `gorm:"size:100" json:"hospital_name"`
	HospitalAddress     string            `gorm:"type:text" json:"hospital_address"`
	MedicalHistory      datatypes.JSONMap `gorm:"type:jsonb" json:"medical_history"`
	Vitals              datatypes.JSONMap `gorm:"type:jsonb" json:"vitals"`
	CurrentVisitDetails datatypes.JSONMap `gorm:"type:jsonb" json:"current_visit_details"`
	TreatmentPlan       datatypes.JSONMap `gorm:"type:jsonb" json:"treatment_plan"`
	ReferralInfo        datatypes.JSONMap `gorm:"type:jsonb" json:"referral_info"`
}

// Snapshot copies the current state of a record into a history entry.
func (r *MedicalRecord) Snapshot(actorID uint64, at time.Time) *HistoricalMedicalRecord {
	actor := actorID
	return &HistoricalMedicalRecord{
		RecordID:            r.ID,
		HistoryDate:         at,
		HistoryUserID:       &actor,
		PatientID:           r.PatientID,
		Date:                r.Date,
		DoctorName:          r.DoctorName,
		HospitalName:        r.HospitalName,
		HospitalAddress:     r.HospitalAddress,
		MedicalHistory:      r.MedicalHistory,
		Vitals:              r.Vitals,
		CurrentVisitDetails: r.CurrentVisitDetails,
		TreatmentPlan:       r.TreatmentPlan,
		ReferralInfo:        r.ReferralInfo,
	}
}

type CreateRecordInput struct {
	PatientEmail        string            `json:"patient_email" binding:"required,email"`
	Date                string            `json:"date"` // defaults to today
	MedicalHistory      datatypes.JSONMap `json:"medical_history"`
	Vitals              datatypes.JSONMap `json:"vitals"`
	CurrentVisitDetails datatypes.JSONMap `json:"current_visit_details"`
	TreatmentPlan       datatypes.JSONMap `json:"treatment_plan"`
	ReferralInfo        datatypes.JSONMap `json:"referral_info"`
}

// UpdateRecordInput carries a partial update: nil pointers mean "leave this
// field alone", which keeps no-op submissions out of the history log.
type UpdateRecordInput struct {
	HospitalName        *string            `json:"hospital_name"`
	HospitalAddress     *string            `json:"hospital_address"`
	MedicalHistory      *datatypes.JSONMap `json:"medical_history"`
	Vitals              *datatypes.JSONMap `json:"vitals"`
	CurrentVisitDetails *datatypes.JSONMap `json:"current_visit_details"`
	TreatmentPlan       *datatypes.JSONMap `json:"treatment_plan"`
	ReferralInfo        *datatypes.JSONMap `json:"referral_info"`
}
