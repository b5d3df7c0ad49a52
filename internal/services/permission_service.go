package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/internal/repositories"
)

// PermissionService drives the request/approve/deny workflow that gates every
// medical record mutation.
type PermissionService struct {
	users    repositories.UserRepositoryContract
	records  repositories.MedicalRecordRepositoryContract
	requests repositories.PermissionRequestRepositoryContract
}

func NewPermissionService(
	users repositories.UserRepositoryContract,
	records repositories.MedicalRecordRepositoryContract,
	requests repositories.PermissionRequestRepositoryContract,
) *PermissionService {
	return &PermissionService{users: users, records: records, requests: requests}
}

// RequestResult reports whether a new request was created or an existing
// pending one was returned (the dedup short-circuit).
type RequestResult struct {
	Request *models.PermissionRequest
	Created bool
}

// Request files a doctor's ask for access to one patient's record.
//
// If a pending request for (doctor, record) already exists it is returned
// unchanged instead of erroring: re-submitting is a no-op, not a conflict.
// The same policy covers the race where two concurrent calls both miss the
// existence check; the partial unique index rejects the loser, and we answer
// with the row that won.
func (s *PermissionService) Request(ctx context.Context, caller models.Caller, input models.RequestPermissionInput) (*RequestResult, error) {
	if !caller.IsDoctor {
		return nil, fmt.Errorf("%w: only doctors can request record access", ErrNotAuthorized)
	}
	if input.PatientEmail == "" || input.MedicalRecordID == 0 {
		return nil, fmt.Errorf("%w: patient_email and medical_record_id are required", ErrValidation)
	}

	patient, err := s.users.FindByEmail(ctx, input.PatientEmail)
	if err != nil {
		return nil, err
	}
	if patient == nil || !patient.IsPatient {
		return nil, fmt.Errorf("%w: no patient with this email", ErrNotFound)
	}

	record, err := s.records.FindByID(ctx, input.MedicalRecordID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.PatientID != patient.ID {
		return nil, fmt.Errorf("%w: no such medical record for this patient", ErrNotFound)
	}

	if pending, err := s.requests.FindPending(ctx, caller.ID, record.ID); err != nil {
		return nil, err
	} else if pending != nil {
		return &RequestResult{Request: pending, Created: false}, nil
	}

	request := &models.PermissionRequest{
		DoctorID:        caller.ID,
		PatientID:       patient.ID,
		MedicalRecordID: record.ID,
		Status:          models.PermissionPending,
		RequestDate:     time.Now(),
	}
	err = s.requests.Create(ctx, request)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		// Lost the race against a concurrent identical request.
		pending, ferr := s.requests.FindPending(ctx, caller.ID, record.ID)
		if ferr != nil {
			return nil, ferr
		}
		if pending != nil {
			return &RequestResult{Request: pending, Created: false}, nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return &RequestResult{Request: request, Created: true}, nil
}

// Respond lets the addressed patient decide a request. Status, response date
// and edit flag travel in one atomic update: edit_permission is true exactly
// when the decision is an approval, at every observable instant.
func (s *PermissionService) Respond(ctx context.Context, caller models.Caller, input models.RespondPermissionInput) (*models.PermissionRequest, error) {
	if !caller.IsPatient {
		return nil, fmt.Errorf("%w: only patients can respond to permission requests", ErrNotAuthorized)
	}
	if input.RequestID == 0 {
		return nil, fmt.Errorf("%w: request_id is required", ErrValidation)
	}
	if input.Decision != models.PermissionApproved && input.Decision != models.PermissionDenied {
		return nil, fmt.Errorf("%w: decision must be %q or %q", ErrValidation,
			models.PermissionApproved, models.PermissionDenied)
	}

	request, err := s.requests.FindByIDForPatient(ctx, input.RequestID, caller.ID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, fmt.Errorf("%w: no such permission request addressed to you", ErrNotFound)
	}

	now := time.Now()
	granted := input.Decision == models.PermissionApproved
	if err := s.requests.UpdateDecision(ctx, request.ID, input.Decision, now, granted); err != nil {
		return nil, err
	}

	request.Status = input.Decision
	request.ResponseDate = &now
	request.EditPermission = granted
	return request, nil
}

// DeleteRequestsToPatient revokes every request addressed to the caller,
// whatever its status, and reports how many rows went away.
func (s *PermissionService) DeleteRequestsToPatient(ctx context.Context, caller models.Caller) (int64, error) {
	if !caller.IsPatient {
		return 0, fmt.Errorf("%w: only patients can revoke their permission requests", ErrNotAuthorized)
	}
	return s.requests.DeleteByPatient(ctx, caller.ID)
}

// CanEdit reports whether the doctor holds an approved, edit-enabled request
// for the record. Pure read, consumed by the record store before any mutation.
func (s *PermissionService) CanEdit(ctx context.Context, doctorID, recordID uint64) (bool, error) {
	return s.requests.HasApprovedEdit(ctx, doctorID, recordID)
}
