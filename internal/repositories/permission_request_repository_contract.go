package repositories

import (
	"context"
	"time"

	"clinicrecord-backend/internal/models"
)

// PermissionRequestRepositoryContract defines persistence for the
// request/approve/deny workflow.
type PermissionRequestRepositoryContract interface {
	// Create inserts a new request. Returns ErrDuplicateKey when the partial
	// unique index rejects a second pending row for the same (doctor, record).
	Create(ctx context.Context, request *models.PermissionRequest) error
	FindPending(ctx context.Context, doctorID, recordID uint64) (*models.PermissionRequest, error)
	// FindByIDForPatient looks a request up by id scoped to its addressee; the
	// ownership check is part of the lookup predicate, not a separate step.
	FindByIDForPatient(ctx context.Context, id, patientID uint64) (*models.PermissionRequest, error)
	// UpdateDecision applies status, response date and edit flag as a single
	// UPDATE so no reader can observe a half-applied decision.
	UpdateDecision(ctx context.Context, id uint64, status string, respondedAt time.Time, editPermission bool) error
	// DeleteByPatient removes every request addressed to the patient,
	// regardless of status, and reports how many were removed.
	DeleteByPatient(ctx context.Context, patientID uint64) (int64, error)
	// HasApprovedEdit reports whether the doctor holds an approved request with
	// edit permission for the record. Pure query, safe under concurrency.
	HasApprovedEdit(ctx context.Context, doctorID, recordID uint64) (bool, error)
}
