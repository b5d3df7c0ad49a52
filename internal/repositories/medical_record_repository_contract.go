package repositories

import (
	"context"

	"clinicrecord-backend/internal/models"
)

// MedicalRecordRepositoryContract defines persistence for current records and
// their append-only history.
type MedicalRecordRepositoryContract interface {
	Create(ctx context.Context, record *models.MedicalRecord) error
	FindByID(ctx context.Context, id uint64) (*models.MedicalRecord, error)
	FindByPatientID(ctx context.Context, patientID uint64) ([]models.MedicalRecord, error)
	// ListAll returns every current record with its owning patient preloaded,
	// for the doctor-side grouped listing.
	ListAll(ctx context.Context) ([]models.MedicalRecord, error)
	// UpdateWithHistory persists the new current state and the snapshot of the
	// prior state in one transaction: both commit or neither does.
	UpdateWithHistory(ctx context.Context, record *models.MedicalRecord, snapshot *models.HistoricalMedicalRecord) error
	ListHistory(ctx context.Context, recordID uint64) ([]models.HistoricalMedicalRecord, error)
	FindHistory(ctx context.Context, recordID, historyID uint64) (*models.HistoricalMedicalRecord, error)
	// DeleteCascade removes the record together with its history rows and any
	// permission requests tied to it, atomically.
	DeleteCascade(ctx context.Context, recordID uint64) error
}
