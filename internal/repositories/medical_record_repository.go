package repositories

import (
	"context"
	"errors"

	"clinicrecord-backend/internal/models"

	"gorm.io/gorm"
)

type MedicalRecordRepository struct {
	db *gorm.DB
}

var _ MedicalRecordRepositoryContract = (*MedicalRecordRepository)(nil)

func NewMedicalRecordRepository(db *gorm.DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

func (r *MedicalRecordRepository) Create(ctx context.Context, record *models.MedicalRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *MedicalRecordRepository) FindByID(ctx context.Context, id uint64) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := r.db.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *MedicalRecordRepository) FindByPatientID(ctx context.Context, patientID uint64) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Find(&records).Error
	return records, err
}

func (r *MedicalRecordRepository) ListAll(ctx context.Context) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	err := r.db.WithContext(ctx).Preload("Patient").Order("patient_id, id").Find(&records).Error
	return records, err
}

// UpdateWithHistory writes the snapshot first, then the new current row. A
// failure in either statement rolls both back, so a record can never end up
// changed without a historical predecessor for that transition.
func (r *MedicalRecordRepository) UpdateWithHistory(ctx context.Context, record *models.MedicalRecord, snapshot *models.HistoricalMedicalRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(snapshot).Error; err != nil {
			return err
		}
		return tx.Save(record).Error
	})
}

func (r *MedicalRecordRepository) ListHistory(ctx context.Context, recordID uint64) ([]models.HistoricalMedicalRecord, error) {
	var entries []models.HistoricalMedicalRecord
	err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("history_id desc").
		Find(&entries).Error
	return entries, err
}

func (r *MedicalRecordRepository) FindHistory(ctx context.Context, recordID, historyID uint64) (*models.HistoricalMedicalRecord, error) {
	var entry models.HistoricalMedicalRecord
	err := r.db.WithContext(ctx).
		Where("record_id = ? AND history_id = ?", recordID, historyID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *MedicalRecordRepository) DeleteCascade(ctx context.Context, recordID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("record_id = ?", recordID).
			Delete(&models.HistoricalMedicalRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("medical_record_id = ?", recordID).
			Delete(&models.PermissionRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MedicalRecord{}, recordID).Error
	})
}
