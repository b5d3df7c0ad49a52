package repositories

import (
	"context"
	"errors"
	"time"

	"clinicrecord-backend/internal/models"

	"gorm.io/gorm"
)

type PermissionRequestRepository struct {
	db *gorm.DB
}

var _ PermissionRequestRepositoryContract = (*PermissionRequestRepository)(nil)

func NewPermissionRequestRepository(db *gorm.DB) *PermissionRequestRepository {
	return &PermissionRequestRepository{db: db}
}

func (r *PermissionRequestRepository) Create(ctx context.Context, request *models.PermissionRequest) error {
	err := r.db.WithContext(ctx).Create(request).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

func (r *PermissionRequestRepository) FindPending(ctx context.Context, doctorID, recordID uint64) (*models.PermissionRequest, error) {
	var request models.PermissionRequest
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND medical_record_id = ? AND status = ?",
			doctorID, recordID, models.PermissionPending).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *PermissionRequestRepository) FindByIDForPatient(ctx context.Context, id, patientID uint64) (*models.PermissionRequest, error) {
	var request models.PermissionRequest
	err := r.db.WithContext(ctx).
		Where("id = ? AND patient_id = ?", id, patientID).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *PermissionRequestRepository) UpdateDecision(ctx context.Context, id uint64, status string, respondedAt time.Time, editPermission bool) error {
	return r.db.WithContext(ctx).Model(&models.PermissionRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"response_date":   respondedAt,
			"edit_permission": editPermission,
		}).Error
}

func (r *PermissionRequestRepository) DeleteByPatient(ctx context.Context, patientID uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Delete(&models.PermissionRequest{})
	return result.RowsAffected, result.Error
}

func (r *PermissionRequestRepository) HasApprovedEdit(ctx context.Context, doctorID, recordID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PermissionRequest{}).
		Where("doctor_id = ? AND medical_record_id = ? AND status = ? AND edit_permission = ?",
			doctorID, recordID, models.PermissionApproved, true).
		Count(&count).Error
	return count > 0, err
}
