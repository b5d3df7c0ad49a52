package services

import (
	"context"
	"time"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/internal/repositories"
)

// Hand-written mocks with overridable function fields. Tests set only the
// functions they expect a scenario to call; anything else panics on a nil
// function, which surfaces unexpected repository traffic immediately.

type mockUserRepo struct {
	CreateFn         func(ctx context.Context, user *models.User) error
	FindByIDFn       func(ctx context.Context, id uint64) (*models.User, error)
	FindByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	UpdateFn         func(ctx context.Context, user *models.User) error
	UpdateFCMTokenFn func(ctx context.Context, id uint64, token string) error
	DeleteFn         func(ctx context.Context, id uint64) error
}

var _ repositories.UserRepositoryContract = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.CreateFn(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.FindByEmailFn(ctx, email)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.UpdateFn(ctx, user)
}

func (m *mockUserRepo) UpdateFCMToken(ctx context.Context, id uint64, token string) error {
	return m.UpdateFCMTokenFn(ctx, id, token)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint64) error {
	return m.DeleteFn(ctx, id)
}

type mockRecordRepo struct {
	CreateFn            func(ctx context.Context, record *models.MedicalRecord) error
	FindByIDFn          func(ctx context.Context, id uint64) (*models.MedicalRecord, error)
	FindByPatientIDFn   func(ctx context.Context, patientID uint64) ([]models.MedicalRecord, error)
	ListAllFn           func(ctx context.Context) ([]models.MedicalRecord, error)
	UpdateWithHistoryFn func(ctx context.Context, record *models.MedicalRecord, snapshot *models.HistoricalMedicalRecord) error
	ListHistoryFn       func(ctx context.Context, recordID uint64) ([]models.HistoricalMedicalRecord, error)
	FindHistoryFn       func(ctx context.Context, recordID, historyID uint64) (*models.HistoricalMedicalRecord, error)
	DeleteCascadeFn     func(ctx context.Context, recordID uint64) error
}

var _ repositories.MedicalRecordRepositoryContract = (*mockRecordRepo)(nil)

func (m *mockRecordRepo) Create(ctx context.Context, record *models.MedicalRecord) error {
	return m.CreateFn(ctx, record)
}

func (m *mockRecordRepo) FindByID(ctx context.Context, id uint64) (*models.MedicalRecord, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockRecordRepo) FindByPatientID(ctx context.Context, patientID uint64) ([]models.MedicalRecord, error) {
	return m.FindByPatientIDFn(ctx, patientID)
}

func (m *mockRecordRepo) ListAll(ctx context.Context) ([]models.MedicalRecord, error) {
	return m.ListAllFn(ctx)
}

func (m *mockRecordRepo) UpdateWithHistory(ctx context.Context, record *models.MedicalRecord, snapshot *models.HistoricalMedicalRecord) error {
	return m.UpdateWithHistoryFn(ctx, record, snapshot)
}

func (m *mockRecordRepo) ListHistory(ctx context.Context, recordID uint64) ([]models.HistoricalMedicalRecord, error) {
	return m.ListHistoryFn(ctx, recordID)
}

func (m *mockRecordRepo) FindHistory(ctx context.Context, recordID, historyID uint64) (*models.HistoricalMedicalRecord, error) {
	return m.FindHistoryFn(ctx, recordID, historyID)
}

func (m *mockRecordRepo) DeleteCascade(ctx context.Context, recordID uint64) error {
	return m.DeleteCascadeFn(ctx, recordID)
}

type mockRequestRepo struct {
	CreateFn             func(ctx context.Context, request *models.PermissionRequest) error
	FindPendingFn        func(ctx context.Context, doctorID, recordID uint64) (*models.PermissionRequest, error)
	FindByIDForPatientFn func(ctx context.Context, id, patientID uint64) (*models.PermissionRequest, error)
	UpdateDecisionFn     func(ctx context.Context, id uint64, status string, respondedAt time.Time, editPermission bool) error
	DeleteByPatientFn    func(ctx context.Context, patientID uint64) (int64, error)
	HasApprovedEditFn    func(ctx context.Context, doctorID, recordID uint64) (bool, error)
}

var _ repositories.PermissionRequestRepositoryContract = (*mockRequestRepo)(nil)

func (m *mockRequestRepo) Create(ctx context.Context, request *models.PermissionRequest) error {
	return m.CreateFn(ctx, request)
}

func (m *mockRequestRepo) FindPending(ctx context.Context, doctorID, recordID uint64) (*models.PermissionRequest, error) {
	return m.FindPendingFn(ctx, doctorID, recordID)
}

func (m *mockRequestRepo) FindByIDForPatient(ctx context.Context, id, patientID uint64) (*models.PermissionRequest, error) {
	return m.FindByIDForPatientFn(ctx, id, patientID)
}

func (m *mockRequestRepo) UpdateDecision(ctx context.Context, id uint64, status string, respondedAt time.Time, editPermission bool) error {
	return m.UpdateDecisionFn(ctx, id, status, respondedAt, editPermission)
}

func (m *mockRequestRepo) DeleteByPatient(ctx context.Context, patientID uint64) (int64, error) {
	return m.DeleteByPatientFn(ctx, patientID)
}

func (m *mockRequestRepo) HasApprovedEdit(ctx context.Context, doctorID, recordID uint64) (bool, error) {
	return m.HasApprovedEditFn(ctx, doctorID, recordID)
}

type mockMessageRepo struct {
	CreateFn          func(ctx context.Context, message *models.Message) error
	ListByRecipientFn func(ctx context.Context, recipientID uint64, senderID *uint64) ([]models.Message, error)
	MarkReadFn        func(ctx context.Context, id, recipientID uint64) (bool, error)
}

var _ repositories.MessageRepositoryContract = (*mockMessageRepo)(nil)

func (m *mockMessageRepo) Create(ctx context.Context, message *models.Message) error {
	return m.CreateFn(ctx, message)
}

func (m *mockMessageRepo) ListByRecipient(ctx context.Context, recipientID uint64, senderID *uint64) ([]models.Message, error) {
	return m.ListByRecipientFn(ctx, recipientID, senderID)
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, id, recipientID uint64) (bool, error) {
	return m.MarkReadFn(ctx, id, recipientID)
}
