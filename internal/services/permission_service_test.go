package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
)

var (
	doctorCaller  = models.Caller{ID: 1, IsDoctor: true}
	patientCaller = models.Caller{ID: 2, IsPatient: true}
)

func newPermissionFixture() (*mockUserRepo, *mockRecordRepo, *mockRequestRepo, *PermissionService) {
	users := &mockUserRepo{}
	records := &mockRecordRepo{}
	requests := &mockRequestRepo{}
	return users, records, requests, NewPermissionService(users, records, requests)
}

func TestRequestPermissionRejectsNonDoctor(t *testing.T) {
	_, _, _, svc := newPermissionFixture()

	_, err := svc.Request(context.Background(), patientCaller, models.RequestPermissionInput{
		PatientEmail: "p@example.com", MedicalRecordID: 10,
	})

	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestRequestPermissionValidatesInput(t *testing.T) {
	_, _, _, svc := newPermissionFixture()

	_, err := svc.Request(context.Background(), doctorCaller, models.RequestPermissionInput{})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestRequestPermissionUnknownPatient(t *testing.T) {
	users, _, _, svc := newPermissionFixture()
	users.FindByEmailFn = func(ctx context.Context, email string) (*models.User, error) {
		return nil, nil
	}

	_, err := svc.Request(context.Background(), doctorCaller, models.RequestPermissionInput{
		PatientEmail: "nobody@example.com", MedicalRecordID: 10,
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestPermissionRecordMustBelongToPatient(t *testing.T) {
	users, records, _, svc := newPermissionFixture()
	users.FindByEmailFn = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{ID: 2, Email: email, IsPatient: true}, nil
	}
	records.FindByIDFn = func(ctx context.Context, id uint64) (*models.MedicalRecord, error) {
		return &models.MedicalRecord{ID: id, PatientID: 99}, nil
	}

	_, err := svc.Request(context.Background(), doctorCaller, models.RequestPermissionInput{
		PatientEmail: "p@example.com", MedicalRecordID: 10,
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestPermissionCreatesPending(t *testing.T) {
	users, records, requests, svc := newPermissionFixture()
	users.FindByEmailFn = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{ID: 2, Email: email, IsPatient: true}, nil
	}
	records.FindByIDFn = func(ctx context.Context, id uint64) (*models.MedicalRecord, error) {
		return &models.MedicalRecord{ID: id, PatientID: 2}, nil
	}
	requests.FindPendingFn = func(ctx context.Context, doctorID, recordID uint64) (*models.PermissionRequest, error) {
		return nil, nil
	}
	var created *models.PermissionRequest
	requests.CreateFn = func(ctx context.Context, request *models.PermissionRequest) error {
		request.ID = 7
		created = request
		return nil
	}

	result, err := svc.Request(context.Background(), doctorCaller, models.RequestPermissionInput{
		PatientEmail: "p@example.com", MedicalRecordID: 10,
	})

	assert.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, created, result.Request)
	assert.Equal(t, models.PermissionPending, created.Status)
	assert.Equal(t, uint64(1), created.DoctorID)
	assert.Equal(t, uint64(2), created.PatientID)
	assert.Equal(t, uint64(10), created.MedicalRecordID)
	assert.False(t, created.EditPermission)
	assert.Nil(t, created.ResponseDate)
	assert.False(t, created.RequestDate.IsZero())
}

func TestRequestPermissionDedupesPending(t *testing.T) {
	users, records, requests, svc := newPermissionFixture()
	users.FindByEmailFn = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{ID: 2, Email: email, IsPatient: true}, nil
	}
	records.FindByIDFn = func(ctx context.Context, id uint64) (*models.MedicalRecord, error) {
		return &models.MedicalRecord{ID: id, PatientID: 2}, nil
	}
	existing := &models.PermissionRequest{ID: 5, DoctorID: 1, MedicalRecordID: 10, Status: models.PermissionPending}
	requests.FindPendingFn = func(ctx context.Context, doctorID, recordID uint64) (*models.PermissionRequest, error) {
		return existing, nil
	}

	result, err := svc.Request(context.Background(), doctorCaller, models.RequestPermissionInput{
		PatientEmail: "p@example.com", MedicalRecordID: 10,
	})

	assert.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, existing, result.Request)
}

func TestRequestPermissionRecoversFromDuplicateKeyRace(t *testing.T) {
	users, records, requests, svc := newPermissionFixture()
	users.FindByEmailFn = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{ID: 2, Email: email, IsPatient: true}, nil
	}
	records.FindByIDFn = func(ctx context.Context, id uint64) (*models.MedicalRecord, error) {
		return &models.MedicalRecord{ID: id, PatientID: 2}, nil
	}
	winner := &models.PermissionRequest{ID: 9, DoctorID: 1, MedicalRecordID: 10, Status: models.PermissionPending}
	calls := 0
	requests.FindPendingFn = func(ctx context.Context, doctorID, recordID uint64) (*models.PermissionRequest, error) {
		calls++
		if calls == 1 {
			// First check misses: the concurrent request commits in between.
			return nil, nil
		}
		return winner, nil
	}
	requests.CreateFn = func(ctx context.Context, request *models.PermissionRequest) error {
		return repositories.ErrDuplicateKey
	}

	result, err := svc.Request(context.Background(), doctorCaller, models.RequestPermissionInput{
		PatientEmail: "p@example.com", MedicalRecordID: 10,
	})

	assert.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, winner, result.Request)
	assert.Equal(t, 2, calls)
}

func TestRespondRejectsNonPatient(t *testing.T) {
	_, _, _, svc := newPermissionFixture()

	_, err := svc.Respond(context.Background(), doctorCaller, models.RespondPermissionInput{
		RequestID: 5, Decision: models.PermissionApproved,
	})

	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestRespondValidatesDecision(t *testing.T) {
	_, _, _, svc := newPermissionFixture()

	_, err := svc.Respond(context.Background(), patientCaller, models.RespondPermissionInput{
		RequestID: 5, Decision: "maybe",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestRespondUnknownRequest(t *testing.T) {
	_, _, requests, svc := newPermissionFixture()
	requests.FindByIDForPatientFn = func(ctx context.Context, id, patientID uint64) (*models.PermissionRequest, error) {
		return nil, nil
	}

	_, err := svc.Respond(context.Background(), patientCaller, models.RespondPermissionInput{
		RequestID: 5, Decision: models.PermissionDenied,
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRespondApproveGrantsEdit(t *testing.T) {
	_, _, requests, svc := newPermissionFixture()
	requests.FindByIDForPatientFn = func(ctx context.Context, id, patientID uint64) (*models.PermissionRequest, error) {
		assert.Equal(t, uint64(2), patientID)
		return &models.PermissionRequest{ID: id, DoctorID: 1, PatientID: patientID, Status: models.PermissionPending}, nil
	}
	var gotStatus string
	var gotGranted bool
	requests.UpdateDecisionFn = func(ctx context.Context, id uint64, status string, respondedAt time.Time, editPermission bool) error {
		gotStatus = status
		gotGranted = editPermission
		return nil
	}

	request, err := svc.Respond(context.Background(), patientCaller, models.RespondPermissionInput{
		RequestID: 5, Decision: models.PermissionApproved,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.PermissionApproved, gotStatus)
	assert.True(t, gotGranted)
	assert.Equal(t, models.PermissionApproved, request.Status)
	assert.True(t, request.EditPermission)
	assert.NotNil(t, request.ResponseDate)
}

func TestRespondDenyClearsEdit(t *testing.T) {
	_, _, requests, svc := newPermissionFixture()
	requests.FindByIDForPatientFn = func(ctx context.Context, id, patientID uint64) (*models.PermissionRequest, error) {
		return &models.PermissionRequest{ID: id, DoctorID: 1, PatientID: patientID, Status: models.PermissionPending}, nil
	}
	var gotGranted bool
	requests.UpdateDecisionFn = func(ctx context.Context, id uint64, status string, respondedAt time.Time, editPermission bool) error {
		gotGranted = editPermission
		return nil
	}

	request, err := svc.Respond(context.Background(), patientCaller, models.RespondPermissionInput{
		RequestID: 5, Decision: models.PermissionDenied,
	})

	assert.NoError(t, err)
	assert.False(t, gotGranted)
	assert.Equal(t, models.PermissionDenied, request.Status)
	assert.False(t, request.EditPermission)
}

func TestRespondOverridesEarlierDecision(t *testing.T) {
	// A later response wins outright, there is no "already decided" error.
	_, _, requests, svc := newPermissionFixture()
	responded := time.Now().Add(-time.Hour)
	requests.FindByIDForPatientFn = func(ctx context.Context, id, patientID uint64) (*models.PermissionRequest, error) {
		return &models.PermissionRequest{
			ID: id, DoctorID: 1, PatientID: patientID,
			Status: models.PermissionApproved, ResponseDate: &responded, EditPermission: true,
		}, nil
	}
	requests.UpdateDecisionFn = func(ctx context.Context, id uint64, status string, respondedAt time.Time, editPermission bool) error {
		return nil
	}

	request, err := svc.Respond(context.Background(), patientCaller, models.RespondPermissionInput{
		RequestID: 5, Decision: models.PermissionDenied,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.PermissionDenied, request.Status)
	assert.False(t, request.EditPermission)
	assert.True(t, request.ResponseDate.After(responded))
}

func TestDeleteRequestsToPatient(t *testing.T) {
	_, _, requests, svc := newPermissionFixture()
	requests.DeleteByPatientFn = func(ctx context.Context, patientID uint64) (int64, error) {
		assert.Equal(t, uint64(2), patientID)
		return 3, nil
	}

	count, err := svc.DeleteRequestsToPatient(context.Background(), patientCaller)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	_, err = svc.DeleteRequestsToPatient(context.Background(), doctorCaller)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestCanEditDelegates(t *testing.T) {
	_, _, requests, svc := newPermissionFixture()
	requests.HasApprovedEditFn = func(ctx context.Context, doctorID, recordID uint64) (bool, error) {
		return doctorID == 1 && recordID == 10, nil
	}

	ok, err := svc.CanEdit(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanEdit(context.Background(), 3, 10)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRequestPermissionPropagatesRepoError(t *testing.T) {
	users, _, _, svc := newPermissionFixture()
	boom := errors.New("connection reset")
	users.FindByEmailFn = func(ctx context.Context, email string) (*models.User, error) {
		return nil, boom
	}

	_, err := svc.Request(context.Background(), doctorCaller, models.RequestPermissionInput{
		PatientEmail: "p@example.com", MedicalRecordID: 10,
	})

	assert.ErrorIs(t, err, boom)
}
