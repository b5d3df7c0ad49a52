package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/internal/repositories"
	"clinicrecord-backend/pkg/mailer"
	"clinicrecord-backend/pkg/otp"
	"clinicrecord-backend/pkg/utils"
)

// AccountService covers registration, OTP email verification, login and the
// /user/me profile operations.
type AccountService struct {
	users repositories.UserRepositoryContract
	otps  *otp.Store
	mail  mailer.Mailer
}

func NewAccountService(users repositories.UserRepositoryContract, otps *otp.Store, mail mailer.Mailer) *AccountService {
	return &AccountService{users: users, otps: otps, mail: mail}
}

// Register creates an unverified account and kicks off the activation email.
// The email send is fire-and-forget; a delivery failure is logged, never
// surfaced, the user can always hit resend.
func (s *AccountService) Register(ctx context.Context, input models.RegisterInput) (*models.User, error) {
	if !input.IsDoctor && !input.IsPatient {
		return nil, fmt.Errorf("%w: account must be a doctor or a patient", ErrValidation)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Email:           input.Email,
		PasswordHash:    hash,
		Phone:           input.Phone,
		BirthDate:       input.BirthDate,
		IsDoctor:        input.IsDoctor,
		IsPatient:       input.IsPatient,
		HospitalName:    input.HospitalName,
		HospitalAddress: input.HospitalAddress,
	}
	err = s.users.Create(ctx, user)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	}
	if err != nil {
		return nil, err
	}

	s.sendActivation(ctx, user)
	return user, nil
}

// VerifyEmail consumes the OTP and marks the account verified.
func (s *AccountService) VerifyEmail(ctx context.Context, email, code string) error {
	if code == "" {
		return fmt.Errorf("%w: otp is required", ErrValidation)
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user does not exist, please register", ErrValidation)
	}

	err = s.otps.Verify(ctx, email, code)
	if errors.Is(err, otp.ErrCodeExpired) {
		return fmt.Errorf("%w: OTP expired, please request a new one", ErrValidation)
	}
	if errors.Is(err, otp.ErrCodeInvalid) {
		return fmt.Errorf("%w: invalid OTP, please try again", ErrValidation)
	}
	if err != nil {
		return err
	}

	user.IsVerified = true
	return s.users.Update(ctx, user)
}

// ResendVerifyEmail issues a fresh OTP for an unverified account.
func (s *AccountService) ResendVerifyEmail(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: no account with this email", ErrNotFound)
	}
	if user.IsVerified {
		return fmt.Errorf("%w: user already verified", ErrValidation)
	}
	s.sendActivation(ctx, user)
	return nil
}

// Login checks credentials and hands back a signed token. The optional FCM
// token from the login payload is captured for push notifications.
func (s *AccountService) Login(ctx context.Context, input models.LoginInput) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !utils.CheckPassword(input.Password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	if input.FCMToken != "" {
		if err := s.users.UpdateFCMToken(ctx, user.ID, input.FCMToken); err != nil {
			log.Printf("[Auth] failed to store fcm token for user %d: %v", user.ID, err)
		}
	}

	token, err := utils.GenerateToken(user.ID, user.IsDoctor, user.IsPatient)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Get fetches one account by id.
func (s *AccountService) Get(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return user, nil
}

// UpdateProfile patches the caller's own account; empty fields stay as-is.
func (s *AccountService) UpdateProfile(ctx context.Context, caller models.Caller, input models.UpdateProfileInput) (*models.User, error) {
	user, err := s.Get(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.BirthDate != "" {
		user.BirthDate = input.BirthDate
	}
	if input.ProfilePictureURL != "" {
		user.ProfilePictureURL = input.ProfilePictureURL
	}
	if input.HospitalName != "" {
		user.HospitalName = input.HospitalName
	}
	if input.HospitalAddress != "" {
		user.HospitalAddress = input.HospitalAddress
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the caller's own account.
func (s *AccountService) Delete(ctx context.Context, caller models.Caller) error {
	return s.users.Delete(ctx, caller.ID)
}

func (s *AccountService) sendActivation(ctx context.Context, user *models.User) {
	code, err := s.otps.Issue(ctx, user.Email)
	if err != nil {
		log.Printf("[Auth] failed to issue otp for %s: %v", user.Email, err)
		return
	}
	email, name := user.Email, user.FullName()
	go func() {
		if err := s.mail.SendActivationEmail(email, name, code); err != nil {
			log.Printf("[Mailer] activation email to %s failed: %v", email, err)
		}
	}()
}
