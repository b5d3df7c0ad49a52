package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents the 'users' table. Role flags are independent: an account is
// a doctor, a patient, or occasionally both.
type User struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	FirstName    string `gorm:"size:100;not null" json:"first_name"`
	LastName     string `gorm:"size:100;not null" json:"last_name"`
	Email        string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // never sent back to clients
	Phone        string `gorm:"column:phone_number;size:20" json:"phone"`
	BirthDate    string `gorm:"type:date" json:"birth_date"` // Format YYYY-MM-DD
	IsDoctor     bool   `gorm:"default:false" json:"is_doctor"`
	IsPatient    bool   `gorm:"default:false" json:"is_patient"`
	IsVerified   bool   `gorm:"default:false" json:"is_verified"`

	// Doctor profile. Copied into records at write time, see MedicalRecord.
	HospitalName    string `gorm:"size:100" json:"hospital_name,omitempty"`
	HospitalAddress string `gorm:"type:text" json:"hospital_address,omitempty"`

	ProfilePictureURL string         `gorm:"size:255" json:"profile_picture_url"`
	FCMToken          string         `gorm:"size:255" json:"-"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	MedicalRecords []MedicalRecord `gorm:"foreignKey:PatientID" json:"medical_records,omitempty"`
}

// FullName is the display name used for denormalized doctor_name fields
// and notification bodies.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Caller is the authenticated identity handed to every operation. Built by the
// auth middleware from JWT claims so handlers and services never reach into
// ambient request state for role checks.
type Caller struct {
	ID        uint64
	IsDoctor  bool
	IsPatient bool
}

type RegisterInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone" binding:"required"`
	BirthDate string `json:"birth_date"`
	IsDoctor  bool   `json:"is_doctor"`
	IsPatient bool   `json:"is_patient"`
	// Only meaningful for doctor accounts.
	HospitalName    string `json:"hospital_name"`
	HospitalAddress string `json:"hospital_address"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FCMToken string `json:"fcm_token"`
}

type VerifyEmailInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp"`
}

type UpdateProfileInput struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Phone             string `json:"phone"`
	BirthDate         string `json:"birth_date"`
	ProfilePictureURL string `json:"profile_picture_url"`
	HospitalName      string `json:"hospital_name"`
	HospitalAddress   string `json:"hospital_address"`
}
