package models

import "time"

// PermissionRequest statuses. A request is decided exactly once by the patient;
// re-requesting after a denial means creating a new row.
const (
	PermissionPending  = "pending"
	PermissionApproved = "approved"
	PermissionDenied   = "denied"
)

// PermissionRequest is one doctor's ask for access to one patient's record.
//
// Invariant: at most one pending request per (doctor, medical_record). That is
// enforced by a partial unique index created in config.ConnectDB, not by a
// read-then-write check, so two concurrent requests cannot both slip through.
//
// EditPermission only means something while Status is approved; it is set true
// exactly when the patient approves and false in every other state.
type PermissionRequest struct {
	ID              uint64     `gorm:"primaryKey" json:"id"`
	DoctorID        uint64     `gorm:"not null;index" json:"doctor_id"`
	PatientID       uint64     `gorm:"not null;index" json:"patient_id"`
	MedicalRecordID uint64     `gorm:"not null;index" json:"medical_record_id"`
	Status          string     `gorm:"size:20;not null;default:pending" json:"status"`
	RequestDate     time.Time  `gorm:"not null" json:"request_date"`
	ResponseDate    *time.Time `json:"response_date"` // NULL until decided
	EditPermission  bool       `gorm:"default:false" json:"edit_permission"`

	Doctor  *User          `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient *User          `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Record  *MedicalRecord `gorm:"foreignKey:MedicalRecordID" json:"record,omitempty"`
}

type RequestPermissionInput struct {
	PatientEmail    string `json:"patient_email"`
	MedicalRecordID uint64 `json:"medical_record_id"`
}

type RespondPermissionInput struct {
	RequestID uint64 `json:"request_id"`
	Decision  string `json:"decision"` // approved | denied
}
