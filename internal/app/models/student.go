package models

import (
	"time"
)

// CallStatus defines the outcome of the latest call to a prospect
type CallStatus string

const (
	CallStatusNotCalled      CallStatus = "NOT_CALLED"
	CallStatusRinging        CallStatus = "RINGING"
	CallStatusCallBack       CallStatus = "CALL_BACK"
	CallStatusInterested     CallStatus = "INTERESTED"
	CallStatusNotInterested  CallStatus = "NOT_INTERESTED"
	CallStatusAdmissionTaken CallStatus = "ADMISSION_TAKEN"
)

// Valid reports whether the status is a known call outcome
func (s CallStatus) Valid() bool {
	switch s {
	case CallStatusNotCalled, CallStatusRinging, CallStatusCallBack,
		CallStatusInterested, CallStatusNotInterested, CallStatusAdmissionTaken:
		return true
	}
	return false
}

// Interest defines the course a prospect leans toward
type Interest string

const (
	InterestMCA     Interest = "MCA"
	InterestMBA     Interest = "MBA"
	InterestBCA     Interest = "BCA"
	InterestBTech   Interest = "BTECH"
	InterestNursing Interest = "NURSING"
	InterestDiploma Interest = "DIPLOMA"
	InterestOther   Interest = "OTHER"
)

// Valid reports whether the interest is a member of the enum
func (i Interest) Valid() bool {
	switch i {
	case InterestMCA, InterestMBA, InterestBCA, InterestBTech,
		InterestNursing, InterestDiploma, InterestOther:
		return true
	}
	return false
}

// Student defines a prospective-student record based on the 'students' table.
// UploadedByID is immutable after creation: it is the ownership boundary that
// drives visibility, intentionally not a foreign key so that deleting a staff
// account leaves its uploads in place.
type Student struct {
	ID             int64      `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Phone          string     `json:"phone" db:"phone"`
	Address        *string    `json:"address,omitempty" db:"address"`
	PrevCourse     *string    `json:"prevCourse,omitempty" db:"prev_course"`
	CallStatus     CallStatus `json:"callStatus" db:"call_status"`
	FutureInterest *Interest  `json:"futureInterest,omitempty" db:"future_interest"`
	Notes          *string    `json:"notes,omitempty" db:"notes"`
	LastUpdatedBy  *string    `json:"lastUpdatedBy,omitempty" db:"last_updated_by"` // Display-name snapshot, not a reference
	UploadedByID   int64      `json:"uploadedById" db:"uploaded_by_id"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
}
