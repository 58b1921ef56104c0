package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OnboardingInstituteDetails is filled during the registration wizard and is
// read-only input to activation.
type OnboardingInstituteDetails struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ApplicationID uuid.UUID `gorm:"not null;unique" json:"application_id"`

	Board            string `gorm:"size:50" json:"board"`
	InstituteType    string `gorm:"size:50" json:"institute_type"`
	Medium           string `gorm:"size:50" json:"medium"`
	ClassesOffered   string `gorm:"size:255" json:"classes_offered"`
	CoursesOffered   string `gorm:"size:255" json:"courses_offered"`
	ExpectedStudents string `gorm:"size:20" json:"expected_students"`

	Application OnboardingApplication `gorm:"foreignkey:ApplicationID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *OnboardingInstituteDetails) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
