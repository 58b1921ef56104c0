package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstituteDetails struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InstituteID uuid.UUID `gorm:"not null;unique" json:"institute_id"`

	Board            string `gorm:"size:50" json:"board"`
	InstituteType    string `gorm:"size:50" json:"institute_type"`
	Medium           string `gorm:"size:50" json:"medium"`
	ClassesOffered   string `gorm:"size:255" json:"classes_offered"`
	CoursesOffered   string `gorm:"size:255" json:"courses_offered"`
	ExpectedStudents string `gorm:"size:20" json:"expected_students"`

	Institute Institute `gorm:"foreignkey:InstituteID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *InstituteDetails) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
