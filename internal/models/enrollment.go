package models

import (
	"time"
)

// Enrollment joins one student to one class. The (student_id, class_id)
// pair is unique: a student enrolls in a given class at most once.
type Enrollment struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StudentID      uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_student_class"`
	ClassID        uint      `json:"class_id" gorm:"not null;uniqueIndex:idx_student_class"`
	Grade          *float64  `json:"grade"`
	EnrollmentDate time.Time `json:"enrollment_date" gorm:"autoCreateTime"`

	// Relations
	Student User  `json:"-" gorm:"foreignKey:StudentID"`
	Class   Class `json:"-" gorm:"foreignKey:ClassID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
