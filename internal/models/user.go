package models

import (
	"time"
)

type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeTeacher UserType = "teacher"
)

// Valid reports whether the user type is one of the two supported roles.
func (t UserType) Valid() bool {
	return t == UserTypeStudent || t == UserTypeTeacher
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:50"`
	PasswordHash string   `json:"-" gorm:"not null;size:256"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:100"`
	FirstName    string   `json:"first_name" gorm:"not null;size:50"`
	LastName     string   `json:"last_name" gorm:"not null;size:50"`
	UserType     UserType `json:"user_type" gorm:"not null;size:10"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	ClassesTeaching []Class      `json:"-" gorm:"foreignKey:TeacherID"`
	Enrollments     []Enrollment `json:"-" gorm:"foreignKey:StudentID"`
}

func (User) TableName() string {
	return "users"
}

// FullName returns the display name used in class summaries.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
