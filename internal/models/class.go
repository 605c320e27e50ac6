package models

type Class struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	ClassCode   string  `json:"class_code" gorm:"uniqueIndex;not null;size:10"`
	ClassName   string  `json:"class_name" gorm:"not null;size:100"`
	Description *string `json:"description" gorm:"type:text"`
	Capacity    int     `json:"capacity" gorm:"not null"`
	TeacherID   uint    `json:"teacher_id" gorm:"not null;index"`

	// Relations
	Teacher     User         `json:"-" gorm:"foreignKey:TeacherID"`
	Enrollments []Enrollment `json:"-" gorm:"foreignKey:ClassID"`

	// Computed fields (not stored)
	TeacherName   string `json:"teacher_name" gorm:"-"`
	EnrolledCount int    `json:"enrolled_count" gorm:"-"`
}

func (Class) TableName() string {
	return "classes"
}
