package repositories

import (
	"context"

	"github.com/campusworks/gradebook-service/internal/models"
)

// RosterEntry is one row of a class roster: the enrolled student joined
// with their enrollment record. Visible only to the owning teacher.
type RosterEntry struct {
	StudentID    uint     `json:"id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Email        string   `json:"email"`
	EnrollmentID uint     `json:"enrollment_id"`
	Grade        *float64 `json:"grade"`
}

// StudentClass is a class summary annotated with the querying student's
// own grade for that class.
type StudentClass struct {
	Class models.Class
	Grade *float64
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id uint) (*models.Class, error)

	// GetByIDForUpdate locks the class row for the duration of the
	// enclosing transaction. Used by enrollment to serialize capacity
	// checks against concurrent enrollments in the same class.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Class, error)

	ExistsByCode(ctx context.Context, classCode string) (bool, error)

	// List returns every class in insertion order with the derived
	// teacher name and enrolled count populated.
	List(ctx context.Context) ([]*models.Class, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error)

	// GetSummary returns one class with derived fields populated.
	GetSummary(ctx context.Context, id uint) (*models.Class, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)

	// GetByIDWithClass loads the enrollment together with its class, so
	// callers can check class ownership without a second query.
	GetByIDWithClass(ctx context.Context, id uint) (*models.Enrollment, error)

	Exists(ctx context.Context, studentID, classID uint) (bool, error)
	CountByClass(ctx context.Context, classID uint) (int64, error)

	FindByClass(ctx context.Context, classID uint) ([]*RosterEntry, error)
	FindByStudent(ctx context.Context, studentID uint) ([]*StudentClass, error)

	UpdateGrade(ctx context.Context, id uint, grade float64) error
}
