package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/campusworks/gradebook-service/internal/models"
	"github.com/campusworks/gradebook-service/internal/repositories"
	"github.com/campusworks/gradebook-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use request validator types
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type CreateClassRequest = validator.CreateClassRequest
type UpdateGradeRequest = validator.UpdateGradeRequest
type EnrollRequest = validator.EnrollRequest

// Viewer identifies the requesting user for ownership checks. It is
// built by the transport layer from the session and passed explicitly;
// services never read ambient session state.
type Viewer struct {
	UserID   uint
	UserType models.UserType
}

// ClassDetailResponse is a class summary, plus the roster when (and
// only when) the viewer is the owning teacher. Students stays nil for
// non-owners, so the key is absent from their responses; the owner of
// an empty class still gets an empty list.
type ClassDetailResponse struct {
	*models.Class
	Students []*repositories.RosterEntry `json:"students,omitzero"`
}

// StudentClassResponse is a class summary annotated with the viewing
// student's own grade.
type StudentClassResponse struct {
	*models.Class
	Grade *float64 `json:"grade"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Register persists a new user with a hashed credential and
	// returns its id.
	Register(ctx context.Context, req *RegisterRequest) (uint, error)

	// Login verifies credentials and returns the user's public
	// profile. Session issuance belongs to the transport layer.
	Login(ctx context.Context, req *LoginRequest) (*models.User, error)
}

type ClassService interface {
	List(ctx context.Context) ([]*models.Class, error)
	GetDetail(ctx context.Context, classID uint, viewer Viewer) (*ClassDetailResponse, error)
	Create(ctx context.Context, req *CreateClassRequest, teacherID uint) (*models.Class, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error)

	// ExportRoster builds an xlsx workbook of the class roster for the
	// owning teacher.
	ExportRoster(ctx context.Context, classID, teacherID uint) (*excelize.File, string, error)
}

type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, classID uint) (*models.Enrollment, error)
	ListStudentClasses(ctx context.Context, studentID uint) ([]*StudentClassResponse, error)
	UpdateGrade(ctx context.Context, enrollmentID uint, grade float64, teacherID uint) (*models.Enrollment, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	Class() ClassService
	Enrollment() EnrollmentService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
