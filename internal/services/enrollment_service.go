package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/campusworks/gradebook-service/internal/models"
	"github.com/campusworks/gradebook-service/internal/repositories"
)

type enrollmentService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:   repo,
		logger: logger,
	}
}

// Enroll adds the student to the class. The class row is locked for the
// duration of the transaction, so the duplicate and capacity checks are
// evaluated against a snapshot no concurrent enrollment can invalidate:
// two racing requests for the last seat serialize on the lock and the
// second one sees the class full. The unique (student_id, class_id)
// index backstops the duplicate check.
func (s *enrollmentService) Enroll(ctx context.Context, studentID, classID uint) (*models.Enrollment, error) {
	s.logger.Info("Enrolling student", "student_id", studentID, "class_id", classID)

	enrollment := &models.Enrollment{
		StudentID: studentID,
		ClassID:   classID,
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		class, err := tx.Class().GetByIDForUpdate(ctx, classID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Class not found")
			}
			return NewPersistenceError("Failed to get class", err)
		}

		enrolled, err := tx.Enrollment().Exists(ctx, studentID, classID)
		if err != nil {
			return NewPersistenceError("Failed to check enrollment", err)
		}
		if enrolled {
			return NewConflictError("Already enrolled in this class")
		}

		count, err := tx.Enrollment().CountByClass(ctx, classID)
		if err != nil {
			return NewPersistenceError("Failed to count enrollments", err)
		}
		if count >= int64(class.Capacity) {
			return NewConflictError("Class has reached maximum capacity")
		}

		if err := tx.Enrollment().Create(ctx, enrollment); err != nil {
			return NewPersistenceError("Failed to create enrollment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return enrollment, nil
}

func (s *enrollmentService) ListStudentClasses(ctx context.Context, studentID uint) ([]*StudentClassResponse, error) {
	enrolled, err := s.repo.Enrollment().FindByStudent(ctx, studentID)
	if err != nil {
		return nil, NewPersistenceError("Failed to list enrolled classes", err)
	}

	classes := make([]*StudentClassResponse, 0, len(enrolled))
	for _, entry := range enrolled {
		class := entry.Class
		classes = append(classes, &StudentClassResponse{
			Class: &class,
			Grade: entry.Grade,
		})
	}
	return classes, nil
}

func (s *enrollmentService) UpdateGrade(ctx context.Context, enrollmentID uint, grade float64, teacherID uint) (*models.Enrollment, error) {
	s.logger.Info("Updating grade", "enrollment_id", enrollmentID, "teacher_id", teacherID)

	var updated *models.Enrollment
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		enrollment, err := tx.Enrollment().GetByIDWithClass(ctx, enrollmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Enrollment not found")
			}
			return NewPersistenceError("Failed to get enrollment", err)
		}

		// Only the teacher who owns the class may grade it.
		if enrollment.Class.TeacherID != teacherID {
			return NewAuthorizationError("Access denied")
		}

		if err := tx.Enrollment().UpdateGrade(ctx, enrollmentID, grade); err != nil {
			return NewPersistenceError("Failed to update grade", err)
		}

		enrollment.Grade = &grade
		updated = enrollment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
