package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/campusworks/gradebook-service/internal/models"
	"github.com/campusworks/gradebook-service/internal/repositories"
)

type classService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewClassService(repo repositories.Repository, logger *slog.Logger) ClassService {
	return &classService{
		repo:   repo,
		logger: logger,
	}
}

func (s *classService) List(ctx context.Context) ([]*models.Class, error) {
	classes, err := s.repo.Class().List(ctx)
	if err != nil {
		return nil, NewPersistenceError("Failed to list classes", err)
	}
	return classes, nil
}

func (s *classService) GetDetail(ctx context.Context, classID uint, viewer Viewer) (*ClassDetailResponse, error) {
	class, err := s.repo.Class().GetSummary(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Class not found")
		}
		return nil, NewPersistenceError("Failed to get class", err)
	}

	detail := &ClassDetailResponse{Class: class}

	// The roster is visible only to the owning teacher. Students and
	// other teachers get the bare summary.
	if viewer.UserType == models.UserTypeTeacher && class.TeacherID == viewer.UserID {
		roster, err := s.repo.Enrollment().FindByClass(ctx, classID)
		if err != nil {
			return nil, NewPersistenceError("Failed to load roster", err)
		}
		if roster == nil {
			roster = []*repositories.RosterEntry{}
		}
		detail.Students = roster
	}

	return detail, nil
}

func (s *classService) Create(ctx context.Context, req *CreateClassRequest, teacherID uint) (*models.Class, error) {
	s.logger.Info("Creating class", "class_code", req.ClassCode, "teacher_id", teacherID)

	class := &models.Class{
		ClassCode:   req.ClassCode,
		ClassName:   req.ClassName,
		Description: req.Description,
		Capacity:    req.Capacity,
		TeacherID:   teacherID,
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		taken, err := tx.Class().ExistsByCode(ctx, req.ClassCode)
		if err != nil {
			return NewPersistenceError("Failed to check class code", err)
		}
		if taken {
			return NewConflictError("Class code already exists")
		}

		if err := tx.Class().Create(ctx, class); err != nil {
			return NewPersistenceError("Failed to create class", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Class().GetSummary(ctx, class.ID)
	if err != nil {
		return nil, NewPersistenceError("Failed to load created class", err)
	}
	return created, nil
}

func (s *classService) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error) {
	classes, err := s.repo.Class().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, NewPersistenceError("Failed to list teacher classes", err)
	}
	return classes, nil
}

func (s *classService) ExportRoster(ctx context.Context, classID, teacherID uint) (*excelize.File, string, error) {
	class, err := s.repo.Class().GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", NewNotFoundError("Class not found")
		}
		return nil, "", NewPersistenceError("Failed to get class", err)
	}

	if class.TeacherID != teacherID {
		return nil, "", NewAuthorizationError("Access denied")
	}

	roster, err := s.repo.Enrollment().FindByClass(ctx, classID)
	if err != nil {
		return nil, "", NewPersistenceError("Failed to load roster", err)
	}

	file := excelize.NewFile()
	sheet := file.GetSheetName(0)

	headers := []string{"Student ID", "First Name", "Last Name", "Email", "Grade"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", NewPersistenceError("Failed to build roster sheet", err)
		}
	}

	for row, entry := range roster {
		values := []interface{}{entry.StudentID, entry.FirstName, entry.LastName, entry.Email}
		if entry.Grade != nil {
			values = append(values, *entry.Grade)
		} else {
			values = append(values, "")
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", NewPersistenceError("Failed to build roster sheet", err)
			}
		}
	}

	filename := fmt.Sprintf("%s_roster.xlsx", class.ClassCode)
	return file, filename, nil
}
