package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campusworks/gradebook-service/internal/models"
	"github.com/campusworks/gradebook-service/internal/repositories"
)

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if err := r.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).First(&enrollment, id).Error; err != nil {
		return nil, fmt.Errorf("get enrollment by id: %w", err)
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) GetByIDWithClass(ctx context.Context, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Class").
		First(&enrollment, id).Error; err != nil {
		return nil, fmt.Errorf("get enrollment with class: %w", err)
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, studentID, classID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_id = ? AND class_id = ?", studentID, classID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check enrollment exists: %w", err)
	}
	return count > 0, nil
}

func (r *enrollmentRepository) CountByClass(ctx context.Context, classID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("class_id = ?", classID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count enrollments by class: %w", err)
	}
	return count, nil
}

func (r *enrollmentRepository) FindByClass(ctx context.Context, classID uint) ([]*repositories.RosterEntry, error) {
	var entries []*repositories.RosterEntry
	err := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Select("users.id AS student_id, users.first_name, users.last_name, users.email, "+
			"enrollments.id AS enrollment_id, enrollments.grade").
		Joins("JOIN users ON users.id = enrollments.student_id").
		Where("enrollments.class_id = ?", classID).
		Order("enrollments.id ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("find enrollments by class: %w", err)
	}
	return entries, nil
}

func (r *enrollmentRepository) FindByStudent(ctx context.Context, studentID uint) ([]*repositories.StudentClass, error) {
	// Classes with derived fields, annotated with the student's own grade.
	type studentClassRow struct {
		classSummaryRow
		Grade *float64
	}

	var rows []studentClassRow
	err := summaryQuery(r.db.WithContext(ctx)).
		Select("classes.*, users.first_name AS teacher_first_name, users.last_name AS teacher_last_name, "+
			"(SELECT COUNT(*) FROM enrollments e WHERE e.class_id = classes.id) AS enrolled, "+
			"enrollments.grade AS grade").
		Joins("JOIN enrollments ON enrollments.class_id = classes.id").
		Where("enrollments.student_id = ?", studentID).
		Order("enrollments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find enrollments by student: %w", err)
	}

	classes := make([]*repositories.StudentClass, 0, len(rows))
	for i := range rows {
		classes = append(classes, &repositories.StudentClass{
			Class: *rows[i].toClass(),
			Grade: rows[i].Grade,
		})
	}
	return classes, nil
}

func (r *enrollmentRepository) UpdateGrade(ctx context.Context, id uint, grade float64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("id = ?", id).
		Update("grade", grade)
	if result.Error != nil {
		return fmt.Errorf("update grade: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update grade: %w", gorm.ErrRecordNotFound)
	}
	return nil
}
