package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campusworks/gradebook-service/internal/models"
	"github.com/campusworks/gradebook-service/internal/repositories"
)

type classRepository struct {
	db *gorm.DB
}

func NewClassPostgreSQL(db *gorm.DB) repositories.ClassRepository {
	return &classRepository{db: db}
}

// classSummaryRow scans the class joined with its derived attributes.
type classSummaryRow struct {
	models.Class
	TeacherFirstName string
	TeacherLastName  string
	Enrolled         int
}

func (row *classSummaryRow) toClass() *models.Class {
	class := row.Class
	class.TeacherName = row.TeacherFirstName + " " + row.TeacherLastName
	class.EnrolledCount = row.Enrolled
	return &class
}

func summaryQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Class{}).
		Select("classes.*, users.first_name AS teacher_first_name, users.last_name AS teacher_last_name, " +
			"(SELECT COUNT(*) FROM enrollments WHERE enrollments.class_id = classes.id) AS enrolled").
		Joins("JOIN users ON users.id = classes.teacher_id")
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	if err := r.db.WithContext(ctx).Create(class).Error; err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

func (r *classRepository) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return nil, fmt.Errorf("get class by id: %w", err)
	}
	return &class, nil
}

func (r *classRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&class, id).Error; err != nil {
		return nil, fmt.Errorf("lock class by id: %w", err)
	}
	return &class, nil
}

func (r *classRepository) ExistsByCode(ctx context.Context, classCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Class{}).
		Where("class_code = ?", classCode).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check class code exists: %w", err)
	}
	return count > 0, nil
}

func (r *classRepository) List(ctx context.Context) ([]*models.Class, error) {
	var rows []classSummaryRow
	err := summaryQuery(r.db.WithContext(ctx)).
		Order("classes.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	classes := make([]*models.Class, 0, len(rows))
	for i := range rows {
		classes = append(classes, rows[i].toClass())
	}
	return classes, nil
}

func (r *classRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error) {
	var rows []classSummaryRow
	err := summaryQuery(r.db.WithContext(ctx)).
		Where("classes.teacher_id = ?", teacherID).
		Order("classes.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list classes by teacher: %w", err)
	}

	classes := make([]*models.Class, 0, len(rows))
	for i := range rows {
		classes = append(classes, rows[i].toClass())
	}
	return classes, nil
}

func (r *classRepository) GetSummary(ctx context.Context, id uint) (*models.Class, error) {
	var rows []classSummaryRow
	err := summaryQuery(r.db.WithContext(ctx)).
		Where("classes.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get class summary: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("get class summary: %w", gorm.ErrRecordNotFound)
	}
	return rows[0].toClass(), nil
}
