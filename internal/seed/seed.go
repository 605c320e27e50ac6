package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campusworks/gradebook-service/internal/models"
	"github.com/campusworks/gradebook-service/internal/repositories"
	"github.com/campusworks/gradebook-service/internal/security"
)

// DemoData populates the database with a small demo roster: two
// teachers, three students, four classes and six enrollments. It is a
// no-op when any user already exists, so restarts never duplicate data.
func DemoData(ctx context.Context, repo repositories.Repository, logger *slog.Logger) error {
	count, err := repo.User().Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		logger.Info("Demo data already exists, skipping seed")
		return nil
	}

	hasher := security.NewArgon2Hasher(security.DefaultArgon2Params())

	return repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		teachers := []*models.User{
			{Username: "teacher1", Email: "jsmith@school.edu", FirstName: "John", LastName: "Smith", UserType: models.UserTypeTeacher},
			{Username: "teacher2", Email: "jdoe@school.edu", FirstName: "Jane", LastName: "Doe", UserType: models.UserTypeTeacher},
		}
		students := []*models.User{
			{Username: "student1", Email: "agreen@school.edu", FirstName: "Alice", LastName: "Green", UserType: models.UserTypeStudent},
			{Username: "student2", Email: "bbrown@school.edu", FirstName: "Bob", LastName: "Brown", UserType: models.UserTypeStudent},
			{Username: "student3", Email: "cdavis@school.edu", FirstName: "Charlie", LastName: "Davis", UserType: models.UserTypeStudent},
		}

		for _, user := range append(teachers, students...) {
			hash, err := hasher.Hash("password123")
			if err != nil {
				return fmt.Errorf("hash demo password: %w", err)
			}
			user.PasswordHash = hash
			if err := tx.User().Create(ctx, user); err != nil {
				return fmt.Errorf("create demo user %s: %w", user.Username, err)
			}
		}

		classes := []*models.Class{
			{ClassCode: "MATH101", ClassName: "Introduction to Algebra", Description: ptr("Basic algebraic concepts for beginners"), Capacity: 30, TeacherID: teachers[0].ID},
			{ClassCode: "MATH201", ClassName: "Advanced Calculus", Description: ptr("Calculus for science and engineering students"), Capacity: 25, TeacherID: teachers[0].ID},
			{ClassCode: "SCI101", ClassName: "Introduction to Biology", Description: ptr("Basic principles of biology and life sciences"), Capacity: 35, TeacherID: teachers[1].ID},
			{ClassCode: "SCI201", ClassName: "Chemistry Fundamentals", Description: ptr("Basic chemistry concepts and lab work"), Capacity: 20, TeacherID: teachers[1].ID},
		}
		for _, class := range classes {
			if err := tx.Class().Create(ctx, class); err != nil {
				return fmt.Errorf("create demo class %s: %w", class.ClassCode, err)
			}
		}

		enrollments := []*models.Enrollment{
			{StudentID: students[0].ID, ClassID: classes[0].ID, Grade: ptr(85.5)},
			{StudentID: students[0].ID, ClassID: classes[2].ID, Grade: ptr(92.0)},
			{StudentID: students[1].ID, ClassID: classes[0].ID, Grade: ptr(78.5)},
			{StudentID: students[1].ID, ClassID: classes[3].ID},
			{StudentID: students[2].ID, ClassID: classes[1].ID},
			{StudentID: students[2].ID, ClassID: classes[2].ID},
		}
		for _, enrollment := range enrollments {
			if err := tx.Enrollment().Create(ctx, enrollment); err != nil {
				return fmt.Errorf("create demo enrollment: %w", err)
			}
		}

		logger.Info("Demo data created",
			"teachers", len(teachers),
			"students", len(students),
			"classes", len(classes),
			"enrollments", len(enrollments))
		return nil
	})
}

func ptr[T any](v T) *T {
	return &v
}
