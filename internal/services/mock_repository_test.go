package services

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/campusworks/gradebook-service/internal/models"
	"github.com/campusworks/gradebook-service/internal/repositories"
)

// memoryRepository is an in-memory Repository for service tests. It
// honors the same contracts as the postgres implementation: not-found
// reads return gorm.ErrRecordNotFound, and derived class fields
// (teacher_name, enrolled_count) are populated on summary reads.
type memoryRepository struct {
	mu sync.Mutex

	users       map[uint]*models.User
	classes     map[uint]*models.Class
	enrollments map[uint]*models.Enrollment

	nextUserID       uint
	nextClassID      uint
	nextEnrollmentID uint
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users:       make(map[uint]*models.User),
		classes:     make(map[uint]*models.Class),
		enrollments: make(map[uint]*models.Enrollment),
	}
}

func (m *memoryRepository) User() repositories.UserRepository {
	return &memoryUserRepo{inner: m}
}

func (m *memoryRepository) Class() repositories.ClassRepository {
	return &memoryClassRepo{inner: m}
}

func (m *memoryRepository) Enrollment() repositories.EnrollmentRepository {
	return &memoryEnrollmentRepo{inner: m}
}

// WithTransaction runs fn under the repository mutex, which gives tests
// the same all-or-nothing visibility a database transaction would.
func (m *memoryRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(&unlockedRepository{m})
}

func (m *memoryRepository) Ping(ctx context.Context) error { return nil }
func (m *memoryRepository) Close() error                   { return nil }

// unlockedRepository is handed to transaction callbacks; the caller
// already holds the mutex.
type unlockedRepository struct {
	inner *memoryRepository
}

func (u *unlockedRepository) User() repositories.UserRepository {
	return &memoryUserRepo{inner: u.inner, locked: true}
}
func (u *unlockedRepository) Class() repositories.ClassRepository {
	return &memoryClassRepo{inner: u.inner, locked: true}
}
func (u *unlockedRepository) Enrollment() repositories.EnrollmentRepository {
	return &memoryEnrollmentRepo{inner: u.inner, locked: true}
}
func (u *unlockedRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(u)
}
func (u *unlockedRepository) Ping(ctx context.Context) error { return nil }
func (u *unlockedRepository) Close() error                   { return nil }

// ----- users -----

type memoryUserRepo struct {
	inner  *memoryRepository
	locked bool
}

func (r *memoryUserRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.inner.mu.Lock()
	return r.inner.mu.Unlock
}

func (r *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	defer r.lock()()
	r.inner.nextUserID++
	user.ID = r.inner.nextUserID
	clone := *user
	r.inner.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer r.lock()()
	user, ok := r.inner.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer r.lock()()
	for _, user := range r.inner.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	defer r.lock()()
	for _, user := range r.inner.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	defer r.lock()()
	for _, user := range r.inner.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryUserRepo) Count(ctx context.Context) (int64, error) {
	defer r.lock()()
	return int64(len(r.inner.users)), nil
}

// ----- classes -----

type memoryClassRepo struct {
	inner  *memoryRepository
	locked bool
}

func (r *memoryClassRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.inner.mu.Lock()
	return r.inner.mu.Unlock
}

func (r *memoryClassRepo) Create(ctx context.Context, class *models.Class) error {
	defer r.lock()()
	r.inner.nextClassID++
	class.ID = r.inner.nextClassID
	clone := *class
	r.inner.classes[class.ID] = &clone
	return nil
}

func (r *memoryClassRepo) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	defer r.lock()()
	class, ok := r.inner.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *class
	return &clone, nil
}

func (r *memoryClassRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Class, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryClassRepo) ExistsByCode(ctx context.Context, classCode string) (bool, error) {
	defer r.lock()()
	for _, class := range r.inner.classes {
		if class.ClassCode == classCode {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryClassRepo) List(ctx context.Context) ([]*models.Class, error) {
	defer r.lock()()
	ids := make([]uint, 0, len(r.inner.classes))
	for id := range r.inner.classes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	classes := make([]*models.Class, 0, len(ids))
	for _, id := range ids {
		classes = append(classes, r.inner.summarize(id))
	}
	return classes, nil
}

func (r *memoryClassRepo) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	classes := make([]*models.Class, 0)
	for _, class := range all {
		if class.TeacherID == teacherID {
			classes = append(classes, class)
		}
	}
	return classes, nil
}

func (r *memoryClassRepo) GetSummary(ctx context.Context, id uint) (*models.Class, error) {
	defer r.lock()()
	if _, ok := r.inner.classes[id]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.inner.summarize(id), nil
}

// summarize clones the class with derived fields filled in. Caller
// holds the mutex.
func (m *memoryRepository) summarize(id uint) *models.Class {
	clone := *m.classes[id]
	if teacher, ok := m.users[clone.TeacherID]; ok {
		clone.TeacherName = teacher.FullName()
	}
	for _, enrollment := range m.enrollments {
		if enrollment.ClassID == id {
			clone.EnrolledCount++
		}
	}
	return &clone
}

// ----- enrollments -----

type memoryEnrollmentRepo struct {
	inner  *memoryRepository
	locked bool
}

func (r *memoryEnrollmentRepo) lock() func() {
	if r.locked {
		return func() {}
	}
	r.inner.mu.Lock()
	return r.inner.mu.Unlock
}

func (r *memoryEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	defer r.lock()()
	r.inner.nextEnrollmentID++
	enrollment.ID = r.inner.nextEnrollmentID
	clone := *enrollment
	r.inner.enrollments[enrollment.ID] = &clone
	return nil
}

func (r *memoryEnrollmentRepo) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	defer r.lock()()
	enrollment, ok := r.inner.enrollments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *enrollment
	return &clone, nil
}

func (r *memoryEnrollmentRepo) GetByIDWithClass(ctx context.Context, id uint) (*models.Enrollment, error) {
	defer r.lock()()
	enrollment, ok := r.inner.enrollments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *enrollment
	if class, ok := r.inner.classes[clone.ClassID]; ok {
		clone.Class = *class
	}
	return &clone, nil
}

func (r *memoryEnrollmentRepo) Exists(ctx context.Context, studentID, classID uint) (bool, error) {
	defer r.lock()()
	for _, enrollment := range r.inner.enrollments {
		if enrollment.StudentID == studentID && enrollment.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryEnrollmentRepo) CountByClass(ctx context.Context, classID uint) (int64, error) {
	defer r.lock()()
	var count int64
	for _, enrollment := range r.inner.enrollments {
		if enrollment.ClassID == classID {
			count++
		}
	}
	return count, nil
}

func (r *memoryEnrollmentRepo) FindByClass(ctx context.Context, classID uint) ([]*repositories.RosterEntry, error) {
	defer r.lock()()
	ids := make([]uint, 0)
	for id, enrollment := range r.inner.enrollments {
		if enrollment.ClassID == classID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	roster := make([]*repositories.RosterEntry, 0, len(ids))
	for _, id := range ids {
		enrollment := r.inner.enrollments[id]
		entry := &repositories.RosterEntry{
			StudentID:    enrollment.StudentID,
			EnrollmentID: enrollment.ID,
			Grade:        enrollment.Grade,
		}
		if student, ok := r.inner.users[enrollment.StudentID]; ok {
			entry.FirstName = student.FirstName
			entry.LastName = student.LastName
			entry.Email = student.Email
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

func (r *memoryEnrollmentRepo) FindByStudent(ctx context.Context, studentID uint) ([]*repositories.StudentClass, error) {
	defer r.lock()()
	ids := make([]uint, 0)
	for id, enrollment := range r.inner.enrollments {
		if enrollment.StudentID == studentID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	classes := make([]*repositories.StudentClass, 0, len(ids))
	for _, id := range ids {
		enrollment := r.inner.enrollments[id]
		classes = append(classes, &repositories.StudentClass{
			Class: *r.inner.summarize(enrollment.ClassID),
			Grade: enrollment.Grade,
		})
	}
	return classes, nil
}

func (r *memoryEnrollmentRepo) UpdateGrade(ctx context.Context, id uint, grade float64) error {
	defer r.lock()()
	enrollment, ok := r.inner.enrollments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	enrollment.Grade = &grade
	return nil
}
