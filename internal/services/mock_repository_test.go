package services

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/repositories"
)

// MockRepository is an in-memory Repository used by the service tests.
type MockRepository struct {
	users       map[uint]*models.User
	assignments map[uint]*models.Assignment
	submissions map[uint]*models.Submission
	roster      map[uint][]uint // teacher id -> student ids
	nextID      uint
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:       make(map[uint]*models.User),
		assignments: make(map[uint]*models.Assignment),
		submissions: make(map[uint]*models.Submission),
		roster:      make(map[uint][]uint),
		nextID:      1,
	}
}

func (m *MockRepository) allocID() uint {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MockRepository) AddUser(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = m.allocID()
	}
	m.users[user.ID] = user
	return user
}

func (m *MockRepository) AddAssignment(assignment *models.Assignment) *models.Assignment {
	if assignment.ID == 0 {
		assignment.ID = m.allocID()
	}
	m.assignments[assignment.ID] = assignment
	return assignment
}

func (m *MockRepository) AddSubmission(submission *models.Submission) *models.Submission {
	if submission.ID == 0 {
		submission.ID = m.allocID()
	}
	m.submissions[submission.ID] = submission
	return submission
}

func (m *MockRepository) LinkStudent(teacherID, studentID uint) {
	m.roster[teacherID] = append(m.roster[teacherID], studentID)
}

func (m *MockRepository) User() repositories.UserRepository             { return &mockUserRepo{m} }
func (m *MockRepository) Roster() repositories.RosterRepository         { return &mockRosterRepo{m} }
func (m *MockRepository) Assignment() repositories.AssignmentRepository { return &mockAssignmentRepo{m} }
func (m *MockRepository) Submission() repositories.SubmissionRepository { return &mockSubmissionRepo{m} }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *MockRepository) Ping(ctx context.Context) error { return nil }
func (m *MockRepository) Close() error                   { return nil }

// ===== USER =====

type mockUserRepo struct{ m *MockRepository }

func (r *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	r.m.AddUser(user)
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	user, ok := r.m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *mockUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	for _, user := range r.m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	for _, user := range r.m.users {
		users = append(users, user)
	}
	return users, int64(len(users)), nil
}

func (r *mockUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	r.m.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(r.m.users, id)
	return nil
}

func (r *mockUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, tx, email)
	return err == nil, nil
}

// ===== ROSTER =====

type mockRosterRepo struct{ m *MockRepository }

func (r *mockRosterRepo) Add(ctx context.Context, tx *gorm.DB, teacherID, studentID uint) error {
	r.m.LinkStudent(teacherID, studentID)
	return nil
}

func (r *mockRosterRepo) Remove(ctx context.Context, tx *gorm.DB, teacherID, studentID uint) error {
	ids := r.m.roster[teacherID]
	for i, id := range ids {
		if id == studentID {
			r.m.roster[teacherID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (r *mockRosterRepo) Contains(ctx context.Context, tx *gorm.DB, teacherID, studentID uint) (bool, error) {
	for _, id := range r.m.roster[teacherID] {
		if id == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockRosterRepo) ListStudents(ctx context.Context, tx *gorm.DB, teacherID uint) ([]*models.User, error) {
	var students []*models.User
	for _, id := range r.m.roster[teacherID] {
		if user, ok := r.m.users[id]; ok {
			students = append(students, user)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students, nil
}

// ===== ASSIGNMENT =====

type mockAssignmentRepo struct{ m *MockRepository }

func (r *mockAssignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	r.m.AddAssignment(assignment)
	return nil
}

func (r *mockAssignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error) {
	assignment, ok := r.m.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (r *mockAssignmentRepo) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error) {
	return r.GetByID(ctx, tx, id)
}

func (r *mockAssignmentRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error) {
	var assignments []*models.Assignment
	for _, a := range r.m.assignments {
		if filters.CreatedBy != nil && a.CreatedBy != *filters.CreatedBy {
			continue
		}
		assignments = append(assignments, a)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, int64(len(assignments)), nil
}

func (r *mockAssignmentRepo) Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	r.m.assignments[assignment.ID] = assignment
	return nil
}

func (r *mockAssignmentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(r.m.assignments, id)
	return nil
}

func (r *mockAssignmentRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(r.m.assignments)), nil
}

// ===== SUBMISSION =====

type mockSubmissionRepo struct{ m *MockRepository }

func (r *mockSubmissionRepo) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	r.m.AddSubmission(submission)
	return nil
}

func (r *mockSubmissionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	submission, ok := r.m.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (r *mockSubmissionRepo) GetByIDWithDetails(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	submission, err := r.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if assignment, ok := r.m.assignments[submission.AssignmentID]; ok {
		submission.Assignment = *assignment
	}
	return submission, nil
}

func (r *mockSubmissionRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	var submissions []*models.Submission
	for _, s := range r.m.submissions {
		if filters.StudentID != nil && s.StudentID != *filters.StudentID {
			continue
		}
		if filters.AssignmentID != nil && s.AssignmentID != *filters.AssignmentID {
			continue
		}
		if assignment, ok := r.m.assignments[s.AssignmentID]; ok {
			s.Assignment = *assignment
		}
		submissions = append(submissions, s)
	}
	sort.Slice(submissions, func(i, j int) bool { return submissions[i].ID < submissions[j].ID })
	return submissions, int64(len(submissions)), nil
}

func (r *mockSubmissionRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uint, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	filters.StudentID = &studentID
	return r.List(ctx, tx, filters)
}

func (r *mockSubmissionRepo) ListByAssignment(ctx context.Context, tx *gorm.DB, assignmentID uint, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	filters.AssignmentID = &assignmentID
	return r.List(ctx, tx, filters)
}

func (r *mockSubmissionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*models.Submission, error) {
	submissions, _, err := r.List(ctx, tx, repositories.SubmissionFilters{})
	return submissions, err
}

func (r *mockSubmissionRepo) Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	r.m.submissions[submission.ID] = submission
	return nil
}
