package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/classware/gradebook-service/internal/models"
	"github.com/classware/gradebook-service/internal/repositories"
)

// UserPostgreSQL implements the UserRepository interface
type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := u.getDB(tx)
	return db.WithContext(ctx).Create(user).Error
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	db := u.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := u.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	db := u.getDB(tx)
	var users []*models.User
	var total int64

	query := db.WithContext(ctx).Model(&models.User{})
	query = u.applyUserFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("name ASC").Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (u *UserPostgreSQL) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := u.getDB(tx)
	return db.WithContext(ctx).Save(user).Error
}

func (u *UserPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := u.getDB(tx)
	return db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (u *UserPostgreSQL) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := u.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (u *UserPostgreSQL) applyUserFilters(query *gorm.DB, filters repositories.UserFilters) *gorm.DB {
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Group != nil {
		query = query.Where("group_label = ?", *filters.Group)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	return query
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (u *UserPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return u.db
}

// ===== ROSTER REPOSITORY IMPLEMENTATION =====

// RosterPostgreSQL implements the RosterRepository interface over the
// teacher_students join table.
type RosterPostgreSQL struct {
	db *gorm.DB
}

func NewRosterPostgreSQL(db *gorm.DB) repositories.RosterRepository {
	return &RosterPostgreSQL{db: db}
}

func (r *RosterPostgreSQL) Add(ctx context.Context, tx *gorm.DB, teacherID, studentID uint) error {
	db := r.getDB(tx)
	err := db.WithContext(ctx).
		Exec("INSERT INTO teacher_students (teacher_id, student_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			teacherID, studentID).Error
	if err != nil {
		return fmt.Errorf("failed to add roster link: %w", err)
	}
	return nil
}

func (r *RosterPostgreSQL) Remove(ctx context.Context, tx *gorm.DB, teacherID, studentID uint) error {
	db := r.getDB(tx)
	err := db.WithContext(ctx).
		Exec("DELETE FROM teacher_students WHERE teacher_id = ? AND student_id = ?",
			teacherID, studentID).Error
	if err != nil {
		return fmt.Errorf("failed to remove roster link: %w", err)
	}
	return nil
}

func (r *RosterPostgreSQL) Contains(ctx context.Context, tx *gorm.DB, teacherID, studentID uint) (bool, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Table("teacher_students").
		Where("teacher_id = ? AND student_id = ?", teacherID, studentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RosterPostgreSQL) ListStudents(ctx context.Context, tx *gorm.DB, teacherID uint) ([]*models.User, error) {
	db := r.getDB(tx)
	var students []*models.User
	if err := db.WithContext(ctx).
		Joins("JOIN teacher_students ts ON ts.student_id = users.id").
		Where("ts.teacher_id = ? AND users.role = ?", teacherID, models.RoleStudent).
		Order("users.name ASC").
		Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list roster students: %w", err)
	}
	return students, nil
}

func (r *RosterPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
