package user

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUniqueID(ctx context.Context, uniqueID string) (*User, error)
	GetUsersByIDs(ctx context.Context, ids []uint) ([]User, error)
	UpdateProfile(ctx context.Context, u *User) error
	UpdateApproval(ctx context.Context, u *User) error
	ListUsers(ctx context.Context, role Role) ([]User, error)
	ListPendingCaptains(ctx context.Context) ([]User, error)
	RecentUsers(ctx context.Context, limit int) ([]User, error)
	CountByRole(ctx context.Context) (map[Role]int64, error)
	CountPendingCaptains(ctx context.Context) (int64, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByUniqueID(ctx context.Context, uniqueID string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("unique_id = ?", uniqueID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUsersByIDs(ctx context.Context, ids []uint) ([]User, error) {
	var users []User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// UpdateProfile writes the self-editable columns of u and nothing else.
func (r *userRepository) UpdateProfile(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Model(u).Omit(clause.Associations).
		Select("name", "email", "phone", "updated_at").
		Updates(u).Error
}

// UpdateApproval writes the approval and subscription columns of u.
func (r *userRepository) UpdateApproval(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Model(u).Omit(clause.Associations).
		Select("is_approved", "subscription_status", "subscription_expiry_date", "updated_at").
		Updates(u).Error
}

// ListUsers returns every user, or only those of role when it is non-empty.
func (r *userRepository) ListUsers(ctx context.Context, role Role) ([]User, error) {
	var users []User
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Find(&users).Error
	return users, err
}

func (r *userRepository) ListPendingCaptains(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_approved = ?", RoleCaptain, false).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepository) RecentUsers(ctx context.Context, limit int) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&users).Error
	return users, err
}

func (r *userRepository) CountByRole(ctx context.Context) (map[Role]int64, error) {
	var rows []struct {
		Role  Role
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&User{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[Role]int64{RoleAdmin: 0, RoleCaptain: 0, RolePlayer: 0}
	for _, row := range rows {
		counts[row.Role] = row.Total
	}
	return counts, nil
}

func (r *userRepository) CountPendingCaptains(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("role = ? AND is_approved = ?", RoleCaptain, false).
		Count(&n).Error
	return n, err
}

// DeleteUser removes the row for good so the email and unique id can be reused.
func (r *userRepository) DeleteUser(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

