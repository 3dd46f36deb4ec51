package user

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository stores the active tokens of each user and the blacklist of
// tokens revoked by logout.
type SessionRepository interface {
	CreateSession(ctx context.Context, s *Session) error
	SessionExists(ctx context.Context, userID uint, token string) (bool, error)
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	RevokeSession(ctx context.Context, userID uint, token string) error
	DeleteUserSessions(ctx context.Context, userID uint) error
	PurgeBlacklist(ctx context.Context, before time.Time) (int64, error)
	PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateSession(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepository) SessionExists(ctx context.Context, userID uint, token string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Session{}).
		Where("user_id = ? AND token = ?", userID, token).
		Count(&n).Error
	return n > 0, err
}

func (r *sessionRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&TokenBlacklist{}).Where("token = ?", token).Count(&n).Error
	return n > 0, err
}

// RevokeSession drops the session and blacklists its token in one transaction.
func (r *sessionRepository) RevokeSession(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND token = ?", userID, token).Delete(&Session{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&TokenBlacklist{Token: token}).Error
	})
}

func (r *sessionRepository) DeleteUserSessions(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Session{}).Error
}

func (r *sessionRepository) PurgeBlacklist(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", before).Delete(&TokenBlacklist{})
	return res.RowsAffected, res.Error
}

func (r *sessionRepository) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&Session{})
	return res.RowsAffected, res.Error
}
