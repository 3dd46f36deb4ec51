package admin

import (
	"context"

	"github.com/DhavalSuthar-24/leaguehub/internal/payment"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"gorm.io/gorm"
)

// Stores groups the repositories an account cascade touches. Inside a
// UnitOfWork they all share one database transaction.
type Stores struct {
	Users    user.UserRepository
	Sessions user.SessionRepository
	Teams    team.TeamRepository
	Payments payment.PaymentRepository
}

// UnitOfWork runs fn against stores bound to a single transaction. An error
// from fn rolls every write back.
type UnitOfWork func(ctx context.Context, fn func(Stores) error) error

func newStores(db *gorm.DB) Stores {
	return Stores{
		Users:    user.NewUserRepository(db),
		Sessions: user.NewSessionRepository(db),
		Teams:    team.NewTeamRepository(db),
		Payments: payment.NewPaymentRepository(db),
	}
}

// GormUnitOfWork opens a gorm transaction per call.
func GormUnitOfWork(db *gorm.DB) UnitOfWork {
	return func(ctx context.Context, fn func(Stores) error) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(newStores(tx))
		})
	}
}
