package payment

import (
	"context"

	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	CreateTransaction(ctx context.Context, txn *Transaction) error
	GetTransactionByID(ctx context.Context, id uint) (*Transaction, error)
	ListTransactions(ctx context.Context) ([]Transaction, error)
	ListCaptainTransactions(ctx context.Context, captainID uint) ([]Transaction, error)
	UpdateTransactionStatus(ctx context.Context, id uint, status TransactionStatus) error
	DetachCaptain(ctx context.Context, captainID uint) error
	SetSubscriptionStatus(ctx context.Context, captainID uint, status user.SubscriptionStatus) error

	WithTransaction(ctx context.Context, txFunc func(PaymentRepository) error) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func withCaptain(db *gorm.DB) *gorm.DB {
	return db.Preload("Captain")
}

func (r *paymentRepository) CreateTransaction(ctx context.Context, txn *Transaction) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(txn).Error
}

func (r *paymentRepository) GetTransactionByID(ctx context.Context, id uint) (*Transaction, error) {
	var txn Transaction
	if err := withCaptain(r.db.WithContext(ctx)).First(&txn, id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *paymentRepository) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var txns []Transaction
	err := withCaptain(r.db.WithContext(ctx)).Order("created_at DESC").Order("id DESC").Find(&txns).Error
	return txns, err
}

func (r *paymentRepository) ListCaptainTransactions(ctx context.Context, captainID uint) ([]Transaction, error) {
	var txns []Transaction
	err := withCaptain(r.db.WithContext(ctx)).
		Where("captain_id = ?", captainID).
		Order("created_at DESC").Order("id DESC").
		Find(&txns).Error
	return txns, err
}

func (r *paymentRepository) UpdateTransactionStatus(ctx context.Context, id uint, status TransactionStatus) error {
	res := r.db.WithContext(ctx).Model(&Transaction{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DetachCaptain keeps a deleted captain's transactions without an owner.
func (r *paymentRepository) DetachCaptain(ctx context.Context, captainID uint) error {
	return r.db.WithContext(ctx).Model(&Transaction{}).
		Where("captain_id = ?", captainID).
		Update("captain_id", nil).Error
}

func (r *paymentRepository) SetSubscriptionStatus(ctx context.Context, captainID uint, status user.SubscriptionStatus) error {
	res := r.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ? AND role = ?", captainID, user.RoleCaptain).
		Update("subscription_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *paymentRepository) WithTransaction(ctx context.Context, txFunc func(PaymentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&paymentRepository{db: tx})
	})
}
