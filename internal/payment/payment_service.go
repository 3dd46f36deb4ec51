package payment

import (
	"context"
	"math/rand/v2"

	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/apperr"
	"go.uber.org/zap"
)

// PaymentService runs the dummy payment gateway. A payment succeeds with
// probability successRate.
type PaymentService struct {
	repo        PaymentRepository
	successRate float64
	roll        func() float64
	log         *zap.SugaredLogger
}

func NewPaymentService(repo PaymentRepository, successRate float64, log *zap.SugaredLogger) *PaymentService {
	return &PaymentService{repo: repo, successRate: successRate, roll: rand.Float64, log: log}
}

// ProcessPayment charges the captain and always records the attempt. On
// success the captain's subscription moves to Pending until an admin approves
// it. A declined payment is not an error; callers check the returned status.
func (s *PaymentService) ProcessPayment(ctx context.Context, captain *user.User, req PaymentRequest) (*Transaction, error) {
	if !captain.IsCaptain() {
		return nil, apperr.Validation("Invalid captain ID")
	}
	if req.Amount <= 0 {
		return nil, apperr.Validation("Amount must be greater than zero")
	}

	captainID := captain.ID
	txn := &Transaction{CaptainID: &captainID, Amount: req.Amount, Status: StatusFailed}
	if s.roll() < s.successRate {
		txn.Status = StatusCompleted
	}

	err := s.repo.WithTransaction(ctx, func(tx PaymentRepository) error {
		if err := tx.CreateTransaction(ctx, txn); err != nil {
			return err
		}
		if txn.Status != StatusCompleted {
			return nil
		}
		return tx.SetSubscriptionStatus(ctx, captainID, user.SubscriptionPending)
	})
	if err != nil {
		return nil, apperr.Internal(err, "process payment")
	}

	if txn.Status == StatusCompleted {
		s.log.Infow("payment completed", "transaction_id", txn.ID, "captain_id", captainID, "amount", txn.Amount)
	} else {
		s.log.Warnw("payment failed", "transaction_id", txn.ID, "captain_id", captainID, "amount", txn.Amount)
	}
	return s.load(ctx, txn.ID)
}

func (s *PaymentService) load(ctx context.Context, id uint) (*Transaction, error) {
	txn, err := s.repo.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, apperr.FromStore(err, "load transaction", "Transaction not found")
	}
	return txn, nil
}

func (s *PaymentService) ListTransactions(ctx context.Context) ([]Transaction, error) {
	txns, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "list transactions")
	}
	return txns, nil
}

func (s *PaymentService) CaptainTransactions(ctx context.Context, captain *user.User) ([]Transaction, error) {
	txns, err := s.repo.ListCaptainTransactions(ctx, captain.ID)
	if err != nil {
		return nil, apperr.Internal(err, "list captain transactions")
	}
	return txns, nil
}

// GetTransaction is open to admins and to the captain who paid.
func (s *PaymentService) GetTransaction(ctx context.Context, actor *user.User, id uint) (*Transaction, error) {
	txn, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return txn, nil
	}
	if txn.CaptainID == nil || *txn.CaptainID != actor.ID {
		return nil, apperr.Forbidden("Not authorized to view this transaction")
	}
	return txn, nil
}

// UpdateStatus is the admin override. It only touches the transaction.
func (s *PaymentService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*Transaction, error) {
	status := TransactionStatus(req.Status)
	if !status.Valid() {
		return nil, apperr.Validation("Invalid status. Must be one of: Pending, Completed, Failed")
	}
	if err := s.repo.UpdateTransactionStatus(ctx, req.TransactionID, status); err != nil {
		return nil, apperr.FromStore(err, "update transaction status", "Transaction not found")
	}
	s.log.Infow("transaction status overridden", "transaction_id", req.TransactionID, "status", status)
	return s.load(ctx, req.TransactionID)
}
