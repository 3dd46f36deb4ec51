package payment

import (
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "Pending"
	StatusCompleted TransactionStatus = "Completed"
	StatusFailed    TransactionStatus = "Failed"
)

func (s TransactionStatus) Valid() bool {
	return s == StatusPending || s == StatusCompleted || s == StatusFailed
}

// Transaction records one subscription payment attempt. CaptainID is cleared
// when the captain is deleted so the ledger survives.
type Transaction struct {
	gorm.Model
	CaptainID *uint             `json:"captain_id" gorm:"index"`
	Captain   *user.User        `json:"-" gorm:"foreignKey:CaptainID;constraint:OnDelete:SET NULL"`
	Amount    float64           `json:"amount" gorm:"not null"`
	Status    TransactionStatus `json:"status" gorm:"type:varchar(16);not null;index"`
}

// --- DTOs for requests ---

type PaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0" example:"49.99"`
}

type UpdateStatusRequest struct {
	TransactionID uint   `json:"transactionId" binding:"required" example:"1"`
	Status        string `json:"status" binding:"required,oneof=Pending Completed Failed" example:"Completed"`
}

// --- Responses ---

type CaptainSummary struct {
	user.Summary
	Role               user.Role                `json:"role"`
	SubscriptionStatus *user.SubscriptionStatus `json:"subscriptionStatus"`
}

type TransactionResponse struct {
	ID        uint              `json:"id"`
	CaptainID *uint             `json:"captainId"`
	Captain   *CaptainSummary   `json:"captain"`
	Amount    float64           `json:"amount"`
	Status    TransactionStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func ToResponse(t *Transaction) TransactionResponse {
	res := TransactionResponse{
		ID:        t.ID,
		CaptainID: t.CaptainID,
		Amount:    t.Amount,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if s := user.ToSummary(t.Captain); s != nil {
		res.Captain = &CaptainSummary{
			Summary:            *s,
			Role:               t.Captain.Role,
			SubscriptionStatus: t.Captain.CurrentSubscription(time.Now()),
		}
	}
	return res
}

func ToResponses(txns []Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, ToResponse(&txns[i]))
	}
	return out
}
