package user

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleCaptain Role = "Captain"
	RolePlayer  Role = "Player"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCaptain, RolePlayer:
		return true
	}
	return false
}

type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "Pending"
	SubscriptionActive   SubscriptionStatus = "Active"
	SubscriptionInactive SubscriptionStatus = "Inactive"
	SubscriptionExpired  SubscriptionStatus = "Expired"
)

// User is an account of any role. Subscription fields stay nil for non-captains.
type User struct {
	gorm.Model
	Name                   string              `gorm:"not null" json:"name"`
	Email                  string              `gorm:"uniqueIndex;not null" json:"email"`
	Phone                  string              `json:"phone"`
	Role                   Role                `gorm:"type:varchar(16);not null;index" json:"role"`
	Password               string              `gorm:"not null" json:"-"`
	UniqueID               string              `gorm:"uniqueIndex;size:16;not null" json:"uniqueId"`
	IsApproved             bool                `gorm:"not null;default:false" json:"isApproved"`
	SubscriptionStatus     *SubscriptionStatus `gorm:"type:varchar(16)" json:"subscriptionStatus,omitempty"`
	SubscriptionExpiryDate *time.Time          `json:"subscriptionExpiryDate,omitempty"`
	Sessions               []Session           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Session is one active login token of a user.
type Session struct {
	ID        uint      `gorm:"primarykey"`
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

// TokenBlacklist holds logged-out tokens until the retention sweep purges them.
type TokenBlacklist struct {
	ID        uint      `gorm:"primarykey"`
	Token     string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// New builds an unsaved user with the role defaults applied: captains start
// unapproved with an Inactive subscription, everyone else starts approved.
func New(name, email, phone string, role Role, passwordHash, uniqueID string) *User {
	u := &User{
		Name:       name,
		Email:      email,
		Phone:      phone,
		Role:       role,
		Password:   passwordHash,
		UniqueID:   uniqueID,
		IsApproved: role != RoleCaptain,
	}
	if role == RoleCaptain {
		inactive := SubscriptionInactive
		u.SubscriptionStatus = &inactive
	}
	return u
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsCaptain() bool { return u.Role == RoleCaptain }
func (u *User) IsPlayer() bool  { return u.Role == RolePlayer }

// SubscriptionExpired reports whether a captain's subscription has lapsed at now.
func (u *User) SubscriptionExpired(now time.Time) bool {
	if !u.IsCaptain() || u.SubscriptionExpiryDate == nil {
		return false
	}
	return now.After(*u.SubscriptionExpiryDate)
}

// CurrentSubscription is the stored status, except that a lapsed Active
// subscription reads as Expired.
func (u *User) CurrentSubscription(now time.Time) *SubscriptionStatus {
	if u.SubscriptionStatus == nil {
		return nil
	}
	if *u.SubscriptionStatus == SubscriptionActive && u.SubscriptionExpired(now) {
		expired := SubscriptionExpired
		return &expired
	}
	status := *u.SubscriptionStatus
	return &status
}

type UserResponse struct {
	ID                     uint                `json:"id"`
	Name                   string              `json:"name"`
	Email                  string              `json:"email"`
	Phone                  string              `json:"phone"`
	Role                   Role                `json:"role"`
	UniqueID               string              `json:"uniqueId"`
	IsApproved             bool                `json:"isApproved"`
	SubscriptionStatus     *SubscriptionStatus `json:"subscriptionStatus,omitempty"`
	SubscriptionExpiryDate *time.Time          `json:"subscriptionExpiryDate,omitempty"`
	CreatedAt              time.Time           `json:"createdAt"`
	UpdatedAt              time.Time           `json:"updatedAt"`
}

// ToResponse strips credentials and sessions from u.
func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:                     u.ID,
		Name:                   u.Name,
		Email:                  u.Email,
		Phone:                  u.Phone,
		Role:                   u.Role,
		UniqueID:               u.UniqueID,
		IsApproved:             u.IsApproved,
		SubscriptionStatus:     u.CurrentSubscription(time.Now()),
		SubscriptionExpiryDate: u.SubscriptionExpiryDate,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

// ToResponses maps a slice with ToResponse.
func ToResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToResponse(&users[i]))
	}
	return out
}

// Summary is the trimmed shape used when a user is nested in another entity.
type Summary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	UniqueID string `json:"uniqueId"`
}

func ToSummary(u *User) *Summary {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &Summary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, UniqueID: u.UniqueID}
}
