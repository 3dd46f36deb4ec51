package team

import (
	"strconv"
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"gorm.io/gorm"
)

// CaptainJerseyNumber is handed to the captain when the team is created.
const CaptainJerseyNumber = 1

// Team represents a league team owned by exactly one captain.
type Team struct {
	gorm.Model
	Name               string           `json:"name" gorm:"not null"`
	Description        string           `json:"description"`
	CaptainID          uint             `json:"captain_id" gorm:"uniqueIndex;not null"`
	Captain            user.User        `json:"-" gorm:"foreignKey:CaptainID"`
	RemovalRequestedID *uint            `json:"removal_requested_id" gorm:"index"`
	RemovalRequested   *user.User       `json:"-" gorm:"foreignKey:RemovalRequestedID;constraint:OnDelete:SET NULL"`
	Players            []TeamPlayer     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Invitations        []TeamInvitation `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TeamPlayer is a membership row. A user appears in at most one row overall,
// and a jersey number at most once per team.
type TeamPlayer struct {
	ID           uint      `gorm:"primarykey"`
	TeamID       uint      `gorm:"not null;uniqueIndex:idx_team_jersey,priority:1"`
	UserID       uint      `gorm:"not null;uniqueIndex"`
	User         user.User `gorm:"foreignKey:UserID"`
	JerseyNumber *int      `gorm:"uniqueIndex:idx_team_jersey,priority:2"`
	CreatedAt    time.Time
}

// TeamInvitation is a pending invite of a player to a team.
type TeamInvitation struct {
	ID        uint      `gorm:"primarykey"`
	TeamID    uint      `gorm:"not null;uniqueIndex:idx_team_invitee,priority:1"`
	Team      *Team     `gorm:"foreignKey:TeamID"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_team_invitee,priority:2;index"`
	User      user.User `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
}

// HasPlayer reports whether userID is a member of the loaded team.
func (t *Team) HasPlayer(userID uint) bool {
	for _, p := range t.Players {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// HasInvitation reports whether userID has a pending invitation to the loaded team.
func (t *Team) HasInvitation(userID uint) bool {
	for _, inv := range t.Invitations {
		if inv.UserID == userID {
			return true
		}
	}
	return false
}

// --- DTOs for requests ---

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100" example:"Thunder XI"`
	Description string `json:"description" binding:"max=1000" example:"Sunday league side"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// InvitePlayerRequest targets the captain's own team when TeamID is omitted.
type InvitePlayerRequest struct {
	TeamID         uint   `json:"teamId" example:"1"`
	PlayerUniqueID string `json:"playerUniqueId" binding:"required" example:"k3j9x0ab"`
}

type AssignJerseyRequest struct {
	TeamID       uint `json:"teamId" example:"1"`
	PlayerID     uint `json:"playerId" binding:"required" example:"7"`
	JerseyNumber int  `json:"jerseyNumber" binding:"required,min=1,max=999" example:"10"`
}

type RemovePlayerRequest struct {
	TeamID   uint `json:"teamId" example:"1"`
	PlayerID uint `json:"playerId" binding:"required" example:"7"`
}

type TeamIDRequest struct {
	TeamID uint `json:"teamId" binding:"required" example:"1"`
}

// --- Responses ---

type TeamResponse struct {
	ID               uint           `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	CaptainID        uint           `json:"captainId"`
	Captain          *user.Summary  `json:"captain"`
	Players          []user.Summary `json:"players"`
	InvitedPlayers   []user.Summary `json:"invitedPlayers"`
	JerseyNumbers    map[string]int `json:"jerseyNumbers"`
	RemovalRequested *user.Summary  `json:"removalRequested"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// ToResponse flattens a fully preloaded team. Jersey numbers are keyed by the
// player's id.
func ToResponse(t *Team) TeamResponse {
	res := TeamResponse{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		CaptainID:        t.CaptainID,
		Captain:          user.ToSummary(&t.Captain),
		Players:          make([]user.Summary, 0, len(t.Players)),
		InvitedPlayers:   make([]user.Summary, 0, len(t.Invitations)),
		JerseyNumbers:    make(map[string]int),
		RemovalRequested: user.ToSummary(t.RemovalRequested),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	for i := range t.Players {
		p := &t.Players[i]
		if s := user.ToSummary(&p.User); s != nil {
			res.Players = append(res.Players, *s)
		}
		if p.JerseyNumber != nil {
			res.JerseyNumbers[strconv.FormatUint(uint64(p.UserID), 10)] = *p.JerseyNumber
		}
	}
	for i := range t.Invitations {
		if s := user.ToSummary(&t.Invitations[i].User); s != nil {
			res.InvitedPlayers = append(res.InvitedPlayers, *s)
		}
	}
	return res
}

func ToResponses(teams []Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for i := range teams {
		out = append(out, ToResponse(&teams[i]))
	}
	return out
}

// InvitationResponse is what a player sees for each pending invite.
type InvitationResponse struct {
	TeamID    uint          `json:"teamId"`
	TeamName  string        `json:"teamName"`
	Captain   *user.Summary `json:"captain"`
	InvitedAt time.Time     `json:"invitedAt"`
}

func ToInvitationResponses(invs []TeamInvitation) []InvitationResponse {
	out := make([]InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		res := InvitationResponse{TeamID: inv.TeamID, InvitedAt: inv.CreatedAt}
		if inv.Team != nil {
			res.TeamName = inv.Team.Name
			res.Captain = user.ToSummary(&inv.Team.Captain)
		}
		out = append(out, res)
	}
	return out
}
