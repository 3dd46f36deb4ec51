package match

import (
	"time"

	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	StatusUpcoming  MatchStatus = "Upcoming"
	StatusLive      MatchStatus = "Live"
	StatusCompleted MatchStatus = "Completed"
	StatusCancelled MatchStatus = "Cancelled"
)

// DefaultLocation is used when a match is created without one.
const DefaultLocation = "TBD"

// AllStatuses lists the statuses in lifecycle order.
var AllStatuses = []MatchStatus{StatusUpcoming, StatusLive, StatusCompleted, StatusCancelled}

func (s MatchStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further transition.
func (s MatchStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s MatchStatus) rank() int {
	switch s {
	case StatusUpcoming:
		return 0
	case StatusLive:
		return 1
	case StatusCompleted:
		return 2
	}
	return -1
}

// CanTransition reports whether a match may move from one status to another.
// Staying put is always allowed. Otherwise the move must go forward along
// Upcoming, Live, Completed (skipping is fine) or cancel a match that has not
// finished.
func CanTransition(from, to MatchStatus) bool {
	if from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return to.rank() > from.rank()
}

// Match is a fixture between exactly two teams.
type Match struct {
	gorm.Model
	Status      MatchStatus `json:"status" gorm:"type:varchar(16);not null;default:Upcoming;index"`
	MatchDate   time.Time   `json:"match_date" gorm:"not null;index"`
	Location    string      `json:"location" gorm:"not null;default:TBD"`
	Description string      `json:"description"`
	WinnerID    *uint       `json:"winner_id" gorm:"index"`
	Winner      *team.Team  `json:"-" gorm:"foreignKey:WinnerID;constraint:OnDelete:SET NULL"`
	CreatedByID *uint       `json:"created_by_id"`
	CreatedBy   *user.User  `json:"-" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	Teams       []MatchTeam `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// MatchTeam is one side of a match together with its score. Position is 1 or
// 2. TeamID becomes NULL once the team is deleted, so the score row survives.
type MatchTeam struct {
	ID       uint       `gorm:"primarykey"`
	MatchID  uint       `gorm:"not null;uniqueIndex:idx_match_position,priority:1"`
	Position int        `gorm:"not null;uniqueIndex:idx_match_position,priority:2"`
	TeamID   *uint      `gorm:"index"`
	Team     *team.Team `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
	Score    int        `gorm:"not null;default:0"`
}

// Side returns the score row of teamID, or nil when the team does not play in m.
func (m *Match) Side(teamID uint) *MatchTeam {
	for i := range m.Teams {
		if m.Teams[i].TeamID != nil && *m.Teams[i].TeamID == teamID {
			return &m.Teams[i]
		}
	}
	return nil
}

// ResolveWinner sets WinnerID from the scores. A winner exists only for a
// completed match whose scores differ.
func (m *Match) ResolveWinner() {
	m.WinnerID = nil
	m.Winner = nil
	if m.Status != StatusCompleted || len(m.Teams) != 2 {
		return
	}
	first, second := m.Teams[0], m.Teams[1]
	switch {
	case first.Score > second.Score:
		m.WinnerID = first.TeamID
	case second.Score > first.Score:
		m.WinnerID = second.TeamID
	}
}

// --- DTOs for requests ---

type CreateMatchRequest struct {
	Team1ID     uint       `json:"team1Id" binding:"required" example:"1"`
	Team2ID     uint       `json:"team2Id" binding:"required" example:"2"`
	MatchDate   *time.Time `json:"matchDate" example:"2025-06-01T15:00:00Z"`
	Location    string     `json:"location" binding:"max=200" example:"Central Park"`
	Description string     `json:"description" binding:"max=1000"`
}

type UpdateScoreRequest struct {
	MatchID uint `json:"matchId" binding:"required" example:"1"`
	TeamID  uint `json:"teamId" binding:"required" example:"1"`
	Score   *int `json:"score" binding:"required,min=0" example:"3"`
}

type UpdateStatusRequest struct {
	MatchID uint   `json:"matchId" binding:"required" example:"1"`
	Status  string `json:"status" binding:"required" example:"Live"`
}

type UpdateMatchRequest struct {
	MatchDate   *time.Time `json:"matchDate"`
	Location    *string    `json:"location" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
}

// --- Responses ---

type TeamRef struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CaptainID uint   `json:"captainId"`
}

func toTeamRef(t *team.Team) *TeamRef {
	if t == nil || t.ID == 0 {
		return nil
	}
	return &TeamRef{ID: t.ID, Name: t.Name, CaptainID: t.CaptainID}
}

type ScoreResponse struct {
	TeamID *uint    `json:"teamId"`
	Team   *TeamRef `json:"team"`
	Score  int      `json:"score"`
}

type MatchResponse struct {
	ID          uint            `json:"id"`
	Teams       []TeamRef       `json:"teams"`
	MatchDate   time.Time       `json:"matchDate"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Status      MatchStatus     `json:"status"`
	Scores      []ScoreResponse `json:"scores"`
	Winner      *TeamRef        `json:"winner"`
	CreatedBy   *user.Summary   `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToResponse flattens a preloaded match. Teams lists the sides that still
// exist; Scores always has both entries.
func ToResponse(m *Match) MatchResponse {
	res := MatchResponse{
		ID:          m.ID,
		Teams:       make([]TeamRef, 0, len(m.Teams)),
		MatchDate:   m.MatchDate,
		Location:    m.Location,
		Description: m.Description,
		Status:      m.Status,
		Scores:      make([]ScoreResponse, 0, len(m.Teams)),
		Winner:      toTeamRef(m.Winner),
		CreatedBy:   user.ToSummary(m.CreatedBy),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i := range m.Teams {
		side := &m.Teams[i]
		ref := toTeamRef(side.Team)
		if ref != nil {
			res.Teams = append(res.Teams, *ref)
		}
		res.Scores = append(res.Scores, ScoreResponse{TeamID: side.TeamID, Team: ref, Score: side.Score})
	}
	return res
}

func ToResponses(matches []Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(matches))
	for i := range matches {
		out = append(out, ToResponse(&matches[i]))
	}
	return out
}
