package admin

import (
	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
)

// RecentLimit caps the recent users and matches shown on the dashboard.
const RecentLimit = 5

type CaptainIDRequest struct {
	CaptainID uint `json:"captainId" binding:"required" example:"3"`
}

type TeamIDRequest struct {
	TeamID uint `json:"teamId" binding:"required" example:"1"`
}

type DashboardStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalCaptains    int64 `json:"totalCaptains"`
	TotalPlayers     int64 `json:"totalPlayers"`
	PendingCaptains  int64 `json:"pendingCaptains"`
	TotalTeams       int64 `json:"totalTeams"`
	TotalMatches     int64 `json:"totalMatches"`
	UpcomingMatches  int64 `json:"upcomingMatches"`
	LiveMatches      int64 `json:"liveMatches"`
	CompletedMatches int64 `json:"completedMatches"`
	CancelledMatches int64 `json:"cancelledMatches"`
	PendingRemovals  int64 `json:"pendingRemovals"`
}

type RecentActivities struct {
	RecentUsers   []user.UserResponse   `json:"recentUsers"`
	RecentMatches []match.MatchResponse `json:"recentMatches"`
}

type Dashboard struct {
	Statistics       DashboardStats   `json:"statistics"`
	RecentActivities RecentActivities `json:"recentActivities"`
}
