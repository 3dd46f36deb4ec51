package match

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository defines methods to interact with match-related data
type MatchRepository interface {
	CreateMatch(ctx context.Context, match *Match) error
	GetMatchByID(ctx context.Context, id uint) (*Match, error)
	GetMatches(ctx context.Context, status MatchStatus) ([]Match, error)
	GetTeamMatches(ctx context.Context, teamID uint, limit int) ([]Match, error)
	RecentMatches(ctx context.Context, limit int) ([]Match, error)
	UpdateMatchResult(ctx context.Context, match *Match) error
	UpdateMatchDetails(ctx context.Context, match *Match) error
	UpdateMatchScore(ctx context.Context, matchID, teamID uint, score int) error
	CountByStatus(ctx context.Context) (map[MatchStatus]int64, error)
	DeleteMatch(ctx context.Context, id uint) error

	// Transaction support
	WithTransaction(ctx context.Context, txFunc func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// WithTransaction implements transaction support
func (r *GormMatchRepository) WithTransaction(ctx context.Context, txFunc func(MatchRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&GormMatchRepository{db: tx})
	})
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Teams", func(db *gorm.DB) *gorm.DB { return db.Order("match_teams.position ASC") }).
		Preload("Teams.Team").
		Preload("Winner").
		Preload("CreatedBy")
}

// CreateMatch inserts the match and its two score rows.
func (r *GormMatchRepository) CreateMatch(ctx context.Context, match *Match) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(match).Error; err != nil {
		return err
	}
	for i := range match.Teams {
		match.Teams[i].MatchID = match.ID
	}
	return db.Omit(clause.Associations).Create(&match.Teams).Error
}

// GetMatchByID retrieves a match with teams, winner and creator
func (r *GormMatchRepository) GetMatchByID(ctx context.Context, id uint) (*Match, error) {
	var match Match
	if err := withDetails(r.db.WithContext(ctx)).First(&match, id).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// GetMatches lists matches, newest fixture first. An empty status lists all.
func (r *GormMatchRepository) GetMatches(ctx context.Context, status MatchStatus) ([]Match, error) {
	query := withDetails(r.db.WithContext(ctx))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var matches []Match
	err := query.Order("match_date DESC").Order("id DESC").Find(&matches).Error
	return matches, err
}

// GetTeamMatches lists the matches a team plays in. A non-positive limit means no limit.
func (r *GormMatchRepository) GetTeamMatches(ctx context.Context, teamID uint, limit int) ([]Match, error) {
	db := r.db.WithContext(ctx)
	query := withDetails(db).
		Where("id IN (?)", db.Model(&MatchTeam{}).Select("match_id").Where("team_id = ?", teamID)).
		Order("match_date DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var matches []Match
	err := query.Find(&matches).Error
	return matches, err
}

func (r *GormMatchRepository) RecentMatches(ctx context.Context, limit int) ([]Match, error) {
	var matches []Match
	err := withDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&matches).Error
	return matches, err
}

// UpdateMatchResult writes status and winner only; score rows are written with
// UpdateMatchScore.
func (r *GormMatchRepository) UpdateMatchResult(ctx context.Context, match *Match) error {
	return r.db.WithContext(ctx).Model(match).Omit(clause.Associations).
		Select("status", "winner_id", "updated_at").
		Updates(match).Error
}

// UpdateMatchDetails writes the schedule columns and leaves status, winner and
// scores alone.
func (r *GormMatchRepository) UpdateMatchDetails(ctx context.Context, match *Match) error {
	return r.db.WithContext(ctx).Model(match).Omit(clause.Associations).
		Select("match_date", "location", "description", "updated_at").
		Updates(match).Error
}

func (r *GormMatchRepository) UpdateMatchScore(ctx context.Context, matchID, teamID uint, score int) error {
	res := r.db.WithContext(ctx).Model(&MatchTeam{}).
		Where("match_id = ? AND team_id = ?", matchID, teamID).
		Update("score", score)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormMatchRepository) CountByStatus(ctx context.Context) (map[MatchStatus]int64, error) {
	var rows []struct {
		Status MatchStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&Match{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[MatchStatus]int64, len(AllStatuses))
	for _, s := range AllStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// DeleteMatch removes a match and its score rows
func (r *GormMatchRepository) DeleteMatch(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("match_id = ?", id).Delete(&MatchTeam{}).Error; err != nil {
		return err
	}
	res := db.Unscoped().Delete(&Match{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
