package team

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TeamRepository interface {
	// Team operations
	CreateTeam(ctx context.Context, team *Team) error
	GetTeamByID(ctx context.Context, id uint) (*Team, error)
	GetTeamByCaptain(ctx context.Context, captainID uint) (*Team, error)
	GetTeamByMember(ctx context.Context, userID uint) (*Team, error)
	ListTeams(ctx context.Context) ([]Team, error)
	UpdateTeam(ctx context.Context, team *Team) error
	CountTeams(ctx context.Context) (int64, error)
	DeleteTeamCascade(ctx context.Context, teamID uint) error

	// Membership operations
	AddPlayer(ctx context.Context, p *TeamPlayer) error
	GetMembership(ctx context.Context, userID uint) (*TeamPlayer, error)
	GetJerseyHolder(ctx context.Context, teamID uint, number int) (*TeamPlayer, error)
	SetJerseyNumber(ctx context.Context, teamID, userID uint, number int) error
	RemovePlayer(ctx context.Context, teamID, userID uint) error
	RemoveUserMemberships(ctx context.Context, userID uint) error

	// Invitation operations
	CreateInvitation(ctx context.Context, inv *TeamInvitation) error
	InvitationExists(ctx context.Context, teamID, userID uint) (bool, error)
	DeleteInvitation(ctx context.Context, teamID, userID uint) (bool, error)
	DeleteUserInvitations(ctx context.Context, userID uint) error
	ListUserInvitations(ctx context.Context, userID uint) ([]TeamInvitation, error)
	CountUserInvitations(ctx context.Context, userID uint) (int64, error)

	// Removal requests
	SetRemovalRequest(ctx context.Context, teamID uint, userID *uint) error
	ClearRemovalRequestsFor(ctx context.Context, userID uint) error
	ListPendingRemovals(ctx context.Context) ([]Team, error)
	CountPendingRemovals(ctx context.Context) (int64, error)

	WithTransaction(ctx context.Context, txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// withDetails preloads everything ToResponse needs.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Captain").
		Preload("RemovalRequested").
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("team_players.id ASC") }).
		Preload("Players.User").
		Preload("Invitations", func(db *gorm.DB) *gorm.DB { return db.Order("team_invitations.id ASC") }).
		Preload("Invitations.User")
}

func (r *teamRepository) CreateTeam(ctx context.Context, team *Team) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(team).Error
}

func (r *teamRepository) GetTeamByID(ctx context.Context, id uint) (*Team, error) {
	var team Team
	if err := withDetails(r.db.WithContext(ctx)).First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamByCaptain(ctx context.Context, captainID uint) (*Team, error) {
	var team Team
	if err := withDetails(r.db.WithContext(ctx)).Where("captain_id = ?", captainID).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamByMember(ctx context.Context, userID uint) (*Team, error) {
	var team Team
	err := withDetails(r.db.WithContext(ctx)).
		Where("id = (?)", r.db.Model(&TeamPlayer{}).Select("team_id").Where("user_id = ?", userID)).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) ListTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := withDetails(r.db.WithContext(ctx)).Order("created_at DESC").Find(&teams).Error
	return teams, err
}

// UpdateTeam persists the team's own columns only.
func (r *teamRepository) UpdateTeam(ctx context.Context, team *Team) error {
	return r.db.WithContext(ctx).Model(team).Omit(clause.Associations).
		Select("name", "description", "updated_at").
		Updates(team).Error
}

func (r *teamRepository) CountTeams(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Team{}).Count(&n).Error
	return n, err
}

// DeleteTeamCascade removes the team with its memberships and invitations and
// detaches it from any match. Matches keep both score rows; the slot of the
// deleted team is left without a team.
func (r *teamRepository) DeleteTeamCascade(ctx context.Context, teamID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("team_id = ?", teamID).Delete(&TeamPlayer{}).Error; err != nil {
		return err
	}
	if err := db.Where("team_id = ?", teamID).Delete(&TeamInvitation{}).Error; err != nil {
		return err
	}
	if err := db.Table("match_teams").Where("team_id = ?", teamID).Update("team_id", nil).Error; err != nil {
		return err
	}
	if err := db.Table("matches").Where("winner_id = ?", teamID).Update("winner_id", nil).Error; err != nil {
		return err
	}
	res := db.Unscoped().Delete(&Team{}, teamID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *teamRepository) AddPlayer(ctx context.Context, p *TeamPlayer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *teamRepository) GetMembership(ctx context.Context, userID uint) (*TeamPlayer, error) {
	var p TeamPlayer
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *teamRepository) GetJerseyHolder(ctx context.Context, teamID uint, number int) (*TeamPlayer, error) {
	var p TeamPlayer
	if err := r.db.WithContext(ctx).Where("team_id = ? AND jersey_number = ?", teamID, number).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *teamRepository) SetJerseyNumber(ctx context.Context, teamID, userID uint, number int) error {
	res := r.db.WithContext(ctx).Model(&TeamPlayer{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Update("jersey_number", number)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *teamRepository) RemovePlayer(ctx context.Context, teamID, userID uint) error {
	res := r.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&TeamPlayer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *teamRepository) RemoveUserMemberships(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&TeamPlayer{}).Error
}

func (r *teamRepository) CreateInvitation(ctx context.Context, inv *TeamInvitation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(inv).Error
}

func (r *teamRepository) InvitationExists(ctx context.Context, teamID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&TeamInvitation{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *teamRepository) DeleteInvitation(ctx context.Context, teamID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&TeamInvitation{})
	return res.RowsAffected > 0, res.Error
}

func (r *teamRepository) DeleteUserInvitations(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&TeamInvitation{}).Error
}

func (r *teamRepository) ListUserInvitations(ctx context.Context, userID uint) ([]TeamInvitation, error) {
	var invs []TeamInvitation
	err := r.db.WithContext(ctx).
		Preload("Team").
		Preload("Team.Captain").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&invs).Error
	return invs, err
}

func (r *teamRepository) CountUserInvitations(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&TeamInvitation{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *teamRepository) SetRemovalRequest(ctx context.Context, teamID uint, userID *uint) error {
	res := r.db.WithContext(ctx).Model(&Team{}).Where("id = ?", teamID).Update("removal_requested_id", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *teamRepository) ClearRemovalRequestsFor(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&Team{}).
		Where("removal_requested_id = ?", userID).
		Update("removal_requested_id", nil).Error
}

func (r *teamRepository) ListPendingRemovals(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := withDetails(r.db.WithContext(ctx)).
		Where("removal_requested_id IS NOT NULL").
		Order("updated_at ASC").
		Find(&teams).Error
	return teams, err
}

func (r *teamRepository) CountPendingRemovals(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Team{}).Where("removal_requested_id IS NOT NULL").Count(&n).Error
	return n, err
}

// WithTransaction runs txFunc against a repository bound to one transaction.
func (r *teamRepository) WithTransaction(ctx context.Context, txFunc func(TeamRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&teamRepository{db: tx})
	})
}
