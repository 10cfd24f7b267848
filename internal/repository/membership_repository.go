package repository

import (
	"errors"

	"github.com/yukikurage/workspace-tasks/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMembershipRepository is a GORM implementation of MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &GormMembershipRepository{db: db}
}

// FindMember finds a specific workspace member
func (r *GormMembershipRepository) FindMember(workspaceID, userID uint64) (*models.WorkspaceMember, error) {
	var member models.WorkspaceMember
	if err := r.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// AddMember relies on the unique (user_id, workspace_id) index: a conflicting
// insert is skipped and reported as not added.
func (r *GormMembershipRepository) AddMember(member *models.WorkspaceMember) (bool, error) {
	result := r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(member)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListMembers lists all members of a workspace
func (r *GormMembershipRepository) ListMembers(workspaceID uint64) ([]models.WorkspaceMember, error) {
	var members []models.WorkspaceMember
	if err := r.db.Joins("User").
		Where("workspace_members.workspace_id = ?", workspaceID).
		Order("workspace_members.id").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
