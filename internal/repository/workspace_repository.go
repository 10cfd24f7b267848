package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/workspace-tasks/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateWorkspace is returned when inserting the workspace row fails.
	ErrCreateWorkspace = errors.New("workspace repository: create workspace failed")
	// ErrCreateAdminMember is returned when inserting the creator's admin membership fails.
	ErrCreateAdminMember = errors.New("workspace repository: create admin membership failed")
)

// GormWorkspaceRepository is a GORM implementation of WorkspaceRepository
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// CreateWithAdmin creates the workspace and the admin membership in one
// transaction, so a workspace never exists without its admin.
func (r *GormWorkspaceRepository) CreateWithAdmin(ws *models.Workspace, admin *models.WorkspaceMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ws).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateWorkspace, err)
		}

		admin.WorkspaceID = ws.ID

		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateAdminMember, err)
		}

		return nil
	})
}

// FindByID finds a workspace by ID
func (r *GormWorkspaceRepository) FindByID(id uint64) (*models.Workspace, error) {
	var ws models.Workspace
	if err := r.db.First(&ws, id).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

// ListMembershipsByUserID joins the user's memberships to their workspaces
func (r *GormWorkspaceRepository) ListMembershipsByUserID(userID uint64) ([]models.WorkspaceMember, error) {
	var memberships []models.WorkspaceMember
	if err := r.db.Joins("Workspace").
		Where("workspace_members.user_id = ?", userID).
		Order("workspace_members.workspace_id").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// Delete removes tasks, then memberships, then the workspace itself in a
// transaction. It returns gorm.ErrRecordNotFound if the workspace is absent.
func (r *GormWorkspaceRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("workspace_id = ?", id).Delete(&models.WorkspaceMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Workspace{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
