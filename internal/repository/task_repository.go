package repository

import (
	"github.com/yukikurage/workspace-tasks/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Joins("Assignee").First(&task, "tasks.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByWorkspace left-joins the assignee, so unassigned tasks are included
// with a nil Assignee.
func (r *GormTaskRepository) ListByWorkspace(workspaceID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Joins("Assignee").
		Where("tasks.workspace_id = ?", workspaceID).
		Order("tasks.id").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAssignedTo lists tasks assigned to the user, most recent first
func (r *GormTaskRepository) ListAssignedTo(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Joins("Assignee").
		Where("tasks.assigned_to = ?", userID).
		Order("tasks.created_at DESC, tasks.id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListCreatedBy lists tasks created by the user, most recent first
func (r *GormTaskRepository) ListCreatedBy(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Joins("Assignee").
		Where("tasks.created_by = ?", userID).
		Order("tasks.created_at DESC, tasks.id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateStatus sets the status of a task
func (r *GormTaskRepository) UpdateStatus(id uint64, status models.TaskStatus) error {
	return r.updateColumns(id, map[string]interface{}{"status": status})
}

// UpdateContent sets the title and description of a task
func (r *GormTaskRepository) UpdateContent(id uint64, title, description string) error {
	return r.updateColumns(id, map[string]interface{}{
		"title":       title,
		"description": description,
	})
}

func (r *GormTaskRepository) updateColumns(id uint64, values map[string]interface{}) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Updates(values).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
