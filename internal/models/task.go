package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists every accepted status value.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// Valid reports whether s is one of TaskStatuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// ParseTaskStatus converts raw input into a TaskStatus. Matching is exact:
// "done" is not accepted.
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	status := TaskStatus(raw)
	if !status.Valid() {
		return "", false
	}
	return status, true
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`
	CreatedBy   uint64     `gorm:"not null" json:"created_by"`
	AssignedTo  *uint64    `json:"assigned_to"`
	WorkspaceID uint64     `gorm:"not null" json:"workspace_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Creator   User      `gorm:"foreignKey:CreatedBy" json:"-"`
	Assignee  *User     `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"-"`
}
