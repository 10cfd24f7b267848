package models

import "time"

type Workspace struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedBy uint64    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Creator User              `gorm:"foreignKey:CreatedBy" json:"-"`
	Members []WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
	Tasks   []Task            `gorm:"foreignKey:WorkspaceID" json:"tasks,omitempty"`
}
