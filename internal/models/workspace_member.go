package models

import "time"

// Role is the permission level a user holds inside a workspace.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether r grants administrative rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// WorkspaceMember links a user to a workspace. A user holds at most one
// membership per workspace; the pair is guarded by a unique index.
type WorkspaceMember struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"not null;uniqueIndex:idx_workspace_members_user_workspace,priority:1" json:"user_id"`
	WorkspaceID uint64    `gorm:"not null;uniqueIndex:idx_workspace_members_user_workspace,priority:2" json:"workspace_id"`
	Role        Role      `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}
