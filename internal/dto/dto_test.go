package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-tasks/internal/models"
)

func TestToTaskDTO_Assignee(t *testing.T) {
	bobID := uint64(2)
	assigned := models.Task{
		ID:          1,
		Title:       "Fix bug",
		Status:      models.TaskStatusTodo,
		CreatedBy:   1,
		AssignedTo:  &bobID,
		WorkspaceID: 3,
		Assignee:    &models.User{ID: bobID, Username: "bob"},
	}

	dto := ToTaskDTO(assigned)
	require.NotNil(t, dto.Assignee)
	assert.Equal(t, "bob", dto.Assignee.Username)
	assert.Equal(t, &bobID, dto.AssignedTo)

	unassigned := models.Task{ID: 2, Title: "Open", Status: models.TaskStatusDone, Assignee: &models.User{}}
	dto = ToTaskDTO(unassigned)
	assert.Nil(t, dto.Assignee)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"assignee"`)
	assert.Contains(t, string(raw), `"assigned_to":null`)
}

func TestToWorkspaceDetailDTO(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	ws := models.Workspace{ID: 7, Name: "Eng", CreatedBy: 1, CreatedAt: created}
	members := []models.WorkspaceMember{
		{UserID: 1, Role: models.RoleAdmin, User: models.User{ID: 1, Username: "alice"}},
		{UserID: 2, Role: models.RoleMember, User: models.User{ID: 2, Username: "bob"}},
	}

	detail := ToWorkspaceDetailDTO(ws, members, models.RoleMember)

	assert.Equal(t, uint64(7), detail.ID)
	assert.Equal(t, "Eng", detail.Name)
	assert.Equal(t, models.RoleMember, detail.YourRole)
	require.Len(t, detail.Members, 2)
	assert.Equal(t, "alice", detail.Members[0].User.Username)
	assert.Equal(t, models.RoleAdmin, detail.Members[0].Role)
}

func TestToWorkspaceWithRoleDTOs(t *testing.T) {
	members := []models.WorkspaceMember{
		{Role: models.RoleAdmin, Workspace: models.Workspace{ID: 1, Name: "Eng"}},
		{Role: models.RoleMember, Workspace: models.Workspace{ID: 2, Name: "Ops"}},
	}

	dtos := ToWorkspaceWithRoleDTOs(members)
	require.Len(t, dtos, 2)
	assert.Equal(t, "Ops", dtos[1].Name)
	assert.Equal(t, models.RoleMember, dtos[1].Role)

	assert.Empty(t, ToWorkspaceWithRoleDTOs(nil))
}
