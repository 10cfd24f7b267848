package constants

const (
	// ContextKeyUserID is used both as the session key and the gin context key
	// holding the authenticated user's ID.
	ContextKeyUserID = "user_id"

	// ContextKeyWorkspaceID holds the parsed :id of workspace routes.
	ContextKeyWorkspaceID = "workspace_id"

	// ContextKeyTaskID holds the parsed :id of task routes.
	ContextKeyTaskID = "task_id"

	SessionCookieName = "task_session"

	// SessionMaxAge is the session lifetime in seconds (7 days).
	SessionMaxAge = 86400 * 7

	MaxUsernameLength      = 100
	MaxWorkspaceNameLength = 100
	MaxTaskTitleLength     = 200
)
