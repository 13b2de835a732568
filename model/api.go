package model

// InstallRequest is the payload assembled for the upstream installer when
// the user acts on their current selection.
type InstallRequest struct {
	Action string   `json:"action"`
	SysIDs []string `json:"sys_ids"`
	UserID string   `json:"user_id,omitempty"`
}

// InstallActions defines the actions accepted by AssembleInstall.
var InstallActions = []string{"install", "schedule", "dismiss"}

// ValidInstallAction reports whether the action is one the installer accepts.
func ValidInstallAction(action string) bool {
	for _, a := range InstallActions {
		if a == action {
			return true
		}
	}
	return false
}

// RefreshRecord is the audit trail entry written for each completed refresh.
type RefreshRecord struct {
	Key         string `json:"_key,omitempty"`
	UserID      string `json:"user_id"`
	RecordCount int    `json:"record_count"`
	Corrupted   bool   `json:"corrupted"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at"`
	ObjType     string `json:"objtype,omitempty"`
}

// ServerResponse is the generic envelope used for mutating REST endpoints.
type ServerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
