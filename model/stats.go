package model

// StatisticsSnapshot is an aggregate view of the update workload at one
// point in time. Snapshots come from two places: the backend reports one
// alongside the first page of records (immediate), and the session derives
// one from the fully loaded record set (calculated).
type StatisticsSnapshot struct {
	TotalApplications int    `json:"total_applications"`
	TotalMajorUpdates int    `json:"total_major_updates"`
	TotalMinorUpdates int    `json:"total_minor_updates"`
	TotalPatchUpdates int    `json:"total_patch_updates"`
	CriticalCount     int    `json:"critical_count"`
	CurrentlyShown    int    `json:"currently_shown"`
	Source            string `json:"source,omitempty"`
	CapturedAt        string `json:"captured_at,omitempty"`
	ObjType           string `json:"objtype,omitempty"`
}

// TotalUpdates returns the pending update count across all levels.
func (s StatisticsSnapshot) TotalUpdates() int {
	return s.TotalMajorUpdates + s.TotalMinorUpdates + s.TotalPatchUpdates
}

type rawStatisticsSnapshot struct {
	TotalApplications flexCount `json:"total_applications"`
	TotalMajorUpdates flexCount `json:"total_major_updates"`
	TotalMinorUpdates flexCount `json:"total_minor_updates"`
	TotalPatchUpdates flexCount `json:"total_patch_updates"`
	CriticalCount     flexCount `json:"critical_count"`
	CurrentlyShown    flexCount `json:"currently_shown"`
	CapturedAt        string    `json:"captured_at"`
}

func (raw rawStatisticsSnapshot) normalize() (StatisticsSnapshot, bool) {
	corrupted := raw.TotalApplications.corrupted ||
		raw.TotalMajorUpdates.corrupted ||
		raw.TotalMinorUpdates.corrupted ||
		raw.TotalPatchUpdates.corrupted ||
		raw.CriticalCount.corrupted ||
		raw.CurrentlyShown.corrupted

	return StatisticsSnapshot{
		TotalApplications: raw.TotalApplications.value,
		TotalMajorUpdates: raw.TotalMajorUpdates.value,
		TotalMinorUpdates: raw.TotalMinorUpdates.value,
		TotalPatchUpdates: raw.TotalPatchUpdates.value,
		CriticalCount:     raw.CriticalCount.value,
		CurrentlyShown:    raw.CurrentlyShown.value,
		CapturedAt:        raw.CapturedAt,
		Source:            "immediate",
		ObjType:           "StatisticsSnapshot",
	}, corrupted
}

// UserContext identifies the user and scope a payload was fetched for.
type UserContext struct {
	UserID   string   `json:"user_id"`
	UserName string   `json:"user_name,omitempty"`
	Domain   string   `json:"domain,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Timezone string   `json:"timezone,omitempty"`
}
