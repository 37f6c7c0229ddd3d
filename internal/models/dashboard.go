package models

// DashboardStats aggregates the content counts shown on the admin landing
// page, plus six-month submission trends and the latest activity.
type DashboardStats struct {
	Counts  DashboardCounts  `json:"counts"`
	Monthly DashboardMonthly `json:"monthly"`
	Recent  DashboardRecent  `json:"recent"`
}

type DashboardCounts struct {
	Blogs       EntityCount `json:"blogs"`
	Gallery     EntityCount `json:"gallery"`
	Services    EntityCount `json:"services"`
	Team        EntityCount `json:"team"`
	Heroes      EntityCount `json:"heroes"`
	Contacts    EntityCount `json:"contacts"`
	Subscribers EntityCount `json:"subscribers"`
}

// EntityCount pairs a total with the "interesting" subset (published,
// active or unread depending on the entity).
type EntityCount struct {
	Total  int `json:"total"`
	Marked int `json:"marked"`
}

// MonthlyCount is one month bucket of a trend series.
type MonthlyCount struct {
	Year  int `db:"year" json:"year"`
	Month int `db:"month" json:"month"`
	Count int `db:"count" json:"count"`
}

type DashboardMonthly struct {
	Contacts    []MonthlyCount `json:"contacts"`
	Subscribers []MonthlyCount `json:"subscribers"`
}

type DashboardRecent struct {
	Contacts []Contact `json:"contacts"`
	Blogs    []Blog    `json:"blogs"`
}
