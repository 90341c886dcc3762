package dto

// AnalyticsDTO is the admin dashboard headline figures.
type AnalyticsDTO struct {
	Users          int64   `json:"users"`
	TestsCompleted int64   `json:"tests_completed"`
	ConversionRate float64 `json:"conversion_rate"` // completed attempts per registered user
}
