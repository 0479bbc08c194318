package domain

import "time"

// RestaurantRollup is the aggregated per-restaurant statistics computed over
// one pipeline run. Rollups are recomputed from scratch each run; the upsert
// on name is what reconciles them with prior remote state.
type RestaurantRollup struct {
	Name            string    `json:"restaurant"`
	MentionCount    int       `json:"mentions"`
	PostCount       int       `json:"posts"`
	TotalEngagement int       `json:"total_engagement"`
	AvgEngagement   float64   `json:"avg_engagement"`
	LastUpdated     time.Time `json:"last_updated"`
}
