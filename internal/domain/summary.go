package domain

import "time"

// RunSummary is the end-of-run data quality report, also written to the
// summary JSON sink.
type RunSummary struct {
	Timestamp            time.Time `json:"timestamp"`
	TotalPosts           int       `json:"total_posts"`
	PostsWithRestaurants int       `json:"posts_with_restaurants"`
	ExtractionRate       string    `json:"extraction_rate"`
	UniqueRestaurants    int       `json:"unique_restaurants"`
	TopRestaurant        string    `json:"top_restaurant"`
}
