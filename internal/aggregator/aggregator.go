package aggregator

import (
	"sort"
	"time"

	"github.com/thegab/tiktok-scraper/internal/domain"
	"github.com/thegab/tiktok-scraper/pkg/formatter"
)

// Aggregate folds annotated posts into one rollup per restaurant.
//
// MentionCount counts (post, mention) pairs while PostCount counts distinct
// posts, so a post carrying the same restaurant twice bumps MentionCount twice
// but PostCount and the engagement totals only once. Rollups come back sorted
// by MentionCount descending; restaurants tied on MentionCount keep the order
// in which they were first seen.
func Aggregate(posts []domain.Post, at time.Time) []domain.RestaurantRollup {
	byName := make(map[string]*domain.RestaurantRollup)
	order := make([]string, 0)

	for _, post := range posts {
		engagement := post.Engagement()
		seenInPost := make(map[string]bool, len(post.Restaurants))

		for _, mention := range post.Restaurants {
			rollup, ok := byName[mention.Name]
			if !ok {
				rollup = &domain.RestaurantRollup{Name: mention.Name, LastUpdated: at}
				byName[mention.Name] = rollup
				order = append(order, mention.Name)
			}
			rollup.MentionCount++
			if seenInPost[mention.Name] {
				continue
			}
			seenInPost[mention.Name] = true
			rollup.PostCount++
			rollup.TotalEngagement += engagement
		}
	}

	rollups := make([]domain.RestaurantRollup, 0, len(order))
	for _, name := range order {
		rollup := byName[name]
		if rollup.PostCount > 0 {
			rollup.AvgEngagement = float64(rollup.TotalEngagement) / float64(rollup.PostCount)
		}
		rollups = append(rollups, *rollup)
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].MentionCount > rollups[j].MentionCount
	})

	return rollups
}

// Summarize builds the end-of-run report. The extraction rate is rendered
// with one decimal place ("42.9%") and TopRestaurant is the head of the
// rollup ranking, or empty when nothing matched.
func Summarize(posts []domain.Post, rollups []domain.RestaurantRollup, at time.Time) domain.RunSummary {
	withRestaurants := 0
	for _, post := range posts {
		if post.HasRestaurantMention {
			withRestaurants++
		}
	}

	summary := domain.RunSummary{
		Timestamp:            at,
		TotalPosts:           len(posts),
		PostsWithRestaurants: withRestaurants,
		ExtractionRate:       formatter.FormatPercent(withRestaurants, len(posts)),
		UniqueRestaurants:    len(rollups),
	}
	if len(rollups) > 0 {
		summary.TopRestaurant = rollups[0].Name
	}

	return summary
}
