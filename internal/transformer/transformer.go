// Package transformer converts loosely-typed raw video records from the
// scrape backend into canonical domain Posts. All defaulting for absent or
// malformed fields lives here; transformation never fails.
package transformer

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/thegab/tiktok-scraper/internal/domain"
)

// ToPost maps one raw record to a Post. Missing or mistyped fields fall back
// to zero values: empty strings for text, 0 for counters, now for timestamps.
// Upstream data quality is not guaranteed, so this is deliberately
// best-effort.
func ToPost(raw domain.RawVideo, hashtag string, source domain.Source, now time.Time) domain.Post {
	return domain.Post{
		ID:         stringField(raw, "id"),
		URL:        stringField(raw, "videoUrl"),
		Caption:    stringField(raw, "description"),
		Likes:      intField(raw, "diggCount"),
		Comments:   intField(raw, "commentCount"),
		Shares:     intField(raw, "shareCount"),
		Views:      intField(raw, "playCount"),
		Creator:    stringField(raw, "authorId"),
		CreateTime: timeField(raw, "createTime", now),
		Hashtag:    hashtag,
		ScrapedAt:  now,
		Source:     source,
	}
}

// ToPosts maps a batch of raw records scraped for one hashtag.
func ToPosts(raws []domain.RawVideo, hashtag string, source domain.Source, now time.Time) []domain.Post {
	posts := make([]domain.Post, 0, len(raws))
	for _, raw := range raws {
		posts = append(posts, ToPost(raw, hashtag, source, now))
	}
	return posts
}

// stringField reads a text field, stringifying numeric IDs the way the
// backend sometimes delivers them.
func stringField(raw domain.RawVideo, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

// intField reads a counter field. Counters are non-negative by contract, so
// negative values clamp to 0.
func intField(raw domain.RawVideo, key string) int {
	n := 0
	switch v := raw[key].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			n = int(i)
		} else if f, err := v.Float64(); err == nil {
			n = int(f)
		}
	case float64:
		n = int(v)
	case int:
		n = v
	case int64:
		n = int(v)
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			n = i
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

// timeField reads a best-effort timestamp: unix seconds as delivered by the
// backend, or an RFC 3339 string, else the fallback.
func timeField(raw domain.RawVideo, key string, fallback time.Time) time.Time {
	switch v := raw[key].(type) {
	case json.Number:
		if secs, err := v.Int64(); err == nil && secs > 0 {
			return time.Unix(secs, 0).UTC()
		}
	case float64:
		if v > 0 {
			return time.Unix(int64(v), 0).UTC()
		}
	case string:
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return ts
		}
	}
	return fallback
}
