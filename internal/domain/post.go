package domain

import "time"

// Source tags where a post was scraped from.
type Source string

const (
	SourceApify  Source = "apify"  // Apify actor run
	SourceDirect Source = "direct" // local dataset file
)

// RestaurantMention is a single restaurant extracted from a caption.
type RestaurantMention struct {
	Name        string  `json:"name"`         // canonical restaurant name
	MentionedAs string  `json:"mentioned_as"` // the lexicon keyword that matched
	Confidence  float64 `json:"confidence"`   // fuzzy score in [0,1]
}

// Post is the canonical unit of scraped TikTok content. It is built once by
// the transformer, annotated once by the extractor, and then read-only for
// aggregation and upload. ID is the upsert key and must be non-empty for a
// post to be persistable.
type Post struct {
	ID                   string              `json:"id"`
	URL                  string              `json:"url"`
	Caption              string              `json:"caption"`
	Likes                int                 `json:"likes"`
	Comments             int                 `json:"comments"`
	Shares               int                 `json:"shares"`
	Views                int                 `json:"views"`
	Creator              string              `json:"creator"`
	CreateTime           time.Time           `json:"create_time"`
	Hashtag              string              `json:"hashtag"`
	ScrapedAt            time.Time           `json:"scraped_at"`
	Source               Source              `json:"source"`
	Restaurants          []RestaurantMention `json:"restaurants"`
	HasRestaurantMention bool                `json:"has_restaurant_mention"`
}

// Engagement is the likes+comments+shares rollup basis. Views are not part
// of engagement.
func (p *Post) Engagement() int {
	return p.Likes + p.Comments + p.Shares
}
