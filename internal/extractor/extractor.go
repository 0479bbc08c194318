// Package extractor maps free-text captions to canonical restaurant mentions
// using a fixed keyword lexicon and a partial-ratio style fuzzy score.
package extractor

import (
	"math"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/thegab/tiktok-scraper/internal/domain"
)

// matchThreshold is the minimum fuzzy score for a contained keyword to be
// accepted as a mention.
const matchThreshold = 0.60

// Extractor scans captions against its lexicon. It is stateless between
// calls and safe for concurrent use.
type Extractor struct {
	lexicon Lexicon
	metric  *metrics.SmithWatermanGotoh
}

// New builds an Extractor over the given lexicon. The lexicon is used as
// provided; callers wanting the stock keyword set pass DefaultLexicon().
func New(lexicon Lexicon) *Extractor {
	return &Extractor{
		lexicon: lexicon,
		metric:  metrics.NewSmithWatermanGotoh(),
	}
}

// Extract returns the restaurant mentions found in caption, in lexicon order,
// at most one per canonical name. The fuzzy score is computed between the
// whole cleaned caption and the keyword (not the matched span), so an exact
// containment scores 1.0. An empty caption yields no mentions.
//
// Deduplication is by canonical name, not keyword: a keyword rejected by the
// score threshold does not reserve its name, so a later keyword mapping to
// the same name can still match.
func (e *Extractor) Extract(caption string) []domain.RestaurantMention {
	if caption == "" {
		return nil
	}

	cleaned := CleanText(caption)
	seen := make(map[string]struct{})

	var mentions []domain.RestaurantMention
	for _, entry := range e.lexicon {
		if !strings.Contains(cleaned, entry.Keyword) {
			continue
		}

		score := strutil.Similarity(cleaned, entry.Keyword, e.metric)
		if score < matchThreshold {
			continue
		}
		if _, dup := seen[entry.Name]; dup {
			continue
		}

		mentions = append(mentions, domain.RestaurantMention{
			Name:        entry.Name,
			MentionedAs: entry.Keyword,
			Confidence:  round2(score),
		})
		seen[entry.Name] = struct{}{}
	}

	return mentions
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
