package domain

import (
	"encoding/json"
	"io"
)

// RawVideo is one record as returned by the scrape backend's dataset. Fields
// are optional and loosely typed; the transformer is the single place that
// turns this into a Post. Decode with json.Number so 64-bit video IDs survive.
type RawVideo map[string]any

// DecodeRawVideos reads a JSON array of raw records, keeping numerics as
// json.Number.
func DecodeRawVideos(r io.Reader) ([]RawVideo, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var videos []RawVideo
	if err := dec.Decode(&videos); err != nil {
		return nil, err
	}
	return videos, nil
}
