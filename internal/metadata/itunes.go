package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const itunesSearchURL = "https://itunes.apple.com/search"

// Preview is the playable audio info for a round. Everything here is safe to
// show players: the URLs do not spell out the answer.
type Preview struct {
	PreviewURL      string `json:"preview_url"`
	DurationSeconds int    `json:"duration_seconds"`
	CoverArtURL     string `json:"cover_art_url"`
	SourceLink      string `json:"source_link"`
}

// ResolvePreview looks up a 30s audio preview on iTunes for the given track.
// Callers bound it with a context deadline; any failure means "no audio",
// never a failed round.
func ResolvePreview(ctx context.Context, title, artist string) (*Preview, error) {
	term := strings.TrimSpace(artist + " " + title)

	u, _ := url.Parse(itunesSearchURL)
	q := u.Query()
	q.Set("term", term)
	q.Set("media", "music")
	q.Set("entity", "song")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var result struct {
		ResultCount int `json:"resultCount"`
		Results     []struct {
			PreviewURL      string `json:"previewUrl"`
			TrackTimeMillis int    `json:"trackTimeMillis"`
			ArtworkURL100   string `json:"artworkUrl100"`
			TrackViewURL    string `json:"trackViewUrl"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if result.ResultCount == 0 || result.Results[0].PreviewURL == "" {
		return nil, fmt.Errorf("no preview for '%s'", term)
	}

	item := result.Results[0]
	return &Preview{
		PreviewURL:      item.PreviewURL,
		DurationSeconds: item.TrackTimeMillis / 1000,
		CoverArtURL:     item.ArtworkURL100,
		SourceLink:      item.TrackViewURL,
	}, nil
}
