// Package capture resolves the livestream thumbnail for a fixed YouTube
// video and stores dated snapshots of it under the captures directory.
package capture

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/foggyhq/foggybot/pkg/logger"
)

var (
	// ErrVideoNotFound is returned when the video ID resolves to nothing.
	ErrVideoNotFound = errors.New("video not found")
	// ErrNotLivestream is returned when the video has no live streaming details.
	ErrNotLivestream = errors.New("video is not a livestream")
	// ErrNoThumbnail is returned when no usable thumbnail quality is present.
	ErrNoThumbnail = errors.New("no thumbnail available")
)

// Doer abstracts the HTTP client so tests can inject canned responses.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// YouTubeClient queries the YouTube Data API v3 for livestream thumbnails.
type YouTubeClient struct {
	baseURL string
	apiKey  string
	http    Doer
}

// YouTubeOptions configures a YouTubeClient.
type YouTubeOptions struct {
	BaseURL string
	APIKey  string
	HTTP    Doer
}

// NewYouTubeClient creates a client with a secure default HTTP client.
func NewYouTubeClient(opts YouTubeOptions) *YouTubeClient {
	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		}
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/youtube/v3"
	}
	return &YouTubeClient{
		baseURL: baseURL,
		apiKey:  opts.APIKey,
		http:    httpClient,
	}
}

// videosResponse matches the videos.list API response structure
type videosResponse struct {
	Items []struct {
		Snippet struct {
			Thumbnails map[string]struct {
				URL    string `json:"url"`
				Width  int    `json:"width"`
				Height int    `json:"height"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		LiveStreamingDetails *struct {
			ActualStartTime string `json:"actualStartTime"`
		} `json:"liveStreamingDetails"`
	} `json:"items"`
}

// thumbnailQualities is the preference order for snapshot resolution.
var thumbnailQualities = []string{"maxres", "high", "default"}

// LiveThumbnailURL returns the current thumbnail URL for a livestream video.
func (c *YouTubeClient) LiveThumbnailURL(ctx context.Context, videoID string) (string, error) {
	q := url.Values{}
	q.Set("part", "snippet,liveStreamingDetails")
	q.Set("id", videoID)
	q.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/videos?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("videos.list: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("videos.list status %d: %s", resp.StatusCode, string(body))
	}

	var out videosResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode videos.list response: %w", err)
	}

	if len(out.Items) == 0 {
		return "", fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}
	video := out.Items[0]
	if video.LiveStreamingDetails == nil {
		return "", fmt.Errorf("%w: %s", ErrNotLivestream, videoID)
	}

	for _, quality := range thumbnailQualities {
		if thumb, ok := video.Snippet.Thumbnails[quality]; ok && thumb.URL != "" {
			logger.Debug("resolved livestream thumbnail",
				logger.String("video", videoID),
				logger.String("quality", quality))
			return thumb.URL, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoThumbnail, videoID)
}
