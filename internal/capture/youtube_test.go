package capture

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDoer struct {
	body     string
	status   int
	requests []string
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	s.requests = append(s.requests, req.URL.String())
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
	}, nil
}

const liveVideoBody = `{
  "items": [
    {
      "snippet": {
        "thumbnails": {
          "default": {"url": "https://i.ytimg.com/vi/x/default.jpg", "width": 120, "height": 90},
          "high": {"url": "https://i.ytimg.com/vi/x/hqdefault.jpg", "width": 480, "height": 360},
          "maxres": {"url": "https://i.ytimg.com/vi/x/maxresdefault.jpg", "width": 1280, "height": 720}
        }
      },
      "liveStreamingDetails": {"actualStartTime": "2026-08-01T12:00:00Z"}
    }
  ]
}`

func TestLiveThumbnailURL_PrefersMaxres(t *testing.T) {
	stub := &stubDoer{body: liveVideoBody}
	client := NewYouTubeClient(YouTubeOptions{APIKey: "key", HTTP: stub})

	url, err := client.LiveThumbnailURL(context.Background(), "XP3Gle-S9lE")
	require.NoError(t, err)
	assert.Equal(t, "https://i.ytimg.com/vi/x/maxresdefault.jpg", url)

	require.Len(t, stub.requests, 1)
	assert.Contains(t, stub.requests[0], "part=snippet%2CliveStreamingDetails")
	assert.Contains(t, stub.requests[0], "id=XP3Gle-S9lE")
	assert.Contains(t, stub.requests[0], "key=key")
}

func TestLiveThumbnailURL_FallsBackToHigh(t *testing.T) {
	body := `{
	  "items": [
	    {
	      "snippet": {
	        "thumbnails": {
	          "default": {"url": "https://i.ytimg.com/vi/x/default.jpg"},
	          "high": {"url": "https://i.ytimg.com/vi/x/hqdefault.jpg"}
	        }
	      },
	      "liveStreamingDetails": {}
	    }
	  ]
	}`
	client := NewYouTubeClient(YouTubeOptions{APIKey: "key", HTTP: &stubDoer{body: body}})

	url, err := client.LiveThumbnailURL(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://i.ytimg.com/vi/x/hqdefault.jpg", url)
}

func TestLiveThumbnailURL_VideoNotFound(t *testing.T) {
	client := NewYouTubeClient(YouTubeOptions{APIKey: "key", HTTP: &stubDoer{body: `{"items": []}`}})

	_, err := client.LiveThumbnailURL(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestLiveThumbnailURL_NotLivestream(t *testing.T) {
	body := `{
	  "items": [
	    {"snippet": {"thumbnails": {"default": {"url": "https://i.ytimg.com/vi/x/default.jpg"}}}}
	  ]
	}`
	client := NewYouTubeClient(YouTubeOptions{APIKey: "key", HTTP: &stubDoer{body: body}})

	_, err := client.LiveThumbnailURL(context.Background(), "vod")
	assert.ErrorIs(t, err, ErrNotLivestream)
}

func TestLiveThumbnailURL_NoThumbnails(t *testing.T) {
	body := `{
	  "items": [
	    {"snippet": {"thumbnails": {}}, "liveStreamingDetails": {}}
	  ]
	}`
	client := NewYouTubeClient(YouTubeOptions{APIKey: "key", HTTP: &stubDoer{body: body}})

	_, err := client.LiveThumbnailURL(context.Background(), "bare")
	assert.ErrorIs(t, err, ErrNoThumbnail)
}

func TestLiveThumbnailURL_HTTPError(t *testing.T) {
	client := NewYouTubeClient(YouTubeOptions{APIKey: "key", HTTP: &stubDoer{body: "quota exceeded", status: http.StatusForbidden}})

	_, err := client.LiveThumbnailURL(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
