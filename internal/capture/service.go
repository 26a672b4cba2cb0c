package capture

import "context"

// Service resolves the livestream thumbnail and stores a snapshot of it.
type Service struct {
	client     *YouTubeClient
	downloader *Downloader
	videoID    string
}

// NewService wires a YouTube client and a Downloader for one video.
func NewService(client *YouTubeClient, downloader *Downloader, videoID string) *Service {
	return &Service{client: client, downloader: downloader, videoID: videoID}
}

// Capture fetches the current thumbnail and returns the path of the stored
// dated snapshot.
func (s *Service) Capture(ctx context.Context) (string, error) {
	url, err := s.client.LiveThumbnailURL(ctx, s.videoID)
	if err != nil {
		return "", err
	}
	return s.downloader.Download(ctx, url)
}
