package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/foggyhq/foggybot/pkg/logger"
)

// LatestName is the fixed filename of the most recent capture copy.
const LatestName = "capture_latest.jpg"

// Downloader writes thumbnail snapshots into a dated directory tree:
// <dir>/YYYY/MM/DD/capture_YYYYMMDD_HHMMSS.jpg, plus a <dir>/capture_latest.jpg
// copy that always points at the newest snapshot.
type Downloader struct {
	dir  string
	http Doer
	now  func() time.Time
}

// NewDownloader creates a Downloader rooted at dir. The clock is injectable
// so tests produce stable filenames.
func NewDownloader(dir string, httpClient Doer, now func() time.Time) *Downloader {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if now == nil {
		now = time.Now
	}
	return &Downloader{dir: dir, http: httpClient, now: now}
}

// Download fetches the image at url and stores it. Returns the path of the
// dated snapshot file. Writes go through a temp file and rename so a failed
// download never leaves a truncated capture behind.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	now := d.now()
	datedDir := filepath.Join(d.dir, now.Format("2006"), now.Format("01"), now.Format("02"))
	if err := os.MkdirAll(datedDir, 0o750); err != nil {
		return "", fmt.Errorf("create capture directory: %w", err)
	}

	filename := filepath.Join(datedDir, fmt.Sprintf("capture_%s.jpg", now.Format("20060102_150405")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := d.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download thumbnail: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download thumbnail status %d", resp.StatusCode)
	}

	if err := writeAtomic(filename, resp.Body); err != nil {
		return "", err
	}

	// Copy the snapshot to the stable latest path
	src, err := os.Open(filename) // #nosec G304 -- path built from our own clock
	if err != nil {
		return "", fmt.Errorf("reopen capture: %w", err)
	}
	defer func() { _ = src.Close() }()

	latest := filepath.Join(d.dir, LatestName)
	if err := writeAtomic(latest, src); err != nil {
		return "", err
	}

	logger.Info("captured thumbnail",
		logger.String("file", filename),
		logger.String("latest", latest))
	return filename, nil
}

// writeAtomic streams r into path via a temp file in the same directory.
func writeAtomic(path string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".capture-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
