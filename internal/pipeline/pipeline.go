// Package pipeline orchestrates one fetch → synthesize → persist run:
// capture the livestream thumbnail, fetch weather data, ask the summarizer
// for a report, and write the report document to disk.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/foggyhq/foggybot/internal/reporter"
	"github.com/foggyhq/foggybot/internal/weather"
	"github.com/foggyhq/foggybot/pkg/logger"
)

// WeatherSource fetches a weather snapshot for the configured location.
type WeatherSource interface {
	Fetch(ctx context.Context) (*weather.Data, error)
}

// VideoSource captures the livestream thumbnail, returning the stored path.
type VideoSource interface {
	Capture(ctx context.Context) (string, error)
}

// Summarizer synthesizes the report from weather data and a capture image.
type Summarizer interface {
	Generate(ctx context.Context, data *weather.Data, imagePath string) (*reporter.Report, error)
}

// Pipeline runs the report pipeline end to end.
type Pipeline struct {
	weather    WeatherSource
	video      VideoSource
	summarizer Summarizer
	reportFile string
}

// New assembles a Pipeline writing its report to reportFile.
func New(w WeatherSource, v VideoSource, s Summarizer, reportFile string) *Pipeline {
	return &Pipeline{weather: w, video: v, summarizer: s, reportFile: reportFile}
}

// Result names the artifacts written by a successful run.
type Result struct {
	ReportPath  string
	CapturePath string
	Report      *reporter.Report
}

// Run executes one pipeline run. Any stage failure aborts the run before the
// report file is touched; the report write itself goes through a temp file
// and rename so a partial write never replaces a good report.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	capturePath, err := p.video.Capture(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture stage: %w", err)
	}
	logger.Debug("capture stage complete", logger.String("path", capturePath))

	data, err := p.weather.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("weather stage: %w", err)
	}

	report, err := p.summarizer.Generate(ctx, data, capturePath)
	if err != nil {
		return nil, fmt.Errorf("synthesize stage: %w", err)
	}

	if err := writeReport(p.reportFile, report); err != nil {
		return nil, fmt.Errorf("persist stage: %w", err)
	}
	logger.Info("report written", logger.String("file", p.reportFile))

	return &Result{
		ReportPath:  p.reportFile,
		CapturePath: capturePath,
		Report:      report,
	}, nil
}

// writeReport marshals the report and atomically replaces path with it.
func writeReport(path string, report *reporter.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { // #nosec G302 -- report is a public artifact
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod report: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
