package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foggyhq/foggybot/internal/reporter"
	"github.com/foggyhq/foggybot/internal/weather"
)

type fakeWeather struct {
	data *weather.Data
	err  error
}

func (f *fakeWeather) Fetch(_ context.Context) (*weather.Data, error) {
	return f.data, f.err
}

type fakeVideo struct {
	path   string
	err    error
	called int
}

func (f *fakeVideo) Capture(_ context.Context) (string, error) {
	f.called++
	return f.path, f.err
}

type fakeSummarizer struct {
	report *reporter.Report
	err    error
	called int
}

func (f *fakeSummarizer) Generate(_ context.Context, data *weather.Data, imagePath string) (*reporter.Report, error) {
	f.called++
	if f.err != nil {
		return nil, f.err
	}
	r := *f.report
	r.ForecastData = data
	return &r, nil
}

func testData() *weather.Data {
	return &weather.Data{
		Location: weather.Location{Name: "Evanston", State: "IL"},
		Forecast: []weather.ForecastPeriod{{Name: "Today", DetailedForecast: "Sunny."}},
	}
}

func testReport() *reporter.Report {
	return &reporter.Report{
		WeatherReport: "Calm and clear along the lakefront.",
		ColorCode:     "#88aacc",
		Timestamp:     "2026-08-28 09:30:00",
	}
}

func TestRun_WritesReport(t *testing.T) {
	dir := t.TempDir()
	reportFile := filepath.Join(dir, "weather_report.json")

	p := New(
		&fakeWeather{data: testData()},
		&fakeVideo{path: filepath.Join(dir, "captures", "capture_latest.jpg")},
		&fakeSummarizer{report: testReport()},
		reportFile,
	)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reportFile, result.ReportPath)

	raw, err := os.ReadFile(reportFile)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Calm and clear along the lakefront.", doc["weather_report"])
	assert.Equal(t, "#88aacc", doc["color_code"])
	forecastData, ok := doc["forecast_data"].(map[string]any)
	require.True(t, ok, "forecast_data should be an object")
	location, ok := forecastData["location"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Evanston", location["name"])

	assert.Equal(t, byte('\n'), raw[len(raw)-1], "report file should end with a newline")
}

func TestRun_Deterministic(t *testing.T) {
	dir := t.TempDir()
	reportFile := filepath.Join(dir, "weather_report.json")

	build := func() *Pipeline {
		return New(
			&fakeWeather{data: testData()},
			&fakeVideo{path: "captures/capture_latest.jpg"},
			&fakeSummarizer{report: testReport()},
			reportFile,
		)
	}

	_, err := build().Run(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(reportFile)
	require.NoError(t, err)

	_, err = build().Run(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(reportFile)
	require.NoError(t, err)

	assert.Equal(t, first, second, "two runs with identical inputs must produce identical bytes")
}

func TestRun_CaptureFailureAbortsEarly(t *testing.T) {
	dir := t.TempDir()
	reportFile := filepath.Join(dir, "weather_report.json")
	summarizer := &fakeSummarizer{report: testReport()}

	p := New(
		&fakeWeather{data: testData()},
		&fakeVideo{err: errors.New("thumbnail gone")},
		summarizer,
		reportFile,
	)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capture stage")
	assert.Zero(t, summarizer.called, "summarizer must not run after capture failure")

	_, err = os.Stat(reportFile)
	assert.True(t, os.IsNotExist(err), "no report should be written on failure")
}

func TestRun_WeatherFailureAborts(t *testing.T) {
	dir := t.TempDir()
	reportFile := filepath.Join(dir, "weather_report.json")
	summarizer := &fakeSummarizer{report: testReport()}

	p := New(
		&fakeWeather{err: errors.New("api.weather.gov unreachable")},
		&fakeVideo{path: "captures/capture_latest.jpg"},
		summarizer,
		reportFile,
	)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather stage")
	assert.Zero(t, summarizer.called)
}

func TestRun_SummarizeFailureLeavesOldReport(t *testing.T) {
	dir := t.TempDir()
	reportFile := filepath.Join(dir, "weather_report.json")
	previous := []byte(`{"weather_report": "yesterday"}`)
	require.NoError(t, os.WriteFile(reportFile, previous, 0o644))

	p := New(
		&fakeWeather{data: testData()},
		&fakeVideo{path: "captures/capture_latest.jpg"},
		&fakeSummarizer{err: errors.New("model overloaded")},
		reportFile,
	)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "synthesize stage")

	raw, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	assert.Equal(t, previous, raw, "failed run must not touch the existing report")
}
