// Package weather fetches current conditions and forecast data from the
// National Weather Service API (api.weather.gov).
package weather

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/foggyhq/foggybot/pkg/logger"
)

// Doer abstracts the HTTP client so tests can inject canned responses.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the NWS API. The service requires a User-Agent header
// identifying the caller.
type Client struct {
	baseURL   string
	userAgent string
	periods   int
	http      Doer
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	UserAgent string
	// Periods limits how many forecast periods are returned; 0 means all.
	Periods int
	HTTP    Doer
}

// NewClient creates a weather client with a secure default HTTP client.
func NewClient(opts Options) *Client {
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
		baseURL = "https://api.weather.gov"
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: opts.UserAgent,
		periods:   opts.Periods,
		http:      httpClient,
	}
}

// Fetch resolves the gridpoint for the coordinates, then gathers the
// forecast and the latest observation from the nearest station.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*Data, error) {
	point, err := c.fetchPoint(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("points lookup: %w", err)
	}

	forecast, err := c.fetchForecast(ctx, point.Properties.Forecast)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	obs, err := c.fetchObservation(ctx, point.Properties.ObservationStations)
	if err != nil {
		return nil, fmt.Errorf("observation: %w", err)
	}

	periods := forecast.Properties.Periods
	if c.periods > 0 && len(periods) > c.periods {
		periods = periods[:c.periods]
	}

	data := &Data{
		Location: Location{
			Name:      point.Properties.RelativeLocation.Properties.City,
			State:     point.Properties.RelativeLocation.Properties.State,
			Latitude:  lat,
			Longitude: lon,
		},
		Current:  formatConditions(obs),
		Forecast: periods,
	}
	logger.Debug("fetched weather data",
		logger.String("location", data.Location.Name),
		logger.Int("periods", len(data.Forecast)))
	return data, nil
}

func (c *Client) fetchPoint(ctx context.Context, lat, lon float64) (*pointsResponse, error) {
	url := fmt.Sprintf("%s/points/%s,%s", c.baseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64))
	var out pointsResponse
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	if out.Properties.Forecast == "" || out.Properties.ObservationStations == "" {
		return nil, fmt.Errorf("points response missing forecast or stations URL")
	}
	return &out, nil
}

func (c *Client) fetchForecast(ctx context.Context, url string) (*forecastResponse, error) {
	var out forecastResponse
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	if len(out.Properties.Periods) == 0 {
		return nil, fmt.Errorf("forecast response has no periods")
	}
	return &out, nil
}

func (c *Client) fetchObservation(ctx context.Context, stationsURL string) (*observationResponse, error) {
	var stations stationsResponse
	if err := c.getJSON(ctx, stationsURL, &stations); err != nil {
		return nil, err
	}
	if len(stations.Features) == 0 {
		return nil, fmt.Errorf("no observation stations near point")
	}

	obsURL := stations.Features[0].ID + "/observations/latest"
	var out observationResponse
	if err := c.getJSON(ctx, obsURL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, url, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func formatConditions(obs *observationResponse) Conditions {
	p := obs.Properties
	return Conditions{
		Timestamp:    p.Timestamp,
		TemperatureF: celsiusToFahrenheit(p.Temperature.Value),
		TemperatureC: p.Temperature.Value,
		Humidity:     p.RelativeHumidity.Value,
		WindSpeedMPH: msToMph(p.WindSpeed.Value),
		WindDegrees:  p.WindDirection.Value,
		Description:  p.TextDescription,
	}
}

func celsiusToFahrenheit(celsius *float64) *float64 {
	if celsius == nil {
		return nil
	}
	f := (*celsius * 9 / 5) + 32
	return &f
}

func msToMph(metersPerSecond *float64) *float64 {
	if metersPerSecond == nil {
		return nil
	}
	mph := *metersPerSecond * 2.237
	return &mph
}
