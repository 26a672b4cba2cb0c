package weather

import "context"

// Source binds a Client to fixed coordinates so callers fetch without
// carrying location state.
type Source struct {
	client *Client
	lat    float64
	lon    float64
}

// NewSource creates a Source for one location.
func NewSource(client *Client, lat, lon float64) *Source {
	return &Source{client: client, lat: lat, lon: lon}
}

// Fetch returns the current weather snapshot for the bound coordinates.
func (s *Source) Fetch(ctx context.Context) (*Data, error) {
	return s.client.Fetch(ctx, s.lat, s.lon)
}
