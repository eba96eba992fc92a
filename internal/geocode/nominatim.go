package geocode

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client looks up human-readable addresses from coordinates via Nominatim.
// Lookups are a display convenience only; callers fall back to raw coordinates
// on any failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type reverseResponse struct {
	Address struct {
		Village       string `json:"village"`
		Suburb        string `json:"suburb"`
		Town          string `json:"town"`
		County        string `json:"county"`
		StateDistrict string `json:"state_district"`
		State         string `json:"state"`
	} `json:"address"`
}

// ReverseGeocode resolves lat/lon into "village, district, state". On any
// failure it returns a "Lat: x, Lon: y" string and the underlying error; the
// returned string is always usable.
func (c *Client) ReverseGeocode(lat, lon float64) (string, error) {
	fallback := fmt.Sprintf("Lat: %v, Lon: %v", lat, lon)

	url := fmt.Sprintf("%s/reverse?format=json&lat=%v&lon=%v&zoom=18&addressdetails=1", c.baseURL, lat, lon)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return fallback, fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallback, fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fallback, fmt.Errorf("failed to read reverse geocode response: %w", err)
	}

	var parsed reverseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback, fmt.Errorf("failed to parse reverse geocode response: %w", err)
	}

	village := parsed.Address.Village
	if village == "" {
		village = parsed.Address.Suburb
	}
	if village == "" {
		village = parsed.Address.Town
	}
	district := parsed.Address.County
	if district == "" {
		district = parsed.Address.StateDistrict
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{village, district, parsed.Address.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return fallback, fmt.Errorf("reverse geocode response had no address components")
	}

	return strings.Join(parts, ", "), nil
}
