package geocode

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to a Nominatim-compatible reverse geocoding endpoint. Results
// are used only to assemble a display address; nothing structured is
// persisted beyond the assembled string and locality/city substrings.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type Address struct {
	DisplayName string
	Locality    string
	City        string
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Village string `json:"village"`
		Suburb  string `json:"suburb"`
		City    string `json:"city"`
		Town    string `json:"town"`
		County  string `json:"county"`
	} `json:"address"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Reverse resolves coordinates into address components.
func (c *Client) Reverse(lat, lng float64) (*Address, error) {
	endpoint := fmt.Sprintf("%s/reverse?format=json&lat=%s&lon=%s",
		c.BaseURL,
		url.QueryEscape(fmt.Sprintf("%f", lat)),
		url.QueryEscape(fmt.Sprintf("%f", lng)),
	)

	resp, err := c.HTTPClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read geocode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode service returned status %d: %s", resp.StatusCode, string(body))
	}

	var rr reverseResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return nil, fmt.Errorf("failed to parse geocode response: %w", err)
	}

	addr := &Address{DisplayName: rr.DisplayName}

	addr.Locality = rr.Address.Village
	if addr.Locality == "" {
		addr.Locality = rr.Address.Suburb
	}

	addr.City = rr.Address.City
	if addr.City == "" {
		addr.City = rr.Address.Town
	}
	if addr.City == "" {
		addr.City = rr.Address.County
	}

	return addr, nil
}
