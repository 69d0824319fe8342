package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/log"
)

// Locator detects a partial location from an IP address or coordinates.
// A nil result with nil error means "unknown"; detection failure never fails
// a search.
type Locator interface {
	DetectByIP(ctx context.Context, ip string) (*core.PartialLocation, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (*core.PartialLocation, error)
}

// ProviderChain queries a primary and a secondary HTTP geolocation provider,
// falling back to the secondary when the primary errors or returns nothing.
type ProviderChain struct {
	client *http.Client
	logger *log.Logger

	ipPrimaryURL    string
	ipSecondaryURL  string
	geoPrimaryURL   string
	geoSecondaryURL string
}

// NewProviderChain builds the default provider chain (ip-api.com backed by
// ipwho.is for IP lookups, Nominatim backed by BigDataCloud for reverse
// geocoding).
func NewProviderChain() *ProviderChain {
	return &ProviderChain{
		client:          &http.Client{Timeout: 10 * time.Second},
		logger:          log.ForComponent("geo"),
		ipPrimaryURL:    "http://ip-api.com/json",
		ipSecondaryURL:  "https://ipwho.is",
		geoPrimaryURL:   "https://nominatim.openstreetmap.org/reverse",
		geoSecondaryURL: "https://api.bigdatacloud.net/data/reverse-geocode-client",
	}
}

type ipAPIResponse struct {
	Status      string `json:"status"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	RegionName  string `json:"regionName"`
	City        string `json:"city"`
}

type ipWhoResponse struct {
	Success     bool   `json:"success"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	Region      string `json:"region"`
	City        string `json:"city"`
}

// DetectByIP resolves an IP address to a partial location, trying the
// primary provider first.
func (p *ProviderChain) DetectByIP(ctx context.Context, ip string) (*core.PartialLocation, error) {
	var primary ipAPIResponse
	err := p.getJSON(ctx, fmt.Sprintf("%s/%s", p.ipPrimaryURL, url.PathEscape(ip)), &primary)
	if err == nil && primary.Status == "success" && primary.Country != "" {
		return &core.PartialLocation{
			Country:     primary.Country,
			CountryCode: primary.CountryCode,
			State:       primary.RegionName,
			City:        primary.City,
		}, nil
	}
	if err != nil {
		p.logger.Warnf("primary IP lookup failed for %s: %v", ip, err)
	}

	var secondary ipWhoResponse
	if err := p.getJSON(ctx, fmt.Sprintf("%s/%s", p.ipSecondaryURL, url.PathEscape(ip)), &secondary); err != nil {
		return nil, fmt.Errorf("ip detection failed: %w", err)
	}
	if !secondary.Success || secondary.Country == "" {
		return nil, nil
	}
	return &core.PartialLocation{
		Country:     secondary.Country,
		CountryCode: secondary.CountryCode,
		State:       secondary.Region,
		City:        secondary.City,
	}, nil
}

type nominatimResponse struct {
	Address struct {
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
		State       string `json:"state"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
	} `json:"address"`
}

type bigDataCloudResponse struct {
	CountryName     string `json:"countryName"`
	CountryCode     string `json:"countryCode"`
	PrincipalSubdiv string `json:"principalSubdivision"`
	City            string `json:"city"`
}

// ReverseGeocode resolves coordinates to a partial location, trying the
// primary provider first.
func (p *ProviderChain) ReverseGeocode(ctx context.Context, lat, lon float64) (*core.PartialLocation, error) {
	primaryURL := fmt.Sprintf("%s?lat=%f&lon=%f&format=json", p.geoPrimaryURL, lat, lon)
	var primary nominatimResponse
	if err := p.getJSON(ctx, primaryURL, &primary); err == nil && primary.Address.Country != "" {
		city := primary.Address.City
		if city == "" {
			city = primary.Address.Town
		}
		if city == "" {
			city = primary.Address.Village
		}
		return &core.PartialLocation{
			Country:     primary.Address.Country,
			CountryCode: primary.Address.CountryCode,
			State:       primary.Address.State,
			City:        city,
		}, nil
	} else if err != nil {
		p.logger.Warnf("primary reverse geocode failed for %f,%f: %v", lat, lon, err)
	}

	secondaryURL := fmt.Sprintf("%s?latitude=%f&longitude=%f", p.geoSecondaryURL, lat, lon)
	var secondary bigDataCloudResponse
	if err := p.getJSON(ctx, secondaryURL, &secondary); err != nil {
		return nil, fmt.Errorf("reverse geocoding failed: %w", err)
	}
	if secondary.CountryName == "" {
		return nil, nil
	}
	return &core.PartialLocation{
		Country:     secondary.CountryName,
		CountryCode: secondary.CountryCode,
		State:       secondary.PrincipalSubdiv,
		City:        secondary.City,
	}, nil
}

func (p *ProviderChain) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "scour/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
