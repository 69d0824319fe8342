// Package serp is the upstream search provider client. One endpoint per
// result kind (web, image, video, place, news), each returning a normalized
// Response. Safe search is always forced on regardless of the engine's own
// content filter.
package serp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rubiojr/scour/pkg/core"
	"github.com/rubiojr/scour/pkg/log"
)

// ErrMissingAPIKey is the single fatal configuration error: without
// credentials no source can be queried at all.
var ErrMissingAPIKey = errors.New("serp: upstream API key not configured")

const defaultBaseURL = "https://google.serper.dev"

var kindEndpoints = map[core.ResultKind]string{
	core.KindWeb:   "/search",
	core.KindImage: "/images",
	core.KindVideo: "/videos",
	core.KindPlace: "/places",
	core.KindNews:  "/news",
}

// Client talks to the upstream provider. Safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewClient builds a client. baseURL may be empty to use the provider
// default; tests point it at an httptest server.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  log.ForComponent("serp"),
	}
}

// Search issues one upstream call for the query's kind.
func (c *Client) Search(ctx context.Context, q Query) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint, ok := kindEndpoints[q.Kind]
	if !ok {
		endpoint = kindEndpoints[core.KindWeb]
	}

	body := searchRequest{
		Q:        q.Text,
		GL:       q.CountryCode,
		HL:       q.Language,
		Location: q.Location,
		Num:      q.PageSize,
		Page:     q.Page,
		TBS:      timeRangeTBS[q.TimeRange],
		Safe:     "active",
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d for %q", resp.StatusCode, q.Text)
	}

	c.logger.Debugf("upstream %s query %q page %d", endpoint, q.Text, q.Page)
	return c.decode(q.Kind, resp.Body)
}

func (c *Client) decode(kind core.ResultKind, body io.Reader) (*Response, error) {
	dec := json.NewDecoder(body)
	switch kind {
	case core.KindImage:
		var wire imageResponse
		if err := dec.Decode(&wire); err != nil {
			return nil, fmt.Errorf("decoding image response: %w", err)
		}
		return convertImages(wire), nil
	case core.KindVideo:
		var wire videoResponse
		if err := dec.Decode(&wire); err != nil {
			return nil, fmt.Errorf("decoding video response: %w", err)
		}
		return convertVideos(wire), nil
	case core.KindPlace:
		var wire placeResponse
		if err := dec.Decode(&wire); err != nil {
			return nil, fmt.Errorf("decoding place response: %w", err)
		}
		return convertPlaces(wire), nil
	case core.KindNews:
		var wire newsResponse
		if err := dec.Decode(&wire); err != nil {
			return nil, fmt.Errorf("decoding news response: %w", err)
		}
		return convertNews(wire), nil
	default:
		var wire webResponse
		if err := dec.Decode(&wire); err != nil {
			return nil, fmt.Errorf("decoding web response: %w", err)
		}
		return convertWeb(wire), nil
	}
}

// FaviconRef builds a favicon reference for a result link. Not a network
// call; just a stable URL the presentation layer can use.
func FaviconRef(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	return "https://www.google.com/s2/favicons?domain=" + u.Hostname()
}
