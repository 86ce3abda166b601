package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pitwall/f1insight/log"
	"github.com/pitwall/f1insight/pkg/timing"
	"github.com/pitwall/f1insight/pkg/timing/diskcache"
)

const DefaultBaseURL = "https://api.openf1.org/v1"

// Client issues requests against the OpenF1 REST API. Responses are
// stored verbatim in the configured disk cache, keyed by request URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *diskcache.Cache
	l          *log.Logger
	tracer     trace.Tracer
}

type ClientOption func(*Client)

func WithBaseURL(arg string) ClientOption {
	return func(c *Client) { c.baseURL = arg }
}

func WithHTTPClient(arg *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = arg }
}

func WithTimeout(arg time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = arg }
}

func WithCache(arg *diskcache.Cache) ClientOption {
	return func(c *Client) { c.cache = arg }
}

func WithClientLogger(arg *log.Logger) ClientOption {
	return func(c *Client) { c.l = arg }
}

func NewClient(opts ...ClientOption) *Client {
	ret := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		l:          log.Default().Named("timing.openf1"),
		tracer:     otel.Tracer("timing.openf1"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// get fetches path with query and decodes the JSON response into out.
// Cached responses bypass the network entirely.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	if c.cache != nil {
		if data, ok := c.cache.Get(diskcache.Key(reqURL)); ok {
			return json.Unmarshal(data, out)
		}
	}
	ctx, span := c.tracer.Start(ctx, "openf1.get",
		trace.WithAttributes(attribute.String("http.url", reqURL)))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	c.l.Debug("fetch", log.String("url", reqURL))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", timing.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %s", timing.ErrUpstream, path, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", timing.ErrUpstream, err)
	}
	if c.cache != nil {
		if err := c.cache.Put(diskcache.Key(reqURL), data); err != nil {
			c.l.Warn("could not write cache entry", log.ErrorField(err))
		}
	}
	return json.Unmarshal(data, out)
}

func (c *Client) meetings(ctx context.Context, year int) ([]Meeting, error) {
	query := url.Values{"year": []string{fmt.Sprintf("%d", year)}}
	var ret []Meeting
	if err := c.get(ctx, "/meetings", query, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) sessions(ctx context.Context, meetingKey int) ([]Session, error) {
	query := url.Values{"meeting_key": []string{fmt.Sprintf("%d", meetingKey)}}
	var ret []Session
	if err := c.get(ctx, "/sessions", query, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) sessionResult(ctx context.Context, sessionKey int) ([]SessionResult, error) {
	query := url.Values{"session_key": []string{fmt.Sprintf("%d", sessionKey)}}
	var ret []SessionResult
	if err := c.get(ctx, "/session_result", query, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) drivers(ctx context.Context, sessionKey int) ([]Driver, error) {
	query := url.Values{"session_key": []string{fmt.Sprintf("%d", sessionKey)}}
	var ret []Driver
	if err := c.get(ctx, "/drivers", query, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) laps(ctx context.Context, sessionKey int) ([]Lap, error) {
	query := url.Values{"session_key": []string{fmt.Sprintf("%d", sessionKey)}}
	var ret []Lap
	if err := c.get(ctx, "/laps", query, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) stints(ctx context.Context, sessionKey int) ([]Stint, error) {
	query := url.Values{"session_key": []string{fmt.Sprintf("%d", sessionKey)}}
	var ret []Stint
	if err := c.get(ctx, "/stints", query, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

//nolint:whitespace // can't make both editor and linter happy
func (c *Client) carData(
	ctx context.Context, sessionKey, driverNumber int, from, to time.Time,
) ([]CarData, error) {
	query := url.Values{
		"session_key":   []string{fmt.Sprintf("%d", sessionKey)},
		"driver_number": []string{fmt.Sprintf("%d", driverNumber)},
		"date>=":        []string{from.UTC().Format(time.RFC3339Nano)},
		"date<=":        []string{to.UTC().Format(time.RFC3339Nano)},
	}
	var ret []CarData
	if err := c.get(ctx, "/car_data", query, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}
