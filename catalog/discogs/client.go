package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ByLCY/jukestrip/catalog"
)

const (
	DefaultBaseURL     = "https://api.discogs.com"
	DefaultUserAgent   = "jukestrip/1.0"
	defaultHTTPTimeout = 30 * time.Second
)

// Config describes the Discogs client configuration.
type Config struct {
	Token      string
	UserAgent  string
	BaseURL    string
	HTTPClient *http.Client
}

// Client resolves release and master refs through the Discogs REST API.
type Client struct {
	token     string
	userAgent string
	baseURL   *url.URL
	http      *http.Client
}

var _ catalog.Source = (*Client)(nil)

// New creates a Client from the supplied configuration. The token is
// optional; anonymous requests are rate limited more strictly.
func New(cfg Config) (*Client, error) {
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("discogs: parse base url: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		token:     strings.TrimSpace(cfg.Token),
		userAgent: userAgent,
		baseURL:   baseURL,
		http:      client,
	}, nil
}

type artistPayload struct {
	Name string `json:"name"`
}

type trackPayload struct {
	Position string `json:"position"`
	Title    string `json:"title"`
	Type     string `json:"type_"`
}

type releasePayload struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Artists   []artistPayload `json:"artists"`
	Tracklist []trackPayload  `json:"tracklist"`
}

type masterPayload struct {
	ID          int64 `json:"id"`
	MainRelease int64 `json:"main_release"`
}

// Lookup implements catalog.Source. Master refs resolve to their main release.
func (c *Client) Lookup(ctx context.Context, ref catalog.Ref) (catalog.Release, error) {
	if c == nil {
		return catalog.Release{}, catalog.Wrap(catalog.ErrCatalogLookup, "discogs", "lookup", "client is nil", nil)
	}
	if ref.ID <= 0 {
		return catalog.Release{}, catalog.Wrap(catalog.ErrInvalidIdentifier, "discogs", "lookup", "missing numeric id", nil)
	}
	switch ref.Kind {
	case catalog.KindRelease:
		return c.Release(ctx, ref.ID)
	case catalog.KindMaster:
		releaseID, err := c.MainRelease(ctx, ref.ID)
		if err != nil {
			return catalog.Release{}, err
		}
		rel, err := c.Release(ctx, releaseID)
		if err != nil {
			return catalog.Release{}, err
		}
		rel.Ref = ref
		return rel, nil
	default:
		return catalog.Release{}, catalog.Wrap(catalog.ErrInvalidIdentifier, "discogs", "lookup", "unsupported kind "+string(ref.Kind), nil)
	}
}

// Release fetches one release with its full tracklist.
func (c *Client) Release(ctx context.Context, id int64) (catalog.Release, error) {
	var payload releasePayload
	if err := c.get(ctx, "get release", &payload, "releases", strconv.FormatInt(id, 10)); err != nil {
		return catalog.Release{}, err
	}
	if len(payload.Artists) == 0 {
		return catalog.Release{}, catalog.Wrap(catalog.ErrCatalogLookup, "discogs", "get release", fmt.Sprintf("release %d has no artists", id), nil)
	}
	rel := catalog.Release{
		Ref:    catalog.Ref{Kind: catalog.KindRelease, ID: id},
		Title:  payload.Title,
		Artist: payload.Artists[0].Name,
	}
	for _, tr := range payload.Tracklist {
		// Heading rows (type_ "heading") carry no position and drop out during parsing.
		rel.Tracks = append(rel.Tracks, catalog.RawTrack{Position: tr.Position, Title: tr.Title})
	}
	return rel, nil
}

// MainRelease returns the main release id of a master.
func (c *Client) MainRelease(ctx context.Context, masterID int64) (int64, error) {
	var payload masterPayload
	if err := c.get(ctx, "get master", &payload, "masters", strconv.FormatInt(masterID, 10)); err != nil {
		return 0, err
	}
	if payload.MainRelease <= 0 {
		return 0, catalog.Wrap(catalog.ErrCatalogLookup, "discogs", "get master", fmt.Sprintf("master %d has no main release", masterID), nil)
	}
	return payload.MainRelease, nil
}

func (c *Client) get(ctx context.Context, op string, out any, path ...string) error {
	endpoint := c.baseURL.JoinPath(path...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return catalog.Wrap(catalog.ErrCatalogLookup, "discogs", op, "build request", err)
	}
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return catalog.Wrap(catalog.ErrCatalogLookup, "discogs", op, "request failed", fmt.Errorf("%w: %w", catalog.ErrUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var cause error
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			cause = catalog.ErrUnavailable
		}
		return catalog.Wrap(catalog.ErrCatalogLookup, "discogs", op, fmt.Sprintf("%s: %s", resp.Status, strings.TrimSpace(string(body))), cause)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return catalog.Wrap(catalog.ErrCatalogLookup, "discogs", op, "decode response", err)
	}
	return nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.discogs.v2.discogs+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}
}
