package connection

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dioritemc/diorite-go/internal/core/domain"
)

// Client performs material lookups against a diorite-server.
type Client struct {
	http *HTTPClient
}

// NewClient creates a Client for server.
func NewClient(server string, opts ...ClientOption) *Client {
	return &Client{http: NewHTTPClient(server, opts...)}
}

// BaseURL returns the server URL.
func (c *Client) BaseURL() string { return c.http.BaseURL() }

// Get resolves one reference.
func (c *Client) Get(ctx context.Context, q domain.Query) (domain.MaterialRecord, error) {
	if err := q.Validate(); err != nil {
		return domain.MaterialRecord{}, err
	}
	path := "/v1/materials/" + url.PathEscape(q.Ref)
	if q.Item {
		path += "?item=true"
	}
	var rec domain.MaterialRecord
	err := c.http.GetData(ctx, path, &rec)
	return rec, err
}

// List returns one page of materials.
func (c *Client) List(ctx context.Context, f domain.Filter) (domain.Page, error) {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	set("kind", f.Kind)
	set("prefix", f.Prefix)
	set("wood", f.Wood)
	set("color", f.Color)
	if f.Durable {
		v.Set("durable", "true")
	}
	if f.Variants {
		v.Set("variants", "true")
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}

	path := "/v1/materials"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var page domain.Page
	err := c.http.GetData(ctx, path, &page)
	return page, err
}

// Variants returns every sub-type of the material ref names.
func (c *Client) Variants(ctx context.Context, ref string) ([]domain.MaterialRecord, error) {
	var resp struct {
		Items []domain.MaterialRecord `json:"items"`
	}
	err := c.http.GetData(ctx, "/v1/materials/"+url.PathEscape(ref)+"/variants", &resp)
	return resp.Items, err
}

// Health returns the decoded /health body.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var h map[string]any
	err := c.http.GetData(ctx, "/health", &h)
	return h, err
}
