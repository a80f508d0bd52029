// Package paperless provides a client for the Paperless-ngx REST API.
package paperless

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Veraticus/asnreport/internal/common"
	"github.com/Veraticus/asnreport/internal/grouping"
	"github.com/Veraticus/asnreport/internal/model"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// maxErrorBody bounds how much of an error response is kept for diagnostics.
const maxErrorBody = 64 << 10

// DocumentSet is the result of a document fetch together with the ASN
// bounds observed in it.
type DocumentSet struct {
	Documents []model.Document
	MinASN    int
	MaxASN    int
}

// Client implements the DocumentSource interface.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	progress   Progress
	logger     *slog.Logger
	baseURL    string
	pageSize   int
}

// Option configures a Client.
type Option func(*Client)

// WithProgress reports paging progress to p.
func WithProgress(p Progress) Option {
	return func(c *Client) {
		if p != nil {
			c.progress = p
		}
	}
}

// WithLogger overrides the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new Paperless client with the given configuration.
// Every request carries "Authorization: Token <token>".
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.Token,
		TokenType:   "Token",
	})

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &oauth2.Transport{
				Source: source,
				Base:   http.DefaultTransport,
			},
		},
		limiter:  rate.NewLimiter(limit, 1),
		progress: noopProgress{},
		logger:   slog.Default(),
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		pageSize: cfg.PageSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchCustomField fetches a custom field definition including its select options.
func (c *Client) FetchCustomField(ctx context.Context, id int) (*model.CustomField, error) {
	var field model.CustomField
	if err := c.getJSON(ctx, "custom field", c.endpoint(fmt.Sprintf("custom_fields/%d/", id), nil), &field); err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched custom field",
		"id", field.ID,
		"name", field.Name,
		"data_type", field.DataType,
		"options", len(field.SelectOptions))

	return &field, nil
}

// FetchCorrespondents fetches every correspondent.
func (c *Client) FetchCorrespondents(ctx context.Context) ([]model.Correspondent, error) {
	return fetchAll[model.Correspondent](ctx, c, "correspondents", c.endpoint("correspondents/", c.pageQuery()))
}

// FetchDocuments fetches every document whose ASN lies in [asnFrom, asnTo].
// The returned bounds are those observed in the result, or the requested
// bounds when nothing matched.
func (c *Client) FetchDocuments(ctx context.Context, asnFrom, asnTo int) (*DocumentSet, error) {
	query := c.pageQuery()
	query.Set("archive_serial_number__gte", strconv.Itoa(asnFrom))
	query.Set("archive_serial_number__lte", strconv.Itoa(asnTo))

	docs, err := fetchAll[model.Document](ctx, c, "documents", c.endpoint("documents/", query))
	if err != nil {
		return nil, err
	}

	minASN, maxASN := grouping.Bounds(docs, asnFrom, asnTo)
	return &DocumentSet{
		Documents: docs,
		MinASN:    minASN,
		MaxASN:    maxASN,
	}, nil
}

func (c *Client) pageQuery() url.Values {
	query := url.Values{}
	if c.pageSize > 0 {
		query.Set("page_size", strconv.Itoa(c.pageSize))
	}
	return query
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// getJSON issues one GET and decodes the JSON body into v.
func (c *Client) getJSON(ctx context.Context, resource, rawURL string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrPaperlessRequest, resource, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrPaperlessRequest, resource, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &common.APIError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrMalformedResponse, resource, err)
	}

	return nil
}
