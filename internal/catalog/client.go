package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"headless-express/internal/config"
	"headless-express/internal/domain"

	"go.uber.org/zap"
)

const defaultPageSize = 12

// CredentialSource yields the storefront credentials for one request. The client
// consults it on every call instead of caching credentials at construction, so a
// misconfiguration is detected (and a fix picked up) per request.
type CredentialSource func() config.ShopifyConfig

// Client issues queries against the commerce platform's Storefront GraphQL API
// and normalizes responses into the internal product shape. Pure request/response;
// it holds no state beyond its collaborators.
type Client struct {
	creds      CredentialSource
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a catalog client. A nil httpClient falls back to
// http.DefaultClient; request deadlines are the caller's responsibility via ctx.
func NewClient(creds CredentialSource, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		creds:      creds,
		httpClient: httpClient,
		logger:     logger,
	}
}

// ListOptions parameterizes a product listing.
type ListOptions struct {
	First        int
	After        string
	Query        string
	SortKey      string
	Reverse      bool
	Availability Availability
}

// ListResult is a page of products plus its cursor state.
type ListResult struct {
	Products []domain.Product `json:"products"`
	PageInfo domain.PageInfo  `json:"page_info"`
}

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type gqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// fetch posts one GraphQL request and returns the raw data payload. All failure
// modes (configuration, transport, upstream error payloads) come back as wrapped
// sentinel errors; nothing panics across this boundary.
func (c *Client) fetch(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	cfg := c.creds()

	if cfg.Domain == "" || cfg.Domain == config.DomainPlaceholder {
		return nil, fmt.Errorf("%w: SHOPIFY_STORE_DOMAIN is missing or still the placeholder %q; set your shop domain (e.g. your-shop.myshopify.com) in .env and restart",
			ErrNotConfigured, config.DomainPlaceholder)
	}
	if cfg.Token == "" || cfg.Token == config.TokenPlaceholder {
		return nil, fmt.Errorf("%w: SHOPIFY_STOREFRONT_ACCESS_TOKEN is missing or still the placeholder; set your public Storefront access token in .env and restart",
			ErrNotConfigured)
	}

	version := cfg.APIVersion
	if version == "" {
		version = "2024-04"
	}
	endpoint := fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.Domain, version)

	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", cfg.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// An unresolvable domain is a misconfiguration, not an outage, so it
		// takes the same fallback path as a placeholder credential.
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return nil, fmt.Errorf("%w: could not resolve storefront domain %q (%v); check SHOPIFY_STORE_DOMAIN in .env and restart",
				ErrNotConfigured, cfg.Domain, err)
		}
		return nil, fmt.Errorf("storefront request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read storefront response: %w", err)
	}

	var envelope gqlEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(envelope.Errors) > 0 {
		c.logger.Error("Storefront API returned errors",
			zap.Int("status", resp.StatusCode),
			zap.String("first_error", envelope.Errors[0].Message),
			zap.Int("error_count", len(envelope.Errors)),
		)
		if isUnauthorized(envelope.Errors) {
			return nil, fmt.Errorf("%w: the platform rejected the request (%s); check that SHOPIFY_STOREFRONT_ACCESS_TOKEN is a public Storefront token rather than an Admin API key, that it has the unauthenticated_read_product_listings permission, and that store password protection is disabled",
				ErrUnauthorized, envelope.Errors[0].Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrUpstream, envelope.Errors[0].Message)
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	return envelope.Data, nil
}

func isUnauthorized(errs []gqlError) bool {
	for _, e := range errs {
		if e.Extensions.Code == "UNAUTHORIZED" || strings.Contains(strings.ToLower(e.Message), "unauthorized") {
			return true
		}
	}
	return false
}

// ListProducts fetches one page of the catalog. On configuration errors and
// unauthorized responses the returned ListResult carries the static sample
// catalog truncated to the requested page size, and the error is returned
// alongside it so callers can render both the fallback and the remediation text.
// Other failures return an empty result plus the error.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) (ListResult, error) {
	first := opts.First
	if first <= 0 {
		first = defaultPageSize
	}

	variables := map[string]interface{}{
		"first":   first,
		"reverse": opts.Reverse,
	}
	if opts.After != "" {
		variables["after"] = opts.After
	}
	if q := buildSearchQuery(opts.Query, opts.Availability); q != "" {
		variables["query"] = q
	}
	if opts.SortKey != "" {
		variables["sortKey"] = opts.SortKey
	}

	data, err := c.fetch(ctx, getProductsQuery, variables)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrUnauthorized) {
			c.logger.Warn("Falling back to sample catalog", zap.Error(err))
			return sampleFallback(first), err
		}
		return ListResult{}, err
	}

	var payload productsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return ListResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.Products == nil {
		return ListResult{}, fmt.Errorf("%w: no products in response", ErrMalformedResponse)
	}

	result := ListResult{
		Products: make([]domain.Product, 0, len(payload.Products.Edges)),
		PageInfo: domain.PageInfo{
			HasNextPage:     payload.Products.PageInfo.HasNextPage,
			EndCursor:       payload.Products.PageInfo.EndCursor,
			HasPreviousPage: payload.Products.PageInfo.HasPreviousPage,
			StartCursor:     payload.Products.PageInfo.StartCursor,
		},
	}
	for _, edge := range payload.Products.Edges {
		result.Products = append(result.Products, mapProduct(edge.Node))
	}

	return result, nil
}

// GetProductBySlug fetches a single product by its URL handle. Absence is
// meaningful here, so there is no sample-data fallback: a missing product
// returns ErrNotFound.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	data, err := c.fetch(ctx, getProductByHandleQuery, map[string]interface{}{"handle": slug})
	if err != nil {
		return nil, err
	}

	var payload productByHandlePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.ProductByHandle == nil {
		return nil, fmt.Errorf("%w: no product with slug %q", ErrNotFound, slug)
	}

	product := mapProduct(*payload.ProductByHandle)
	return &product, nil
}
