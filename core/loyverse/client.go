package loyverse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-sync/core/reconcile"
)

// Client calls the Loyverse REST API. It implements reconcile.DownstreamClient.
type Client struct {
	baseURL   string
	token     string
	pageLimit int
	http      *http.Client
	limiter   <-chan time.Time
}

// NewClient creates a client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("loyverse token is empty")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.loyverse.com/v1.0"
	}
	rateLimitPerMin := cfg.RateLimitPerMin
	if rateLimitPerMin <= 0 {
		rateLimitPerMin = 300
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	pageLimit := cfg.PageLimit
	if pageLimit <= 0 || pageLimit > 250 {
		pageLimit = 250
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     cfg.Token,
		pageLimit: pageLimit,
		http:      &http.Client{Timeout: time.Duration(timeout) * time.Second},
		limiter:   time.Tick(time.Minute / time.Duration(rateLimitPerMin)),
	}, nil
}

// do sends one rate-limited API request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader, contentType string, out any) error {
	select {
	case <-c.limiter:
	case <-ctx.Done():
		return ctx.Err()
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			Endpoint:   method + " " + path,
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, nil, body, contentType, out)
}

// errorMessage extracts the details of an API error body.
func errorMessage(body []byte) string {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		parts := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			if e.Details != "" {
				parts = append(parts, e.Code+": "+e.Details)
			} else {
				parts = append(parts, e.Code)
			}
		}
		return strings.Join(parts, "; ")
	}
	return strings.TrimSpace(string(body))
}

func (c *Client) pageParams(cursor string) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.pageLimit))
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	return params
}

// ListItems returns every live item, following the cursor.
func (c *Client) ListItems(ctx context.Context) ([]reconcile.DownstreamRecord, error) {
	var out []reconcile.DownstreamRecord
	cursor := ""
	for {
		var page itemsPage
		if err := c.do(ctx, http.MethodGet, "/items", c.pageParams(cursor), nil, "", &page); err != nil {
			return nil, err
		}
		for _, it := range page.Items {
			if it.DeletedAt != nil {
				continue
			}
			out = append(out, toRecord(it))
		}
		if page.Cursor == "" {
			return out, nil
		}
		cursor = page.Cursor
	}
}

// ListCategories returns every live category, following the cursor.
func (c *Client) ListCategories(ctx context.Context) ([]reconcile.DownstreamCategory, error) {
	var out []reconcile.DownstreamCategory
	cursor := ""
	for {
		var page categoriesPage
		if err := c.do(ctx, http.MethodGet, "/categories", c.pageParams(cursor), nil, "", &page); err != nil {
			return nil, err
		}
		for _, cat := range page.Categories {
			if cat.DeletedAt != nil {
				continue
			}
			out = append(out, reconcile.DownstreamCategory{ID: cat.ID, Name: cat.Name})
		}
		if page.Cursor == "" {
			return out, nil
		}
		cursor = page.Cursor
	}
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, name string) (reconcile.DownstreamCategory, error) {
	var created category
	if err := c.doJSON(ctx, http.MethodPost, "/categories", category{Name: name}, &created); err != nil {
		return reconcile.DownstreamCategory{}, err
	}
	return reconcile.DownstreamCategory{ID: created.ID, Name: created.Name}, nil
}

// CreateItem creates an item and returns it with its new id.
func (c *Client) CreateItem(ctx context.Context, payload reconcile.DownstreamPayload) (reconcile.DownstreamRecord, error) {
	payload.ID = ""
	var created item
	if err := c.doJSON(ctx, http.MethodPost, "/items", toItem(payload), &created); err != nil {
		return reconcile.DownstreamRecord{}, err
	}
	return toRecord(created), nil
}

// UpdateItem overwrites an item. Loyverse updates when the body carries an id.
func (c *Client) UpdateItem(ctx context.Context, id string, payload reconcile.DownstreamPayload) error {
	if id == "" {
		return errors.New("update requires an item id")
	}
	payload.ID = id
	return c.doJSON(ctx, http.MethodPost, "/items", toItem(payload), nil)
}

// DeleteItem deletes an item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil)
}

// UploadImage downloads imageURL and attaches it to the item.
func (c *Client) UploadImage(ctx context.Context, id, imageURL string) error {
	data, contentType, err := c.download(ctx, imageURL)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/items/"+url.PathEscape(id)+"/image", nil, bytes.NewReader(data), contentType, nil)
}

func (c *Client) download(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid image url: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", errors.New("downloaded image is empty")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("downloaded file is not an image: %s", contentType)
	}
	return data, contentType, nil
}

func toRecord(it item) reconcile.DownstreamRecord {
	rec := reconcile.DownstreamRecord{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		ImageURL:    it.ImageURL,
	}
	if it.CategoryID != nil {
		rec.CategoryID = *it.CategoryID
	}
	if len(it.Variants) > 0 {
		rec.VariantID = it.Variants[0].VariantID
		if it.Variants[0].DefaultPrice != nil {
			rec.Price = it.Variants[0].DefaultPrice.Decimal()
		}
	}
	return rec
}

func toItem(p reconcile.DownstreamPayload) item {
	it := item{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
	}
	if p.CategoryID != "" {
		categoryID := p.CategoryID
		it.CategoryID = &categoryID
	}
	for _, v := range p.Variants {
		price := Price(v.Price)
		it.Variants = append(it.Variants, variant{
			VariantID:          v.VariantID,
			DefaultPricingType: "FIXED",
			DefaultPrice:       &price,
		})
	}
	return it
}
