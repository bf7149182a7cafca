// Package trendyol is the HTTP client for the marketplace's supplier
// API: batch product submission, price and inventory updates, batch
// status polling and the category, attribute and brand reference
// endpoints.
package trendyol

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.trendyol.com/sapigw"

// Config holds the seller credentials for the marketplace API.
type Config struct {
	SellerID  string
	APIKey    string
	APISecret string
	BaseURL   string
}

// Option is custom configuration of Client.
type Option func(c *Client)

// Client calls the marketplace supplier API. All requests pass through
// a shared rate limiter so bulk operations cannot trip the API's quota.
type Client struct {
	client     *http.Client
	limiter    *rate.Limiter
	baseURL    string
	sellerID   string
	authHeader string
	userAgent  string
}

// NewClient returns a new marketplace Client.
func NewClient(client *http.Client, cfg Config, ops ...Option) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(cfg.APIKey + ":" + cfg.APISecret))

	cl := &Client{
		client:     client,
		limiter:    rate.NewLimiter(rate.Limit(10), 10),
		baseURL:    strings.TrimRight(baseURL, "/"),
		sellerID:   cfg.SellerID,
		authHeader: "Basic " + credentials,
		userAgent:  cfg.SellerID + " - SelfIntegration",
	}

	for _, op := range ops {
		op(cl)
	}

	return cl
}

// WithRateLimit sets the request rate limit.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// InventoryItem is one entry of a price-and-inventory update.
type InventoryItem struct {
	Barcode   string          `json:"barcode"`
	Quantity  int             `json:"quantity"`
	SalePrice decimal.Decimal `json:"salePrice"`
	ListPrice decimal.Decimal `json:"listPrice"`
}

// BatchItemResult is the per-item outcome inside a batch status report.
type BatchItemResult struct {
	Barcode        string   `json:"barcode"`
	Status         string   `json:"status"`
	FailureReasons []string `json:"failureReasons"`
}

// BatchStatus is the remote state of one batch request.
type BatchStatus struct {
	BatchRequestID  string            `json:"batchRequestId"`
	Status          string            `json:"status"`
	ItemCount       int               `json:"itemCount"`
	FailedItemCount int               `json:"failedItemCount"`
	Items           []BatchItemResult `json:"items"`
}

// Brand is one marketplace brand reference entry.
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RemoteProduct is the marketplace's live view of one product.
type RemoteProduct struct {
	Barcode   string          `json:"barcode"`
	Quantity  int             `json:"quantity"`
	SalePrice decimal.Decimal `json:"salePrice"`
	ListPrice decimal.Decimal `json:"listPrice"`
	Archived  bool            `json:"archived"`
	OnSale    bool            `json:"onSale"`
}

// CreateProducts submits new products and returns the batch request id.
func (c *Client) CreateProducts(ctx context.Context, items []ProductPayload) (string, error) {
	return c.submitBatch(ctx, http.MethodPost, c.supplierPath("/v2/products"), map[string]any{"items": items})
}

// UpdatePriceAndInventory submits price and stock changes and returns
// the batch request id.
func (c *Client) UpdatePriceAndInventory(ctx context.Context, items []InventoryItem) (string, error) {
	return c.submitBatch(
		ctx,
		http.MethodPost,
		c.supplierPath("/products/price-and-inventory"),
		map[string]any{"items": items},
	)
}

// DeleteProducts requests deletion of products by barcode and returns
// the batch request id. Products still on sale are rejected by the
// marketplace with a failure reason asking for archiving first.
func (c *Client) DeleteProducts(ctx context.Context, barcodes []string) (string, error) {
	items := make([]map[string]string, 0, len(barcodes))
	for _, barcode := range barcodes {
		items = append(items, map[string]string{"barcode": barcode})
	}
	return c.submitBatch(ctx, http.MethodDelete, c.supplierPath("/v2/products"), map[string]any{"items": items})
}

// SetArchived flips the archive state of products by barcode and
// returns the batch request id.
func (c *Client) SetArchived(ctx context.Context, barcodes []string, archived bool) (string, error) {
	items := make([]map[string]any, 0, len(barcodes))
	for _, barcode := range barcodes {
		items = append(items, map[string]any{"barcode": barcode, "archived": archived})
	}
	return c.submitBatch(
		ctx,
		http.MethodPut,
		c.supplierPath("/v2/products"),
		map[string]any{"items": items},
	)
}

// GetBatchStatus fetches the current remote state of a batch request.
func (c *Client) GetBatchStatus(ctx context.Context, batchRequestID string) (*BatchStatus, error) {
	body, status, err := c.do(ctx, http.MethodGet, c.supplierPath("/v2/products/batch-requests/"+batchRequestID), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, responseError(status, body)
	}

	var report BatchStatus
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("can't decode batch status: %w", err)
	}
	return &report, nil
}

// GetCategoryTree fetches the category tree flattened to its leaves.
func (c *Client) GetCategoryTree(ctx context.Context) ([]models.LeafCategory, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/product-categories", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, responseError(status, body)
	}

	var tree struct {
		Categories []categoryNode `json:"categories"`
	}
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("can't decode category tree: %w", err)
	}

	var leaves []models.LeafCategory
	for _, node := range tree.Categories {
		leaves = collectLeaves(node, "", leaves)
	}
	return leaves, nil
}

// GetCategoryAttributes fetches the attribute schema of one category.
func (c *Client) GetCategoryAttributes(ctx context.Context, categoryID int) ([]models.SchemaAttribute, error) {
	path := "/product-categories/" + strconv.Itoa(categoryID) + "/attributes"
	body, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, responseError(status, body)
	}

	var schema struct {
		CategoryAttributes []struct {
			Required  bool `json:"required"`
			Attribute struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"attribute"`
			AttributeValues []struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"attributeValues"`
		} `json:"categoryAttributes"`
	}
	if err := json.Unmarshal(body, &schema); err != nil {
		return nil, fmt.Errorf("can't decode category attributes: %w", err)
	}

	attributes := make([]models.SchemaAttribute, 0, len(schema.CategoryAttributes))
	for _, entry := range schema.CategoryAttributes {
		attr := models.SchemaAttribute{
			ID:       entry.Attribute.ID,
			Name:     entry.Attribute.Name,
			Required: entry.Required,
		}
		for _, value := range entry.AttributeValues {
			attr.Values = append(attr.Values, models.AttributeValue{ID: value.ID, Name: value.Name})
		}
		attributes = append(attributes, attr)
	}
	return attributes, nil
}

// SearchBrands looks up marketplace brands by name.
func (c *Client) SearchBrands(ctx context.Context, name string) ([]Brand, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/brands/by-name?name="+url.QueryEscape(name), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, responseError(status, body)
	}

	var brands []Brand
	if err := json.Unmarshal(body, &brands); err != nil {
		return nil, fmt.Errorf("can't decode brands: %w", err)
	}
	return brands, nil
}

// GetProductsByBarcodes fetches the live state of products by barcode.
// A 404 means none of the barcodes exist remotely and yields an empty
// result, not an error.
func (c *Client) GetProductsByBarcodes(ctx context.Context, barcodes []string) ([]RemoteProduct, error) {
	query := url.Values{}
	for _, barcode := range barcodes {
		query.Add("barcode", barcode)
	}
	query.Set("page", "0")
	query.Set("size", strconv.Itoa(len(barcodes)))

	body, status, err := c.do(ctx, http.MethodGet, c.supplierPath("/products")+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, responseError(status, body)
	}

	var page struct {
		Content []RemoteProduct `json:"content"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("can't decode products: %w", err)
	}
	return page.Content, nil
}

// submitBatch sends a batch payload and returns the batch request id.
func (c *Client) submitBatch(ctx context.Context, method, path string, payload any) (string, error) {
	body, status, err := c.do(ctx, method, path, payload)
	if err != nil {
		return "", err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", responseError(status, body)
	}

	var response struct {
		BatchRequestID string `json:"batchRequestId"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("can't decode batch response: %w", err)
	}
	return response.BatchRequestID, nil
}

// do performs one rate-limited API request and returns the raw
// response body and status code.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("can't acquire rate limit: %w", err)
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("can't encode request payload: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("can't build http request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("can't read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

func (c *Client) supplierPath(suffix string) string {
	return "/suppliers/" + c.sellerID + suffix
}

func responseError(status int, body []byte) error {
	detail := strings.TrimSpace(string(body))
	if len(detail) > 512 {
		detail = detail[:512]
	}
	return fmt.Errorf("status %d, body %q: %w", status, detail, ErrRequestFailed)
}

type categoryNode struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	SubCategories []categoryNode `json:"subCategories"`
}

// collectLeaves flattens the category tree keeping the full path of
// every leaf.
func collectLeaves(node categoryNode, parentPath string, leaves []models.LeafCategory) []models.LeafCategory {
	path := node.Name
	if parentPath != "" {
		path = parentPath + " > " + node.Name
	}

	if len(node.SubCategories) == 0 {
		return append(leaves, models.LeafCategory{ID: node.ID, Name: node.Name, Path: path})
	}

	for _, sub := range node.SubCategories {
		leaves = collectLeaves(sub, path, leaves)
	}
	return leaves
}
