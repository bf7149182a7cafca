package trendyol_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marketfeed/trendyol-sync/internal/trendyol"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *trendyol.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return trendyol.NewClient(server.Client(), trendyol.Config{
		SellerID:  "12345",
		APIKey:    "key",
		APISecret: "secret",
		BaseURL:   server.URL,
	})
}

func TestUpdatePriceAndInventory(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/suppliers/12345/products/price-and-inventory", r.URL.Path)

		expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:secret"))
		assert.Equal(t, expectedAuth, r.Header.Get("Authorization"))
		assert.Equal(t, "12345 - SelfIntegration", r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(`{"batchRequestId":"batch-1"}`))
	})

	batchID, err := client.UpdatePriceAndInventory(context.Background(), []trendyol.InventoryItem{
		{Barcode: "869", Quantity: 5, SalePrice: decimal.NewFromFloat(99.99), ListPrice: decimal.NewFromFloat(99.99)},
	})

	require.NoError(t, err)
	assert.Equal(t, "batch-1", batchID)
}

func TestSubmitBatchRequestFailed(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"message":"invalid barcode"}]}`))
	})

	_, err := client.DeleteProducts(context.Background(), []string{"bad"})

	require.ErrorIs(t, err, trendyol.ErrRequestFailed)
	assert.ErrorContains(t, err, "invalid barcode")
}

func TestGetBatchStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suppliers/12345/v2/products/batch-requests/batch-7", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"batchRequestId": "batch-7",
			"status": "FAILED",
			"itemCount": 2,
			"failedItemCount": 1,
			"items": [
				{"barcode": "869", "status": "FAILED", "failureReasons": ["Ürünü silmek için önce arşivleyin"]}
			]
		}`))
	})

	status, err := client.GetBatchStatus(context.Background(), "batch-7")

	require.NoError(t, err)
	assert.Equal(t, "FAILED", status.Status)
	assert.Equal(t, 1, status.FailedItemCount)
	require.Len(t, status.Items, 1)
	assert.Equal(t, "869", status.Items[0].Barcode)
}

func TestGetCategoryTree(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product-categories", r.URL.Path)
		_, _ = w.Write([]byte(`{"categories":[
			{"id":1,"name":"Ev","subCategories":[
				{"id":2,"name":"Temizlik","subCategories":[
					{"id":3,"name":"Deterjan","subCategories":[]}
				]}
			]}
		]}`))
	})

	leaves, err := client.GetCategoryTree(context.Background())

	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, 3, leaves[0].ID)
	assert.Equal(t, "Deterjan", leaves[0].Name)
	assert.Equal(t, "Ev > Temizlik > Deterjan", leaves[0].Path)
}

func TestGetCategoryAttributes(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product-categories/3/attributes", r.URL.Path)
		_, _ = w.Write([]byte(`{"categoryAttributes":[
			{
				"required": true,
				"attribute": {"id": 10, "name": "Renk"},
				"attributeValues": [{"id": 100, "name": "Mavi"}]
			}
		]}`))
	})

	attributes, err := client.GetCategoryAttributes(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, attributes, 1)
	assert.Equal(t, 10, attributes[0].ID)
	assert.True(t, attributes[0].Required)
	require.Len(t, attributes[0].Values, 1)
	assert.Equal(t, 100, attributes[0].Values[0].ID)
}

func TestGetProductsByBarcodesNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	products, err := client.GetProductsByBarcodes(context.Background(), []string{"nope"})

	require.NoError(t, err)
	assert.Empty(t, products)
}
