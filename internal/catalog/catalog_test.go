package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xYup1terx/routine-builder/internal/domain"
)

const testCatalogJSON = `{"products":[
	{"id":"1","name":"Revitalift Serum","brand":"L'Oréal","category":"skincare","description":"retinol night serum"},
	{"id":"2","name":"Lash Paradise","brand":"L'Oréal","category":"makeup","description":"volumizing mascara"},
	{"id":"3","name":"Elvive Shampoo","brand":"L'Oréal","category":"haircare","description":"repair shampoo"}
]}`

func TestSource_FetchesAndCaches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testCatalogJSON))
	}))
	defer srv.Close()

	src := NewSource(srv.URL)
	first, err := src.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := src.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load(), "catalog fetched once and cached")
}

func TestSource_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogJSON), 0644))

	src := NewSource(path)
	products, err := src.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, "Revitalift Serum", products[0].Name)
}

func TestSource_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewSource(srv.URL)
	_, err := src.Products(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSource_MissingProductsKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	src := NewSource(path)
	products, err := src.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFilter(t *testing.T) {
	products := []domain.Product{
		{Name: "Revitalift Serum", Brand: "L'Oréal", Category: "skincare", Description: "retinol"},
		{Name: "Lash Paradise", Brand: "L'Oréal", Category: "makeup", Description: "mascara"},
	}

	assert.Len(t, Filter(products, "", ""), 2)
	assert.Len(t, Filter(products, "makeup", ""), 1)
	assert.Len(t, Filter(products, "makeup", "serum"), 0)

	byDesc := Filter(products, "", "RETINOL")
	require.Len(t, byDesc, 1)
	assert.Equal(t, "Revitalift Serum", byDesc[0].Name)
}

func TestCategories(t *testing.T) {
	products := []domain.Product{
		{Name: "a", Category: "skincare"},
		{Name: "b", Category: "makeup"},
		{Name: "c", Category: "skincare"},
		{Name: "d"},
	}
	assert.Equal(t, []string{"makeup", "skincare"}, Categories(products))
}
