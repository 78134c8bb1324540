package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"headless-express/internal/catalog"
	"headless-express/internal/domain"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// stubCatalog returns canned results per call.
type stubCatalog struct {
	listResult catalog.ListResult
	listErr    error
	lastOpts   catalog.ListOptions
	product    *domain.Product
	productErr error
}

func (s *stubCatalog) ListProducts(ctx context.Context, opts catalog.ListOptions) (catalog.ListResult, error) {
	s.lastOpts = opts
	return s.listResult, s.listErr
}

func (s *stubCatalog) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.product, s.productErr
}

func newCatalogRouter(stub *stubCatalog) *chi.Mux {
	router := chi.NewRouter()
	NewCatalogHandler(stub, 12, zap.NewNop()).RegisterRoutes(router)
	return router
}

func TestListProductsParsesQueryParams(t *testing.T) {
	stub := &stubCatalog{listResult: catalog.ListResult{Products: []domain.Product{}}}
	router := newCatalogRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products?first=6&q=shirt&availability=in-stock&after=cur&reverse=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastOpts.First != 6 || stub.lastOpts.Query != "shirt" || stub.lastOpts.After != "cur" || !stub.lastOpts.Reverse {
		t.Errorf("unexpected options passed through: %+v", stub.lastOpts)
	}
	if stub.lastOpts.Availability != catalog.AvailabilityInStock {
		t.Errorf("expected in-stock availability, got %q", stub.lastOpts.Availability)
	}
}

func TestListProductsDefaultsPageSize(t *testing.T) {
	stub := &stubCatalog{listResult: catalog.ListResult{Products: []domain.Product{}}}
	router := newCatalogRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if stub.lastOpts.First != 12 {
		t.Errorf("expected default page size 12, got %d", stub.lastOpts.First)
	}
}

func TestListProductsRejectsBadParams(t *testing.T) {
	stub := &stubCatalog{}
	router := newCatalogRouter(stub)

	for _, target := range []string{
		"/api/products?first=0",
		"/api/products?first=nope",
		"/api/products?availability=sometimes",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestListProductsFallbackCarriesInlineError(t *testing.T) {
	stub := &stubCatalog{
		listResult: catalog.ListResult{
			Products: []domain.Product{{ID: "p1", Name: "Classic Tee (Sample)"}},
			PageInfo: domain.PageInfo{HasNextPage: true},
		},
		listErr: fmt.Errorf("%w: credentials rejected", catalog.ErrUnauthorized),
	}
	router := newCatalogRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("fallback data must still serve with 200, got %d", rec.Code)
	}

	var resp ProductListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Products) != 1 {
		t.Errorf("expected the fallback product, got %d products", len(resp.Products))
	}
	if resp.Error == "" {
		t.Error("expected the remediation text inline with the fallback data")
	}
}

func TestListProductsErrorWithoutFallbackIs502(t *testing.T) {
	stub := &stubCatalog{listErr: fmt.Errorf("%w: throttled", catalog.ErrUpstream)}
	router := newCatalogRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestGetProduct(t *testing.T) {
	stub := &stubCatalog{product: &domain.Product{ID: "p1", Name: "Classic Tee", Slug: "classic-tee"}}
	router := newCatalogRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products/classic-tee", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var product domain.Product
	if err := json.NewDecoder(rec.Body).Decode(&product); err != nil {
		t.Fatalf("failed to decode product: %v", err)
	}
	if product.Slug != "classic-tee" {
		t.Errorf("unexpected product: %+v", product)
	}
}

func TestGetProductNotFound(t *testing.T) {
	stub := &stubCatalog{productErr: fmt.Errorf("%w: no product with slug %q", catalog.ErrNotFound, "missing")}
	router := newCatalogRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetProductUpstreamError(t *testing.T) {
	stub := &stubCatalog{productErr: fmt.Errorf("%w: boom", catalog.ErrUpstream)}
	router := newCatalogRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/products/classic-tee", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}
