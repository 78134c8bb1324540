package transport

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"headless-express/internal/catalog"
	"headless-express/internal/domain"
	"headless-express/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogService is the slice of the catalog client the handlers consume.
type CatalogService interface {
	ListProducts(ctx context.Context, opts catalog.ListOptions) (catalog.ListResult, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// ProductListResponse is one page of the catalog. Error carries the remediation
// text when the listing fell back to sample data; the products are still served.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	PageInfo domain.PageInfo  `json:"page_info"`
	Error    string           `json:"error,omitempty"`
}

// CatalogHandler handles HTTP requests for catalog reads
type CatalogHandler struct {
	catalog         CatalogService
	defaultPageSize int
	logger          *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService CatalogService, defaultPageSize int, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:         catalogService,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{slug}", h.GetProduct)
	})
}

// ListProducts handles the shop listing page's product query
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	first := h.defaultPageSize
	if raw := q.Get("first"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			middleware.RespondWithError(w, http.StatusBadRequest, "first must be a positive integer")
			return
		}
		first = parsed
	}

	availability := catalog.AvailabilityAll
	switch q.Get("availability") {
	case "", string(catalog.AvailabilityAll):
	case string(catalog.AvailabilityInStock):
		availability = catalog.AvailabilityInStock
	case string(catalog.AvailabilityOutOfStock):
		availability = catalog.AvailabilityOutOfStock
	default:
		middleware.RespondWithError(w, http.StatusBadRequest, "availability must be one of: all, in-stock, out-of-stock")
		return
	}

	opts := catalog.ListOptions{
		First:        first,
		After:        q.Get("after"),
		Query:        q.Get("q"),
		SortKey:      q.Get("sort_key"),
		Reverse:      q.Get("reverse") == "true",
		Availability: availability,
	}

	result, err := h.catalog.ListProducts(r.Context(), opts)
	if err != nil {
		h.logger.Error("Product listing failed", zap.Error(err))

		// Fallback data still renders; the error travels inline for the page
		// to show alongside it.
		if len(result.Products) > 0 {
			middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
				Products: result.Products,
				PageInfo: result.PageInfo,
				Error:    err.Error(),
			})
			return
		}

		middleware.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: result.Products,
		PageInfo: result.PageInfo,
	})
}

// GetProduct handles the product detail page's query
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalog.GetProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Product lookup failed", zap.String("slug", slug), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}
