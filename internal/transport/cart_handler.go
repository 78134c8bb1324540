package transport

import (
	"errors"
	"fmt"
	"net/http"

	"headless-express/internal/cart"
	"headless-express/internal/catalog"
	"headless-express/internal/domain"
	"headless-express/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest puts a variant into the cart. The product is resolved by slug
// through the catalog so the cart stores a fresh snapshot of it.
type AddItemRequest struct {
	Slug      string `json:"slug" validate:"required"`
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

// UpdateItemRequest sets the quantity of an existing cart line. A quantity of
// zero or less removes the line.
type UpdateItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// SetOpenRequest sets the cart drawer visibility flag.
type SetOpenRequest struct {
	Open bool `json:"open"`
}

// CartView is the full cart state returned after every read and mutation.
type CartView struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
	Open  bool              `json:"open"`
}

// CheckoutResponse confirms the demo checkout.
type CheckoutResponse struct {
	Message   string  `json:"message"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

// NotificationsResponse carries the drained notification feed.
type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	store   *cart.Store
	catalog CatalogService
	feed    *cart.Feed
	logger  *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(store *cart.Store, catalogService CatalogService, feed *cart.Feed, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: catalogService,
		feed:    feed,
		logger:  logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items", h.UpdateItem)
		r.Delete("/items", h.RemoveItem)
		r.Put("/open", h.SetOpen)
	})
	r.Post("/api/checkout", h.Checkout)
	r.Get("/api/notifications", h.Notifications)
}

func (h *CartHandler) view() CartView {
	return CartView{
		Items: h.store.Items(),
		Count: h.store.Count(),
		Total: h.store.Total(),
		Open:  h.store.IsOpen(),
	}
}

// GetCart returns the current cart state
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.view())
}

// AddItem resolves a product by slug and adds the chosen variant to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.GetProductBySlug(r.Context(), req.Slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to resolve product for cart add", zap.String("slug", req.Slug), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	variant, ok := product.VariantByID(req.VariantID)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("product %q has no variant %q", req.Slug, req.VariantID))
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	h.store.Add(*product, variant, quantity)
	middleware.RespondWithJSON(w, http.StatusOK, h.view())
}

// UpdateItem sets the quantity of an existing cart line
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.store.UpdateQuantity(req.ProductID, req.VariantID, req.Quantity)
	middleware.RespondWithJSON(w, http.StatusOK, h.view())
}

// RemoveItem deletes a cart line identified by query parameters
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	variantID := r.URL.Query().Get("variant_id")
	if productID == "" || variantID == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "product_id and variant_id are required")
		return
	}

	h.store.Remove(productID, variantID)
	middleware.RespondWithJSON(w, http.StatusOK, h.view())
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	middleware.RespondWithJSON(w, http.StatusOK, h.view())
}

// SetOpen sets the cart drawer visibility flag
func (h *CartHandler) SetOpen(w http.ResponseWriter, r *http.Request) {
	var req SetOpenRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.store.SetOpen(req.Open)
	middleware.RespondWithJSON(w, http.StatusOK, h.view())
}

// Checkout is the demo checkout: it snapshots the totals and clears the cart
// in one atomic store operation, then confirms. No payment or order is created.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	count, total := h.store.Checkout()
	if count == 0 {
		middleware.RespondWithError(w, http.StatusConflict, "cart is empty")
		return
	}

	h.logger.Info("Demo checkout completed", zap.Int("item_count", count), zap.Float64("total", total))
	middleware.RespondWithJSON(w, http.StatusOK, CheckoutResponse{
		Message:   "Order Placed (Demo)! Thank you for your purchase.",
		ItemCount: count,
		Total:     total,
	})
}

// Notifications drains and returns the buffered notification feed
func (h *CartHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, NotificationsResponse{Notifications: h.feed.Drain()})
}
