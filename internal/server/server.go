package server

import (
	"fmt"
	"net/http"
	"time"

	"headless-express/internal/cart"
	"headless-express/internal/catalog"
	"headless-express/internal/config"
	custommiddleware "headless-express/internal/middleware"
	"headless-express/internal/storage"
	"headless-express/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	slot   storage.Slot
}

func NewServer(cfg *config.Config, logger *zap.Logger, slot storage.Slot) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize the catalog client; credentials are re-read per request
	catalogClient := catalog.NewClient(config.Shopify, nil, logger)

	// Initialize the cart store with its notification fan-out
	feed := cart.NewFeed(64)
	notifier := cart.MultiNotifier{cart.NewLogNotifier(logger), feed}
	store, err := cart.NewStore(slot, cfg.Cart.SlotKey, notifier, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cart store: %w", err)
	}

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalogClient, cfg.Catalog.PageSize, logger)
	cartHandler := transport.NewCartHandler(store, catalogClient, feed, logger)

	// Register routes
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		slot:   slot,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.slot != nil {
		if err := s.slot.Close(); err != nil {
			s.logger.Error("Failed to close slot storage", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
