package server

import (
	"fmt"
	"net/http"
	"time"

	"retail-concierge/internal/assistant"
	"retail-concierge/internal/catalog"
	"retail-concierge/internal/config"
	"retail-concierge/internal/kvstore"
	custommiddleware "retail-concierge/internal/middleware"
	"retail-concierge/internal/profile"
	"retail-concierge/internal/recommend"
	"retail-concierge/internal/service"
	"retail-concierge/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

// NewServer wires services, handlers and middleware into an HTTP server.
// The Redis client is optional: without it the kv store is in-memory and
// rate limiting is disabled.
func NewServer(cfg *config.Config, logger *zap.Logger, cat *catalog.Catalog, profiles profile.Store, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			KeyPrefix:         "ratelimit",
		}, logger))
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Shared kv store for transactions and chat history
	var store kvstore.Store
	if redisClient != nil {
		store = kvstore.NewRedisStore(redisClient, "concierge", 24*time.Hour)
	} else {
		store = kvstore.NewMemoryStore()
	}

	// Initialize services
	engine := recommend.NewEngine(engineConfig(cfg.Recommend))
	recommender := recommend.NewService(cat, profiles, engine)
	inventory := service.NewInventoryService(cfg.Inventory.LowStockThreshold)
	fulfillment := service.NewFulfillmentService()
	payments := service.NewPaymentService(store)
	loyalty := service.NewLoyaltyService()
	orders := service.NewOrderService()

	// The assistant degrades to 503 when no LLM backend is configured.
	var model assistant.ChatModel
	if cfg.LLM.Enabled() {
		model = assistant.NewOpenAIModel(cfg.LLM)
	}
	toolbox := assistant.NewToolbox(recommender, inventory, fulfillment, payments, loyalty, orders)
	orchestrator := assistant.NewOrchestrator(model, toolbox, store, logger)

	// Register routes
	transport.NewRecommendationHandler(recommender, cfg.Recommend.DefaultCount, logger).RegisterRoutes(router)
	transport.NewInventoryHandler(inventory, logger).RegisterRoutes(router)
	transport.NewFulfillmentHandler(fulfillment, logger).RegisterRoutes(router)
	transport.NewPaymentHandler(payments, logger).RegisterRoutes(router)
	transport.NewLoyaltyHandler(loyalty, logger).RegisterRoutes(router)
	transport.NewOrderHandler(orders, logger).RegisterRoutes(router)
	transport.NewAssistantHandler(orchestrator, logger).RegisterRoutes(router)

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}
}

// engineConfig maps external configuration onto the scoring rule table.
func engineConfig(cfg config.RecommendConfig) recommend.Config {
	engineCfg := recommend.DefaultConfig()
	if cfg.BundleDiscountPercent > 0 {
		engineCfg.BundleDiscountPercent = cfg.BundleDiscountPercent
	}
	if len(cfg.SaleMonths) > 0 {
		months := make(map[time.Month]bool, len(cfg.SaleMonths))
		for _, m := range cfg.SaleMonths {
			if m >= 1 && m <= 12 {
				months[time.Month(m)] = true
			}
		}
		engineCfg.SaleMonths = months
	}
	return engineCfg
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
