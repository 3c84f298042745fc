package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrivera/CaseVaultBot_Go/internal/cases"
	"github.com/mrivera/CaseVaultBot_Go/internal/database"
	"github.com/mrivera/CaseVaultBot_Go/internal/handler"
	"github.com/mrivera/CaseVaultBot_Go/internal/inventory"
	"github.com/mrivera/CaseVaultBot_Go/internal/ledger"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/market"
	"github.com/mrivera/CaseVaultBot_Go/internal/metrics"
	"github.com/mrivera/CaseVaultBot_Go/internal/reward"
)

type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	casesService     cases.Service
	marketService    market.Service
	ledgerService    ledger.Service
	inventoryService inventory.Service
	rewardService    reward.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, casesService cases.Service, marketService market.Service, ledgerService ledger.Service, inventoryService inventory.Service, rewardService reward.Service) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cases", func(r chi.Router) {
			r.Post("/open", handler.HandleOpenCase(casesService))
			r.Post("/grant", handler.HandleGrantCase(casesService))
			r.Post("/grant-key", handler.HandleGrantKey(casesService))
			r.Get("/user", handler.HandleGetUserCases(casesService))
			r.Get("/keys", handler.HandleGetUserKeys(casesService))
			r.Get("/catalog", handler.HandleGetAvailableCases(casesService))
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/", handler.HandleGetShop(casesService))
			r.Post("/buy", handler.HandleShopBuy(casesService))
		})

		r.Route("/market", func(r chi.Router) {
			r.Post("/listings", handler.HandleListItem(marketService))
			r.Post("/listings/{listingID}/buy", handler.HandleBuyItem(marketService))
			r.Post("/listings/{listingID}/cancel", handler.HandleCancelListing(marketService))
			r.Get("/browse", handler.HandleBrowseMarket(marketService))
			r.Get("/mine", handler.HandleGetUserListings(marketService))
			r.Get("/stats", handler.HandleGetMarketStats(marketService))
		})

		r.Route("/economy", func(r chi.Router) {
			r.Get("/profile", handler.HandleGetProfile(ledgerService))
			r.Post("/transfer", handler.HandleTransfer(ledgerService))
			r.Get("/leaderboard", handler.HandleGetLeaderboard(ledgerService))
			r.Get("/history", handler.HandleGetHistory(ledgerService))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handler.HandleGetInventory(inventoryService))
			r.Get("/stats", handler.HandleGetInventoryStats(inventoryService))
			r.Get("/{itemID}", handler.HandleGetItem(inventoryService))
			r.Post("/{itemID}/recycle", handler.HandleRecycleItem(inventoryService))
		})

		r.Route("/daily", func(r chi.Router) {
			r.Post("/claim", handler.HandleClaimDaily(rewardService))
			r.Get("/status", handler.HandleDailyStatus(rewardService))
		})

		r.Route("/rewards", func(r chi.Router) {
			r.Post("/starter-pack", handler.HandleStarterPack(rewardService))
			r.Post("/vote", handler.HandleVoteReward(rewardService))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:           dbPool,
		casesService:     casesService,
		marketService:    marketService,
		ledgerService:    ledgerService,
		inventoryService: inventoryService,
		rewardService:    rewardService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics.
		// HasPrefix catches variations like /healthz/
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
