package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"milonga/config"
	"milonga/db"
	"milonga/globals"
	"milonga/notices"
	"milonga/pay"
	"milonga/ratelim"
	"milonga/rdx"
	"milonga/routes"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// XSS, content sniffing, framing
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		// HSTS (must be on HTTPS)
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		// Referrer and permissions
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.RequestURI,
			"remote":   r.RemoteAddr,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(cfg *config.Config, rateLimiter *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	payHandlers := pay.NewHandlers(cfg)

	routes.AddAuthRoutes(router, rateLimiter)
	routes.AddEventRoutes(router)
	routes.AddNoticeRoutes(router)
	routes.AddInfoPageRoutes(router)
	routes.AddCatalogRoutes(router)
	routes.AddPaymentRoutes(router, payHandlers, rateLimiter)
	routes.AddAccessRoutes(router)
	routes.AddPurchaseRoutes(router)

	// Module images and thumbnails.
	router.ServeFiles("/modulepic/*filepath", http.Dir("static/modulepic"))

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found; using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	globals.JwtSecret = []byte(cfg.JWTSecret)

	if err := db.Init(cfg.MongoURI, cfg.MongoDB); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	rdx.Init(cfg.RedisAddr)

	port := cfg.Port
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure database indexes: %v", err)
	}

	notices.StartRetentionWorker(ctx)

	// 10 req/s per IP with a small burst; login and payment creation share it.
	rateLimiter := ratelim.NewRateLimiter(10, 20)

	router := setupRouter(cfg, rateLimiter)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Infof("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received; shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	if err := db.Client.Disconnect(shutdownCtx); err != nil {
		log.Warnf("Failed to disconnect database: %v", err)
	}

	log.Info("Server stopped cleanly")
}
