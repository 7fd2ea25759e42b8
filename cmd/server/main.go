package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"nwfpay/internal/domain/auth"
	"nwfpay/internal/domain/document"
	"nwfpay/internal/domain/payroll"
	"nwfpay/internal/platform/chrome"
	"nwfpay/internal/platform/config"
	cryptoutil "nwfpay/internal/platform/crypto"
	"nwfpay/internal/platform/db"
	"nwfpay/internal/platform/email"
	"nwfpay/internal/platform/metrics"
	"nwfpay/internal/transport/http/api"
	authhandler "nwfpay/internal/transport/http/handlers/auth"
	employeeshandler "nwfpay/internal/transport/http/handlers/employees"
	payrollhandler "nwfpay/internal/transport/http/handlers/payroll"
	reportshandler "nwfpay/internal/transport/http/handlers/reports"
	"nwfpay/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logLevel := slog.LevelInfo
	if cfg.Environment == "development" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	encryption, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Fatalf("data encryption key: %v", err)
	}

	renderers := map[string]payroll.Renderer{
		payroll.FormatPDF: document.NewPDFRenderer(),
	}
	if cfg.ChromeEnabled {
		renderers[payroll.FormatHTML] = document.NewHTMLRenderer(chrome.New(cfg.ChromeTimeout))
	}

	collector := metrics.New()
	store := payroll.NewStore(pool)
	service := payroll.NewService(store, renderers, document.NewCertifier(),
		email.New(cfg), encryption, collector,
		payroll.EmployerBlock{Name: cfg.CompanyName, AddressLines: cfg.CompanyAddress},
		cfg.ArtifactDir)

	authHandler := authhandler.NewHandler(auth.NewStore(pool), cfg.JWTSecret)
	employeesHandler := employeeshandler.NewHandler(store)
	payrollHandler := payrollhandler.NewHandler(service)
	reportsHandler := reportshandler.NewHandler(store)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Get("/verify/{code}", payrollHandler.HandleVerify)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			employeesHandler.RegisterRoutes(r)
			payrollHandler.RegisterRoutes(r)
			reportsHandler.RegisterRoutes(r)
			r.Get("/admin/metrics", func(w http.ResponseWriter, req *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(req.Context()))
			})
		})
	})

	slog.Info("payroll server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
