package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"constituency_site/auth"
	"constituency_site/config"
	"constituency_site/handlers"
	"constituency_site/middleware"
	"constituency_site/store"

	applog "constituency_site/logger"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		// Not fatal: the store stays unavailable, the API keeps serving.
		os.Stderr.WriteString("warning: " + err.Error() + "\n")
	}

	logger, err := applog.New(config.GetLogLevel(), config.GetLogFormat())
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting constituency backend", zap.String("port", config.GetPort()))

	// A failed store connection is surfaced, not fatal: every persistence
	// operation then reports the store as unavailable while the rest of
	// the API keeps running.
	if err := config.ConnectWithRetry(3); err != nil {
		logger.Error("record store unavailable", zap.Error(err))
	}
	defer config.CloseDB()

	config.InitCache()

	recordStore := store.NewMongoStore(config.MongoDB, config.GetMongoCollection())
	gate := auth.NewStaticGate()
	sessions := auth.NewSessionManager(config.GetSessionTTL())
	handlers.Init(recordStore, gate, sessions, logger)

	r := mux.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"Origin",
		},
		MaxAge: 86400,
	})

	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(corsHandler.Handler)

	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api)

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + config.GetPort(),
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutdown signal received")
	case err := <-serverErrors:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown", zap.Error(err))
	} else {
		logger.Info("server shutdown completed")
	}
}

func registerRoutes(api *mux.Router) {
	// Entry form: ungated, like the original data-entry page.
	api.HandleFunc("/records", handlers.CreateRecord).Methods("POST", "OPTIONS")
	api.HandleFunc("/records/{id}", handlers.UpdateRecord).Methods("PUT", "OPTIONS")

	// Location registry
	api.HandleFunc("/locations/blocks", handlers.GetBlocks).Methods("GET")
	api.HandleFunc("/locations/panchayats", handlers.GetPanchayats).Methods("GET")
	api.HandleFunc("/locations/panchayats/suggest", handlers.GetPanchayatSuggestions).Methods("GET")

	// Access gate
	api.HandleFunc("/auth/login", handlers.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/logout", handlers.Logout).Methods("POST", "OPTIONS")

	// Data view and exports: behind the shared-password session gate.
	view := api.NewRoute().Subrouter()
	view.Use(middleware.RequireSession(handlers.Sessions()))
	view.HandleFunc("/records/search", handlers.SearchRecords).Methods("POST", "OPTIONS")
	view.HandleFunc("/records/{id}", handlers.DeleteRecord).Methods("DELETE", "OPTIONS")
	view.HandleFunc("/export/csv", handlers.ExportCSV).Methods("GET")
	view.HandleFunc("/export/pdf", handlers.ExportPDF).Methods("GET")
	view.HandleFunc("/export/excel", handlers.ExportExcel).Methods("GET")

	// Health check
	api.HandleFunc("/health", handlers.Health).Methods("GET")
}
