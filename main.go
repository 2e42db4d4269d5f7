package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/uveral/agendapsico/internal/api"
	"github.com/uveral/agendapsico/internal/auth"
	"github.com/uveral/agendapsico/internal/cache"
	"github.com/uveral/agendapsico/internal/config"
	"github.com/uveral/agendapsico/internal/email"
	"github.com/uveral/agendapsico/internal/middleware"
	"github.com/uveral/agendapsico/internal/repo"
	"github.com/uveral/agendapsico/internal/seed"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("postgres connection: %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("postgres pool: %v", err)
		}
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		defer sqlDB.Close()
		if err := sqlDB.Ping(); err != nil {
			log.Fatalf("postgres ping: %v", err)
		}
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		if err := seed.Run(context.Background(), db); err != nil {
			log.Printf("seed (ignored if already applied): %v", err)
		}
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"no database"}`))
			return
		}
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"db unhealthy"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	h := &api.Handler{DB: db, Cfg: cfg, Cache: cache.New(30 * time.Second)}
	h.SetHashPassword(auth.HashPassword)
	if cfg.AppPublicURL != "" {
		mailCfg := &email.Config{
			Host:     cfg.SMTPHost,
			Port:     email.PortFromString(cfg.SMTPPort),
			User:     cfg.SMTPUser,
			Pass:     cfg.SMTPPass,
			FromName: cfg.SMTPFromName,
			FromAddr: cfg.SMTPFromEmail,
		}
		mailCfg.LogConfigSummary()
		h.SetSendWelcomeEmail(func(to, fullName, tempPassword string) error {
			return mailCfg.SendWelcome(to, fullName, tempPassword, cfg.AppPublicURL)
		})
	} else {
		log.Printf("[email] APP_PUBLIC_URL empty, welcome emails disabled; temporary passwords are returned to the admin instead")
	}

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.RequireAuthMiddleware(cfg.JWTSecret))
	protected.HandleFunc("/me", h.Me).Methods(http.MethodGet)
	protected.HandleFunc("/me/password", h.ChangeMyPassword).Methods(http.MethodPost)
	protected.HandleFunc("/therapists", h.ListTherapists).Methods(http.MethodGet)
	protected.Handle("/therapists", middleware.RequireAdmin(http.HandlerFunc(h.CreateTherapist))).Methods(http.MethodPost)
	protected.HandleFunc("/therapists/{id}", h.GetTherapist).Methods(http.MethodGet)
	protected.Handle("/therapists/{id}", middleware.RequireAdmin(http.HandlerFunc(h.PatchTherapist))).Methods(http.MethodPatch)
	protected.Handle("/therapists/{id}", middleware.RequireAdmin(http.HandlerFunc(h.DeleteTherapist))).Methods(http.MethodDelete)
	protected.HandleFunc("/therapists/{id}/working-hours", h.GetWorkingHours).Methods(http.MethodGet)
	protected.HandleFunc("/therapists/{id}/working-hours", h.ReplaceWorkingHours).Methods(http.MethodPut)
	protected.HandleFunc("/therapists/{id}/stats", h.TherapistWeeklyStats).Methods(http.MethodGet)
	protected.HandleFunc("/therapists/{id}/available-slots", h.TherapistAvailableSlots).Methods(http.MethodGet)
	protected.HandleFunc("/clients", h.ListClients).Methods(http.MethodGet)
	protected.HandleFunc("/clients", h.CreateClient).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{id}", h.GetClient).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{id}", h.PatchClient).Methods(http.MethodPatch)
	protected.Handle("/clients/{id}", middleware.RequireAdmin(http.HandlerFunc(h.DeleteClient))).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments", h.ListAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", h.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}", h.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", h.PatchAppointment).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}", h.DeleteAppointment).Methods(http.MethodDelete)
	protected.HandleFunc("/settings", h.GetSettings).Methods(http.MethodGet)
	protected.HandleFunc("/settings", h.UpdateSettings).Methods(http.MethodPut)

	chain := middleware.Recover(middleware.RequestID(middleware.Timeout(cfg.RequestTimeoutSec)(middleware.CORS(cfg.CORSOrigins)(middleware.Gzip(r)))))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      chain,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("backend listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("backend stopped")
}
