//go:build integration

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/uveral/agendapsico/internal/auth"
	"github.com/uveral/agendapsico/internal/cache"
	"github.com/uveral/agendapsico/internal/config"
	"github.com/uveral/agendapsico/internal/middleware"
	"github.com/uveral/agendapsico/internal/repo"
	"github.com/uveral/agendapsico/internal/seed"
	"github.com/uveral/agendapsico/internal/testutil"
	"gorm.io/gorm"
)

func newRouterForTherapists(h *Handler, jwtSecret []byte) http.Handler {
	r := mux.NewRouter()
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.RequireAuthMiddleware(jwtSecret))
	protected.Handle("/therapists", middleware.RequireAdmin(http.HandlerFunc(h.CreateTherapist))).Methods(http.MethodPost)
	protected.HandleFunc("/therapists", h.ListTherapists).Methods(http.MethodGet)
	protected.HandleFunc("/therapists/{id}/working-hours", h.GetWorkingHours).Methods(http.MethodGet)
	protected.HandleFunc("/therapists/{id}/working-hours", h.ReplaceWorkingHours).Methods(http.MethodPut)
	protected.HandleFunc("/therapists/{id}/stats", h.TherapistWeeklyStats).Methods(http.MethodGet)
	protected.Handle("/therapists/{id}", middleware.RequireAdmin(http.HandlerFunc(h.DeleteTherapist))).Methods(http.MethodDelete)
	return middleware.RequestID(r)
}

func adminHeader(t *testing.T, ctx context.Context, db *gorm.DB, secret []byte) string {
	t.Helper()
	u, err := repo.UserByEmail(ctx, db, "admin@agendapsico.local")
	if err != nil {
		t.Fatalf("admin user: %v", err)
	}
	tok, err := auth.BuildJWT(secret, u.ID.String(), auth.RoleAdmin, false, 2*time.Hour)
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	return "Bearer " + tok
}

func TestIntegration_TherapistScheduleRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, _ := testutil.OpenDB(ctx)
	if db == nil {
		t.Skip("DATABASE_URL not set for integration tests")
		return
	}
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		defer sqlDB.Close()
	}
	if err := testutil.MustMigrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seed.Run(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := config.Load()
	h := &Handler{DB: db, Cfg: cfg, Cache: cache.New(30 * time.Second)}
	h.SetHashPassword(auth.HashPassword)
	router := newRouterForTherapists(h, cfg.JWTSecret)
	header := adminHeader(t, ctx, db, cfg.JWTSecret)

	email := fmt.Sprintf("laura.it+%s@example.com", uuid.New().String()[:8])
	body := bytes.NewReader([]byte(`{"fullName":"Laura Pérez","email":"` + email + `","specialty":"infantil"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/therapists", body)
	req.Header.Set("Authorization", header)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create therapist: status %d body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Therapist struct {
			ID string `json:"id"`
		} `json:"therapist"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	id := created.Therapist.ID

	put := bytes.NewReader([]byte(`{"workingHours":[
		{"dayOfWeek":1,"startTime":"09:00","endTime":"14:00"},
		{"dayOfWeek":2,"startTime":"16:00","endTime":"20:00"},
		{"dayOfWeek":9,"startTime":"09:00","endTime":"10:00"}
	]}`))
	req = httptest.NewRequest(http.MethodPut, "/api/therapists/"+id+"/working-hours", put)
	req.Header.Set("Authorization", header)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("put working hours: status %d body %s", rec.Code, rec.Body.String())
	}
	var wh struct {
		WorkingHours []struct {
			DayOfWeek int    `json:"dayOfWeek"`
			StartTime string `json:"startTime"`
		} `json:"workingHours"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &wh); err != nil {
		t.Fatal(err)
	}
	// the dayOfWeek 9 block is invalid and must have been skipped
	if len(wh.WorkingHours) != 2 {
		t.Fatalf("working hours: got %d blocks, want 2", len(wh.WorkingHours))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/therapists/"+id+"/stats", nil)
	req.Header.Set("Authorization", header)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: status %d body %s", rec.Code, rec.Body.String())
	}
	var stats struct {
		Occupancy    int `json:"occupancy"`
		Availability int `json:"availability"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Occupancy != 0 || stats.Availability != 100 {
		t.Fatalf("fresh schedule: occupancy=%d availability=%d, want 0/100", stats.Occupancy, stats.Availability)
	}
}

func TestIntegration_DeleteTherapistRemovesLoginAndCachedSchedule(t *testing.T) {
	ctx := context.Background()
	db, _ := testutil.OpenDB(ctx)
	if db == nil {
		t.Skip("DATABASE_URL not set for integration tests")
		return
	}
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		defer sqlDB.Close()
	}
	if err := testutil.MustMigrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seed.Run(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := config.Load()
	h := &Handler{DB: db, Cfg: cfg, Cache: cache.New(30 * time.Second)}
	h.SetHashPassword(auth.HashPassword)
	router := newRouterForTherapists(h, cfg.JWTSecret)
	header := adminHeader(t, ctx, db, cfg.JWTSecret)

	email := fmt.Sprintf("marta.it+%s@example.com", uuid.New().String()[:8])
	body := bytes.NewReader([]byte(`{"fullName":"Marta Ruiz","email":"` + email + `","specialty":"adultos"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/therapists", body)
	req.Header.Set("Authorization", header)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create therapist: status %d body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Therapist struct {
			ID string `json:"id"`
		} `json:"therapist"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	id := created.Therapist.ID
	if _, err := repo.UserByEmail(ctx, db, email); err != nil {
		t.Fatalf("linked user after create: %v", err)
	}

	// populate the working-hours cache so the delete has something to drop
	req = httptest.NewRequest(http.MethodGet, "/api/therapists/"+id+"/working-hours", nil)
	req.Header.Set("Authorization", header)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get working hours: status %d body %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/therapists/"+id, nil)
	req.Header.Set("Authorization", header)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete therapist: status %d body %s", rec.Code, rec.Body.String())
	}

	if _, err := repo.UserByEmail(ctx, db, email); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("linked user after delete: err=%v, want record not found", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/therapists/"+id+"/working-hours", nil)
	req.Header.Set("Authorization", header)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("working hours after delete: status %d, want 404 (stale cache must not answer)", rec.Code)
	}
}
