package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOMANS/tourer-backend/internal/auth"
	"github.com/SHOMANS/tourer-backend/internal/config"
	"github.com/SHOMANS/tourer-backend/internal/middleware"
	"github.com/SHOMANS/tourer-backend/internal/models"
	"github.com/SHOMANS/tourer-backend/internal/service"
)

// In-memory stores backing the handler tests

type memPackageStore struct {
	packages map[string]*models.Package
	nextID   int
}

func (m *memPackageStore) Create(_ context.Context, pkg *models.Package) error {
	m.nextID++
	pkg.ID = fmt.Sprintf("pkg-%d", m.nextID)
	m.packages[pkg.ID] = pkg
	return nil
}

func (m *memPackageStore) GetByID(_ context.Context, id string) (*models.Package, error) {
	return m.packages[id], nil
}

func (m *memPackageStore) GetBySlug(_ context.Context, slug string) (*models.Package, error) {
	for _, pkg := range m.packages {
		if pkg.Slug == slug {
			return pkg, nil
		}
	}
	return nil, nil
}

func (m *memPackageStore) List(_ context.Context, _ *models.PackageListQuery, _ []string) ([]models.Package, int, error) {
	var out []models.Package
	for _, pkg := range m.packages {
		if pkg.IsActive {
			out = append(out, *pkg)
		}
	}
	return out, len(out), nil
}

func (m *memPackageStore) Update(_ context.Context, pkg *models.Package) error {
	m.packages[pkg.ID] = pkg
	return nil
}

func (m *memPackageStore) SoftDelete(_ context.Context, id string) error {
	if pkg, ok := m.packages[id]; ok {
		pkg.IsActive = false
	}
	return nil
}

func (m *memPackageStore) Categories(context.Context) ([]string, error) {
	return []string{"city"}, nil
}

func (m *memPackageStore) Popular(_ context.Context, _ int) ([]models.Package, error) {
	var out []models.Package
	for _, pkg := range m.packages {
		out = append(out, *pkg)
	}
	return out, nil
}

func (m *memPackageStore) RecalculateRating(context.Context, string) error { return nil }

type memBookingStore struct {
	bookings map[string]*models.Booking
	nextID   int
}

func (m *memBookingStore) Create(_ context.Context, b *models.Booking) error {
	m.nextID++
	b.ID = fmt.Sprintf("bk-%d", m.nextID)
	m.bookings[b.ID] = b
	return nil
}

func (m *memBookingStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	return m.bookings[id], nil
}

func (m *memBookingStore) List(_ context.Context, q *models.BookingListQuery) ([]models.Booking, int, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if q.UserID != "" && b.UserID != q.UserID {
			continue
		}
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (m *memBookingStore) Update(_ context.Context, b *models.Booking) error {
	m.bookings[b.ID] = b
	return nil
}

func (m *memBookingStore) Delete(_ context.Context, id string) error {
	delete(m.bookings, id)
	return nil
}

func (m *memBookingStore) Stats(context.Context) (*models.BookingStats, error) {
	return &models.BookingStats{TotalBookings: len(m.bookings)}, nil
}

type testEnv struct {
	router   *gin.Engine
	tokens   *auth.TokenManager
	packages *memPackageStore
	bookings *memBookingStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	packages := &memPackageStore{packages: map[string]*models.Package{}}
	bookings := &memBookingStore{bookings: map[string]*models.Booking{}}
	tokens := auth.NewTokenManager("test-secret", 15*time.Minute, 24*time.Hour)

	services := &service.Services{
		Packages: service.NewPackageService(packages, nil, nil),
		Bookings: service.NewBookingService(bookings, packages, nil),
	}
	h := New(services, config.UploadConfig{Dir: t.TempDir(), MaxSizeMB: 5, PublicPath: "/uploads"})

	router := gin.New()
	api := router.Group("/api")

	pkgGroup := api.Group("/packages")
	pkgGroup.GET("", h.ListPackages)
	pkgGroup.GET("/:id", h.GetPackage)
	pkgGroup.POST("", middleware.RequireAdmin(tokens), h.CreatePackage)
	pkgGroup.DELETE("/:id", middleware.RequireAdmin(tokens), h.DeletePackage)

	bkGroup := api.Group("/bookings", middleware.RequireAuth(tokens))
	bkGroup.POST("", h.CreateBooking)
	bkGroup.GET("/:id", h.GetBooking)
	bkGroup.POST("/:id/cancel", h.CancelBooking)

	return &testEnv{router: router, tokens: tokens, packages: packages, bookings: bookings}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) userToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.tokens.GenerateAccessToken(userID, userID+"@example.com", models.RoleUser)
	require.NoError(t, err)
	return token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, err := e.tokens.GenerateAccessToken("admin-1", "admin@example.com", models.RoleAdmin)
	require.NoError(t, err)
	return token
}

func (e *testEnv) seedPackage(t *testing.T) *models.Package {
	t.Helper()
	max := 10
	pkg := &models.Package{
		Title:        "City Tour",
		Slug:         "city-tour",
		Price:        100,
		Currency:     "USD",
		Duration:     3,
		MaxGuests:    &max,
		LocationName: "Istanbul",
		IsActive:     true,
		IsAvailable:  true,
	}
	require.NoError(t, e.packages.Create(context.Background(), pkg))
	return pkg
}

func TestGetPackageNotFoundStatus(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/packages/missing", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestListPackagesOK(t *testing.T) {
	env := newTestEnv(t)
	env.seedPackage(t)

	w := env.request(t, http.MethodGet, "/api/packages", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PackageListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.Pagination.Total)
}

func TestCreatePackageRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	body := models.CreatePackageRequest{
		Title:        "City Tour",
		Price:        100,
		Duration:     3,
		LocationName: "Istanbul",
	}

	w := env.request(t, http.MethodPost, "/api/packages", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodPost, "/api/packages", env.userToken(t, "user-1"), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPost, "/api/packages", env.adminToken(t), body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreatePackageValidation(t *testing.T) {
	env := newTestEnv(t)

	// missing required fields fails binding
	w := env.request(t, http.MethodPost, "/api/packages", env.adminToken(t), gin.H{"title": "no price"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.seedPackage(t)
	token := env.userToken(t, "user-1")

	body := models.CreateBookingRequest{
		PackageID:  pkg.ID,
		StartDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		GuestNames: []string{"Ada", "Grace"},
	}

	w := env.request(t, http.MethodPost, "/api/bookings", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, 200.0, booking.TotalPrice)
	assert.Equal(t, models.BookingPending, booking.Status)

	// another user cannot read it
	w = env.request(t, http.MethodGet, "/api/bookings/"+booking.ID, env.userToken(t, "user-2"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the owner cancels it
	w = env.request(t, http.MethodPost, "/api/bookings/"+booking.ID+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cancelled models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
}

func TestCreateBookingUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/bookings", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
