package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

type fakePackageStore struct {
	packages     map[string]*models.Package
	nextID       int
	slugTaken    bool
	recalculated []string
}

func newFakePackageStore() *fakePackageStore {
	return &fakePackageStore{packages: map[string]*models.Package{}}
}

func (f *fakePackageStore) Create(_ context.Context, pkg *models.Package) error {
	if f.slugTaken {
		return &pq.Error{Code: "23505"}
	}
	f.nextID++
	pkg.ID = fmt.Sprintf("pkg-%d", f.nextID)
	f.packages[pkg.ID] = pkg
	return nil
}

func (f *fakePackageStore) GetByID(_ context.Context, id string) (*models.Package, error) {
	return f.packages[id], nil
}

func (f *fakePackageStore) GetBySlug(_ context.Context, slug string) (*models.Package, error) {
	for _, pkg := range f.packages {
		if pkg.Slug == slug {
			return pkg, nil
		}
	}
	return nil, nil
}

func (f *fakePackageStore) List(_ context.Context, _ *models.PackageListQuery, idFilter []string) ([]models.Package, int, error) {
	var out []models.Package
	for _, pkg := range f.packages {
		if idFilter != nil && !contains(idFilter, pkg.ID) {
			continue
		}
		out = append(out, *pkg)
	}
	return out, len(out), nil
}

func (f *fakePackageStore) Update(_ context.Context, pkg *models.Package) error {
	f.packages[pkg.ID] = pkg
	return nil
}

func (f *fakePackageStore) SoftDelete(_ context.Context, id string) error {
	if pkg, ok := f.packages[id]; ok {
		pkg.IsActive = false
	}
	return nil
}

func (f *fakePackageStore) Categories(context.Context) ([]string, error) { return nil, nil }

func (f *fakePackageStore) Popular(_ context.Context, limit int) ([]models.Package, error) {
	var out []models.Package
	for _, pkg := range f.packages {
		if len(out) == limit {
			break
		}
		out = append(out, *pkg)
	}
	return out, nil
}

func (f *fakePackageStore) RecalculateRating(_ context.Context, packageID string) error {
	f.recalculated = append(f.recalculated, packageID)
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"City Tour!!", "city-tour"},
		{"Cappadocia Balloon Adventure", "cappadocia-balloon-adventure"},
		{"  spaces  everywhere  ", "spaces-everywhere"},
		{"Déjà Vu 2024", "déjà-vu-2024"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateSlug(tt.title), "title %q", tt.title)
	}
}

func TestCreatePackageDefaults(t *testing.T) {
	store := newFakePackageStore()
	svc := NewPackageService(store, nil, nil)

	pkg, err := svc.Create(context.Background(), &models.CreatePackageRequest{
		Title:        "City Tour!!",
		Price:        100,
		Duration:     3,
		LocationName: "Istanbul",
	})
	require.NoError(t, err)

	assert.Equal(t, "city-tour", pkg.Slug)
	assert.Equal(t, "USD", pkg.Currency)
	assert.True(t, pkg.IsActive)
	assert.True(t, pkg.IsAvailable)
}

func TestCreatePackageSlugConflict(t *testing.T) {
	store := newFakePackageStore()
	store.slugTaken = true
	svc := NewPackageService(store, nil, nil)

	_, err := svc.Create(context.Background(), &models.CreatePackageRequest{
		Title:        "City Tour",
		Price:        100,
		Duration:     3,
		LocationName: "Istanbul",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreatePackageEmptySlug(t *testing.T) {
	svc := NewPackageService(newFakePackageStore(), nil, nil)

	_, err := svc.Create(context.Background(), &models.CreatePackageRequest{
		Title:        "!!!",
		Price:        100,
		Duration:     3,
		LocationName: "Istanbul",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUpdatePackageValidation(t *testing.T) {
	store := newFakePackageStore()
	svc := NewPackageService(store, nil, nil)

	pkg, err := svc.Create(context.Background(), &models.CreatePackageRequest{
		Title:        "City Tour",
		Price:        100,
		Duration:     3,
		LocationName: "Istanbul",
	})
	require.NoError(t, err)

	badPrice := -5.0
	_, err = svc.Update(context.Background(), pkg.ID, &models.UpdatePackageRequest{Price: &badPrice})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	badDuration := 0
	_, err = svc.Update(context.Background(), pkg.ID, &models.UpdatePackageRequest{Duration: &badDuration})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	newPrice := 150.0
	updated, err := svc.Update(context.Background(), pkg.ID, &models.UpdatePackageRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Price)
}

func TestGetPackageNotFound(t *testing.T) {
	svc := NewPackageService(newFakePackageStore(), nil, nil)

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetBySlugHidesInactive(t *testing.T) {
	store := newFakePackageStore()
	svc := NewPackageService(store, nil, nil)

	pkg, err := svc.Create(context.Background(), &models.CreatePackageRequest{
		Title:        "City Tour",
		Price:        100,
		Duration:     3,
		LocationName: "Istanbul",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), pkg.ID))

	_, err = svc.GetBySlug(context.Background(), "city-tour")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPopularClampsLimit(t *testing.T) {
	store := newFakePackageStore()
	svc := NewPackageService(store, nil, nil)

	packages, err := svc.Popular(context.Background(), -3)
	require.NoError(t, err)
	assert.NotNil(t, packages)
}
