package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

type fakeCarouselStore struct {
	items  map[string]*models.CarouselItem
	nextID int
}

func newFakeCarouselStore() *fakeCarouselStore {
	return &fakeCarouselStore{items: map[string]*models.CarouselItem{}}
}

func (f *fakeCarouselStore) Create(_ context.Context, item *models.CarouselItem) error {
	f.nextID++
	item.ID = fmt.Sprintf("cr-%d", f.nextID)
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeCarouselStore) GetByID(_ context.Context, id string) (*models.CarouselItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (f *fakeCarouselStore) ListActive(_ context.Context) ([]models.CarouselItem, error) {
	var out []models.CarouselItem
	for _, item := range f.items {
		if item.IsActive {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeCarouselStore) ListAll(_ context.Context) ([]models.CarouselItem, error) {
	var out []models.CarouselItem
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeCarouselStore) Update(_ context.Context, item *models.CarouselItem) error {
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeCarouselStore) Delete(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func TestCreateCarouselItemDefaults(t *testing.T) {
	svc := NewCarouselService(newFakeCarouselStore(), nil)

	item, err := svc.Create(context.Background(), &models.CreateCarouselItemRequest{
		Title:    "Summer Deals",
		ImageURL: "/uploads/banner.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ActionInternal, item.ActionType)
	assert.True(t, item.IsActive)
	assert.Equal(t, 0, item.SortOrder)
}

func TestCreateCarouselItemBadActionType(t *testing.T) {
	svc := NewCarouselService(newFakeCarouselStore(), nil)

	_, err := svc.Create(context.Background(), &models.CreateCarouselItemRequest{
		Title:      "Summer Deals",
		ImageURL:   "/uploads/banner.jpg",
		ActionType: "POPUP",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestListPublicFiltersInactive(t *testing.T) {
	store := newFakeCarouselStore()
	svc := NewCarouselService(store, nil)

	_, err := svc.Create(context.Background(), &models.CreateCarouselItemRequest{
		Title:    "Visible",
		ImageURL: "/uploads/a.jpg",
	})
	require.NoError(t, err)

	hidden := false
	_, err = svc.Create(context.Background(), &models.CreateCarouselItemRequest{
		Title:    "Hidden",
		ImageURL: "/uploads/b.jpg",
		IsActive: &hidden,
	})
	require.NoError(t, err)

	items, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Visible", items[0].Title)
}

func TestUpdateCarouselItemNotFound(t *testing.T) {
	svc := NewCarouselService(newFakeCarouselStore(), nil)

	title := "New title"
	_, err := svc.Update(context.Background(), "missing", &models.UpdateCarouselItemRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
