package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
	"github.com/SHOMANS/tourer-backend/internal/cache"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

// CarouselStore is the persistence surface the carousel service needs
type CarouselStore interface {
	Create(ctx context.Context, item *models.CarouselItem) error
	GetByID(ctx context.Context, id string) (*models.CarouselItem, error)
	ListActive(ctx context.Context) ([]models.CarouselItem, error)
	ListAll(ctx context.Context) ([]models.CarouselItem, error)
	Update(ctx context.Context, item *models.CarouselItem) error
	Delete(ctx context.Context, id string) error
}

type CarouselService struct {
	store CarouselStore
	cache *cache.Client
}

func NewCarouselService(store CarouselStore, cacheClient *cache.Client) *CarouselService {
	return &CarouselService{store: store, cache: cacheClient}
}

var actionTypes = map[string]bool{
	models.ActionInternal: true,
	models.ActionExternal: true,
}

func (s *CarouselService) Create(ctx context.Context, req *models.CreateCarouselItemRequest) (*models.CarouselItem, error) {
	actionType := req.ActionType
	if actionType == "" {
		actionType = models.ActionInternal
	}
	if !actionTypes[actionType] {
		return nil, fmt.Errorf("%w: unknown action type %q", apperrors.ErrBadRequest, actionType)
	}

	item := &models.CarouselItem{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ActionType:  actionType,
		ActionValue: req.ActionValue,
		IsActive:    true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := s.store.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create carousel item: %w", err)
	}

	s.cache.InvalidateCarousel(ctx)

	return item, nil
}

// ListPublic returns the active carousel in display order, read through
// the cache when one is configured.
func (s *CarouselService) ListPublic(ctx context.Context) ([]models.CarouselItem, error) {
	if raw, err := s.cache.GetPublicCarouselRaw(ctx); err == nil {
		var items []models.CarouselItem
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
	} else if !cache.IsMiss(err) {
		slog.Warn("carousel cache read failed", "error", err)
	}

	items, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list carousel items: %w", err)
	}
	if items == nil {
		items = []models.CarouselItem{}
	}

	s.cache.SetPublicCarousel(ctx, items)

	return items, nil
}

// ListAll returns every carousel item for administration
func (s *CarouselService) ListAll(ctx context.Context) ([]models.CarouselItem, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list carousel items: %w", err)
	}
	if items == nil {
		items = []models.CarouselItem{}
	}
	return items, nil
}

func (s *CarouselService) Update(ctx context.Context, id string, req *models.UpdateCarouselItemRequest) (*models.CarouselItem, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get carousel item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: carousel item %s", apperrors.ErrNotFound, id)
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.ActionType != nil {
		if !actionTypes[*req.ActionType] {
			return nil, fmt.Errorf("%w: unknown action type %q", apperrors.ErrBadRequest, *req.ActionType)
		}
		item.ActionType = *req.ActionType
	}
	if req.ActionValue != nil {
		item.ActionValue = req.ActionValue
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := s.store.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update carousel item: %w", err)
	}

	s.cache.InvalidateCarousel(ctx)

	return item, nil
}

func (s *CarouselService) Delete(ctx context.Context, id string) error {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get carousel item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("%w: carousel item %s", apperrors.ErrNotFound, id)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete carousel item: %w", err)
	}

	s.cache.InvalidateCarousel(ctx)

	return nil
}
