package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
	"github.com/SHOMANS/tourer-backend/internal/cache"
	"github.com/SHOMANS/tourer-backend/internal/config"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

type fakeReviewStore struct {
	reviews map[string]*models.Review
	nextID  int
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[string]*models.Review{}}
}

func (f *fakeReviewStore) Create(_ context.Context, r *models.Review) error {
	f.nextID++
	r.ID = fmt.Sprintf("rv-%d", f.nextID)
	stored := *r
	f.reviews[r.ID] = &stored
	return nil
}

func (f *fakeReviewStore) GetByID(_ context.Context, id string) (*models.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReviewStore) FindByUserAndPackage(_ context.Context, userID, packageID string) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.UserID == userID && r.PackageID == packageID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewStore) ListApproved(_ context.Context, packageID string, _ *models.ReviewListQuery) ([]models.Review, int, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.PackageID == packageID && r.IsApproved {
			out = append(out, *r)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviewStore) ListAll(_ context.Context, _ *models.AdminReviewListQuery) ([]models.Review, int, error) {
	var out []models.Review
	for _, r := range f.reviews {
		out = append(out, *r)
	}
	return out, len(out), nil
}

func (f *fakeReviewStore) Approve(_ context.Context, id string) error {
	if r, ok := f.reviews[id]; ok {
		r.IsApproved = true
	}
	return nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id string) error {
	delete(f.reviews, id)
	return nil
}

type fakeCompletedFinder struct {
	booking *models.Booking
}

func (f *fakeCompletedFinder) FindCompletedForUserPackage(context.Context, string, string) (*models.Booking, error) {
	return f.booking, nil
}

func newReviewFixture(t *testing.T) (*ReviewService, *fakeReviewStore, *fakePackageStore, *fakeCompletedFinder) {
	t.Helper()
	reviews := newFakeReviewStore()
	packages := newFakePackageStore()
	pkg := testPackage()
	packages.packages[pkg.ID] = pkg
	finder := &fakeCompletedFinder{}
	return NewReviewService(reviews, packages, finder, nil), reviews, packages, finder
}

func TestCreateReviewRecalculatesRating(t *testing.T) {
	svc, _, packages, _ := newReviewFixture(t)

	review, err := svc.Create(context.Background(), "user-1", "pkg-1", &models.CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	assert.True(t, review.IsApproved)
	assert.False(t, review.IsVerified)
	assert.Equal(t, []string{"pkg-1"}, packages.recalculated)
}

func TestCreateReviewDuplicate(t *testing.T) {
	svc, _, _, _ := newReviewFixture(t)

	_, err := svc.Create(context.Background(), "user-1", "pkg-1", &models.CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "user-1", "pkg-1", &models.CreateReviewRequest{Rating: 3})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateReviewMarksVerified(t *testing.T) {
	svc, _, _, finder := newReviewFixture(t)
	finder.booking = &models.Booking{ID: "bk-9", Status: models.BookingCompleted}

	review, err := svc.Create(context.Background(), "user-1", "pkg-1", &models.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	assert.True(t, review.IsVerified)
	require.NotNil(t, review.BookingID)
	assert.Equal(t, "bk-9", *review.BookingID)
}

func TestCreateReviewMissingPackage(t *testing.T) {
	svc, _, _, _ := newReviewFixture(t)

	_, err := svc.Create(context.Background(), "user-1", "missing", &models.CreateReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteReviewOwnership(t *testing.T) {
	svc, _, packages, _ := newReviewFixture(t)

	review, err := svc.Create(context.Background(), "user-1", "pkg-1", &models.CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "user-2", false, review.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), "user-1", false, review.ID))

	// recalculated on create and again on delete
	assert.Equal(t, []string{"pkg-1", "pkg-1"}, packages.recalculated)
}

func TestApproveReviewRecalculates(t *testing.T) {
	svc, reviews, packages, _ := newReviewFixture(t)

	review, err := svc.Create(context.Background(), "user-1", "pkg-1", &models.CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	// pretend moderation pulled it back down
	reviews.reviews[review.ID].IsApproved = false

	approved, err := svc.Approve(context.Background(), review.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.Equal(t, []string{"pkg-1", "pkg-1"}, packages.recalculated)

	// approving an already-approved review is a no-op
	_, err = svc.Approve(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg-1", "pkg-1"}, packages.recalculated)
}

func TestApproveReviewNotFound(t *testing.T) {
	svc, _, _, _ := newReviewFixture(t)

	_, err := svc.Approve(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Reviews recompute ratings through the package service, which drops the
// cached popular pages along with the DB aggregates.
func TestCreateReviewInvalidatesPopularCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cacheClient, err := cache.NewClient(config.CacheConfig{Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { cacheClient.Close() })

	store := newFakePackageStore()
	pkg := testPackage()
	store.packages[pkg.ID] = pkg
	pkgSvc := NewPackageService(store, nil, cacheClient)
	svc := NewReviewService(newFakeReviewStore(), pkgSvc, &fakeCompletedFinder{}, nil)

	_, err = pkgSvc.Popular(context.Background(), 6)
	require.NoError(t, err)
	require.True(t, mr.Exists("packages:popular:6"))

	_, err = svc.Create(context.Background(), "user-1", pkg.ID, &models.CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	assert.False(t, mr.Exists("packages:popular:6"))
	assert.Equal(t, []string{pkg.ID}, store.recalculated)
}

type failingRatingStore struct {
	*fakePackageStore
}

func (failingRatingStore) RecalculateRating(context.Context, string) error {
	return errors.New("connection reset")
}

func TestCreateReviewRecalculateFailureSurfaces(t *testing.T) {
	reviews := newFakeReviewStore()
	packages := newFakePackageStore()
	pkg := testPackage()
	packages.packages[pkg.ID] = pkg
	svc := NewReviewService(reviews, failingRatingStore{packages}, &fakeCompletedFinder{}, nil)

	_, err := svc.Create(context.Background(), "user-1", "pkg-1", &models.CreateReviewRequest{Rating: 5})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to recalculate package rating")
}
