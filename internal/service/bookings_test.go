package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHOMANS/tourer-backend/internal/apperrors"
	"github.com/SHOMANS/tourer-backend/internal/models"
)

type fakeBookingStore struct {
	bookings map[string]*models.Booking
	nextID   int
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[string]*models.Booking{}}
}

func (f *fakeBookingStore) Create(_ context.Context, b *models.Booking) error {
	f.nextID++
	b.ID = fmt.Sprintf("bk-%d", f.nextID)
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) List(_ context.Context, q *models.BookingListQuery) ([]models.Booking, int, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if q.UserID != "" && b.UserID != q.UserID {
			continue
		}
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (f *fakeBookingStore) Update(_ context.Context, b *models.Booking) error {
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingStore) Delete(_ context.Context, id string) error {
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingStore) Stats(context.Context) (*models.BookingStats, error) {
	return &models.BookingStats{TotalBookings: len(f.bookings)}, nil
}

type eventRecorder struct {
	subjects []string
}

func (r *eventRecorder) Publish(subject string, _ interface{}) error {
	r.subjects = append(r.subjects, subject)
	return nil
}

func testPackage() *models.Package {
	max := 10
	return &models.Package{
		ID:           "pkg-1",
		Title:        "City Tour",
		Slug:         "city-tour",
		Price:        100,
		Currency:     "EUR",
		Duration:     5,
		MaxGuests:    &max,
		LocationName: "Istanbul",
		IsActive:     true,
		IsAvailable:  true,
	}
}

func newBookingFixture(t *testing.T) (*BookingService, *fakeBookingStore, *fakePackageStore, *eventRecorder) {
	t.Helper()
	bookings := newFakeBookingStore()
	packages := newFakePackageStore()
	pkg := testPackage()
	packages.packages[pkg.ID] = pkg
	events := &eventRecorder{}
	return NewBookingService(bookings, packages, events), bookings, packages, events
}

func createRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		PackageID:  "pkg-1",
		StartDate:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Guests:     3,
		GuestNames: []string{"Ada", "Grace", "Edsger"},
	}
}

func TestCreateBookingDerivesPriceAndDates(t *testing.T) {
	svc, _, _, events := newBookingFixture(t)

	booking, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	assert.Equal(t, 300.0, booking.TotalPrice)
	assert.Equal(t, "EUR", booking.Currency)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, models.PaymentPending, booking.PaymentStatus)

	require.NotNil(t, booking.EndDate)
	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), *booking.EndDate)

	assert.Contains(t, events.subjects, models.EventBookingCreated)
}

func TestCreateBookingHonorsSuppliedTotalPrice(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	discounted := 250.0
	req := createRequest()
	req.TotalPrice = &discounted

	booking, err := svc.Create(context.Background(), "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, 250.0, booking.TotalPrice)
}

func TestCreateBookingGuestNameMismatch(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	req := createRequest()
	req.GuestNames = []string{"Ada"}

	_, err := svc.Create(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateBookingTooManyGuests(t *testing.T) {
	svc, _, packages, _ := newBookingFixture(t)
	two := 2
	packages.packages["pkg-1"].MaxGuests = &two

	_, err := svc.Create(context.Background(), "user-1", createRequest())
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateBookingUnavailablePackage(t *testing.T) {
	svc, _, packages, _ := newBookingFixture(t)
	packages.packages["pkg-1"].IsAvailable = false

	_, err := svc.Create(context.Background(), "user-1", createRequest())
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateBookingMissingPackage(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	req := createRequest()
	req.PackageID = "nope"

	_, err := svc.Create(context.Background(), "user-1", req)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetBookingOwnership(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	booking, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "user-2", false, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	got, err := svc.Get(context.Background(), "user-2", true, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)
}

func TestListBookingsScopesToOwner(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	_, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-2", createRequest())
	require.NoError(t, err)

	resp, err := svc.List(context.Background(), "user-1", false, &models.BookingListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "user-1", resp.Data[0].UserID)
}

func TestBookingStatusTransitions(t *testing.T) {
	svc, _, _, events := newBookingFixture(t)

	booking, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	// PENDING -> COMPLETED skips confirmation
	_, err = svc.Complete(context.Background(), booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	updated, err := svc.Confirm(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)
	assert.Contains(t, events.subjects, models.EventBookingConfirmed)

	updated, err = svc.Complete(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, updated.Status)
	assert.Contains(t, events.subjects, models.EventBookingCompleted)

	// COMPLETED is terminal
	_, err = svc.Cancel(context.Background(), "admin", true, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestNonAdminCanOnlyCancel(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	booking, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	confirmed := models.BookingConfirmed
	_, err = svc.Update(context.Background(), "user-1", false, booking.ID, &models.UpdateBookingRequest{Status: &confirmed})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	paid := models.PaymentPaid
	_, err = svc.Update(context.Background(), "user-1", false, booking.ID, &models.UpdateBookingRequest{PaymentStatus: &paid})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := svc.Cancel(context.Background(), "user-1", false, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, updated.Status)
}

func TestUpdateValidatesMergedGuestState(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	booking, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	// owners cannot edit details at all
	two := 2
	_, err = svc.Update(context.Background(), "user-1", false, booking.ID, &models.UpdateBookingRequest{Guests: &two})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// shrinking guests without trimming names is rejected even for admins
	_, err = svc.Update(context.Background(), "admin", true, booking.ID, &models.UpdateBookingRequest{Guests: &two})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	updated, err := svc.Update(context.Background(), "admin", true, booking.ID, &models.UpdateBookingRequest{
		Guests:     &two,
		GuestNames: []string{"Ada", "Grace"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Guests)
}

func TestDeleteBookingRules(t *testing.T) {
	svc, _, _, _ := newBookingFixture(t)

	booking, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	confirmed := models.BookingConfirmed
	_, err = svc.Update(context.Background(), "admin", true, booking.ID, &models.UpdateBookingRequest{Status: &confirmed})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "admin", true, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	// owner cannot delete someone else's booking
	err = svc.Delete(context.Background(), "user-2", false, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	cancelled, err := svc.Cancel(context.Background(), "admin", true, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	assert.NoError(t, svc.Delete(context.Background(), "user-1", false, booking.ID))
}

func TestUpdatePaymentStatus(t *testing.T) {
	svc, _, _, events := newBookingFixture(t)

	booking, err := svc.Create(context.Background(), "user-1", createRequest())
	require.NoError(t, err)

	paymentID := "pay_123"
	updated, err := svc.UpdatePaymentStatus(context.Background(), booking.ID, &models.UpdatePaymentStatusRequest{
		PaymentStatus: models.PaymentPaid,
		PaymentID:     &paymentID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Contains(t, events.subjects, models.EventPaymentUpdated)

	_, err = svc.UpdatePaymentStatus(context.Background(), booking.ID, &models.UpdatePaymentStatusRequest{
		PaymentStatus: "NOT_A_STATUS",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
