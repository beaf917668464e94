package reconciler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/corpusfit/corpus-bot/internal/models"
)

type MockEntitlements struct {
	mock.Mock
}

func (m *MockEntitlements) Load(ctx context.Context, userID int64) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockEntitlements) Extend(ctx context.Context, userID int64, durationDays int) (*models.Subscription, error) {
	args := m.Called(ctx, userID, durationDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockEntitlements) Revoke(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockEntitlements) HasActive(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) InsertPayment(ctx context.Context, userID int64, chargeID string, amount int64, currency string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, chargeID, amount, currency, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) LastPayment(ctx context.Context, userID int64) (*models.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) RefundStarPayment(ctx context.Context, userID int64, chargeID string) (bool, error) {
	args := m.Called(ctx, userID, chargeID)
	return args.Bool(0), args.Error(1)
}

type stubPlans struct {
	plans map[string]*models.Plan
}

func newStubPlans() *stubPlans {
	return &stubPlans{plans: map[string]*models.Plan{
		"corpus_subscription_month_v1": {Key: "month", Payload: "corpus_subscription_month_v1", PriceStars: 499, DurationDays: 30},
		"corpus_subscription_year_v1":  {Key: "year", Payload: "corpus_subscription_year_v1", PriceStars: 4990, DurationDays: 365},
	}}
}

func (s *stubPlans) PlanByPayload(payload string) (*models.Plan, bool) {
	plan, ok := s.plans[payload]
	return plan, ok
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newService(ents *MockEntitlements, ledger *MockLedger, gateway *MockGateway) *Service {
	return New(ents, ledger, gateway, newStubPlans(), newNoopLogger()).WithClock(fixedClock)
}

func TestService_RequestInvoice(t *testing.T) {
	t.Run("already subscribed - invoice blocked, window returned", func(t *testing.T) {
		ents := new(MockEntitlements)
		current := &models.Subscription{UserID: 1, StartDate: day(2025, 6, 1), EndDate: day(2026, 6, 1)}
		ents.On("HasActive", mock.Anything, int64(1)).Return(true, nil).Once()
		ents.On("Load", mock.Anything, int64(1)).Return(current, nil).Once()

		service := newService(ents, new(MockLedger), new(MockGateway))
		sub, err := service.RequestInvoice(context.Background(), 1, &models.Plan{Key: "year"})

		assert.ErrorIs(t, err, ErrAlreadySubscribed)
		assert.Equal(t, current, sub)
		ents.AssertExpectations(t)
	})

	t.Run("no subscription - invoice allowed", func(t *testing.T) {
		ents := new(MockEntitlements)
		ents.On("HasActive", mock.Anything, int64(1)).Return(false, nil).Once()

		service := newService(ents, new(MockLedger), new(MockGateway))
		sub, err := service.RequestInvoice(context.Background(), 1, &models.Plan{Key: "month"})

		require.NoError(t, err)
		assert.Nil(t, sub)
		ents.AssertExpectations(t)
	})
}

func TestService_ValidatePreCheckout(t *testing.T) {
	service := newService(new(MockEntitlements), new(MockLedger), new(MockGateway))

	assert.NoError(t, service.ValidatePreCheckout("corpus_subscription_month_v1"))
	assert.NoError(t, service.ValidatePreCheckout("corpus_subscription_year_v1"))
	assert.ErrorIs(t, service.ValidatePreCheckout("some_other_payload"), ErrUnknownPlan)
	assert.ErrorIs(t, service.ValidatePreCheckout(""), ErrUnknownPlan)
}

func TestService_Credit(t *testing.T) {
	t.Run("first confirmation credits exactly one plan duration", func(t *testing.T) {
		ents := new(MockEntitlements)
		ledger := new(MockLedger)
		extended := &models.Subscription{UserID: 1, StartDate: day(2025, 6, 15), EndDate: day(2026, 6, 15)}

		ledger.On("InsertPayment", mock.Anything, int64(1), "charge-1", int64(4990), "XTR", fixedNow).
			Return(true, nil).Once()
		ents.On("Extend", mock.Anything, int64(1), 365).Return(extended, nil).Once()

		service := newService(ents, ledger, new(MockGateway))
		sub, credited, err := service.Credit(context.Background(), 1, "charge-1", "corpus_subscription_year_v1", 4990, "XTR")

		require.NoError(t, err)
		assert.True(t, credited)
		assert.Equal(t, extended, sub)
		ents.AssertExpectations(t)
		ledger.AssertExpectations(t)
	})

	t.Run("duplicate charge_id does not extend twice", func(t *testing.T) {
		ents := new(MockEntitlements)
		ledger := new(MockLedger)
		current := &models.Subscription{UserID: 1, StartDate: day(2025, 6, 15), EndDate: day(2026, 6, 15)}

		ledger.On("InsertPayment", mock.Anything, int64(1), "charge-1", int64(4990), "XTR", fixedNow).
			Return(false, nil).Once()
		ents.On("Load", mock.Anything, int64(1)).Return(current, nil).Once()

		service := newService(ents, ledger, new(MockGateway))
		sub, credited, err := service.Credit(context.Background(), 1, "charge-1", "corpus_subscription_year_v1", 4990, "XTR")

		require.NoError(t, err)
		assert.False(t, credited)
		assert.Equal(t, current, sub)
		ents.AssertNotCalled(t, "Extend", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown payload reported without crediting", func(t *testing.T) {
		service := newService(new(MockEntitlements), new(MockLedger), new(MockGateway))

		_, credited, err := service.Credit(context.Background(), 1, "charge-2", "bogus", 100, "XTR")
		assert.ErrorIs(t, err, ErrUnknownPlan)
		assert.False(t, credited)
	})

	t.Run("wrong currency rejected", func(t *testing.T) {
		service := newService(new(MockEntitlements), new(MockLedger), new(MockGateway))

		_, _, err := service.Credit(context.Background(), 1, "charge-3", "corpus_subscription_year_v1", 4990, "USD")
		assert.ErrorIs(t, err, ErrUnknownPlan)
	})
}

func TestService_Refund(t *testing.T) {
	t.Run("gateway declines - local state untouched", func(t *testing.T) {
		ents := new(MockEntitlements)
		gateway := new(MockGateway)
		gateway.On("RefundStarPayment", mock.Anything, int64(1), "charge-1").Return(false, nil).Once()

		service := newService(ents, new(MockLedger), gateway)
		err := service.Refund(context.Background(), 1, "charge-1")

		assert.ErrorIs(t, err, ErrRefundDeclined)
		ents.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
	})

	t.Run("gateway error - treated as not confirmed", func(t *testing.T) {
		ents := new(MockEntitlements)
		gateway := new(MockGateway)
		gateway.On("RefundStarPayment", mock.Anything, int64(1), "charge-1").
			Return(false, errors.New("timeout")).Once()

		service := newService(ents, new(MockLedger), gateway)
		err := service.Refund(context.Background(), 1, "charge-1")

		require.Error(t, err)
		ents.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
	})

	t.Run("confirmed refund revokes the subscription", func(t *testing.T) {
		ents := new(MockEntitlements)
		gateway := new(MockGateway)
		gateway.On("RefundStarPayment", mock.Anything, int64(1), "charge-1").Return(true, nil).Once()
		ents.On("Revoke", mock.Anything, int64(1)).Return(nil).Once()

		service := newService(ents, new(MockLedger), gateway)
		assert.NoError(t, service.Refund(context.Background(), 1, "charge-1"))
		ents.AssertExpectations(t)
	})

	t.Run("revoke failure surfaces stale entitlement error", func(t *testing.T) {
		ents := new(MockEntitlements)
		gateway := new(MockGateway)
		gateway.On("RefundStarPayment", mock.Anything, int64(1), "charge-1").Return(true, nil).Once()
		ents.On("Revoke", mock.Anything, int64(1)).Return(errors.New("db down")).Once()

		service := newService(ents, new(MockLedger), gateway)
		err := service.Refund(context.Background(), 1, "charge-1")

		var stale *StaleEntitlementError
		require.ErrorAs(t, err, &stale)
		assert.Equal(t, int64(1), stale.UserID)
		assert.Equal(t, "charge-1", stale.ChargeID)
	})
}

func TestService_Grant(t *testing.T) {
	ents := new(MockEntitlements)
	granted := &models.Subscription{UserID: 5, StartDate: day(2025, 6, 15), EndDate: day(2025, 7, 15)}
	ents.On("Extend", mock.Anything, int64(5), 30).Return(granted, nil).Once()

	service := newService(ents, new(MockLedger), new(MockGateway))
	sub, err := service.Grant(context.Background(), 5, 30)

	require.NoError(t, err)
	assert.Equal(t, day(2025, 6, 15), sub.StartDate)
	assert.Equal(t, day(2025, 7, 15), sub.EndDate)
	ents.AssertExpectations(t)
}
