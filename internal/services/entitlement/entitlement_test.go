package entitlement

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

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockRepository) UpsertSubscription(ctx context.Context, sub models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockRepository) DeleteSubscription(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListSubscriptionsWithLastPayment(ctx context.Context) ([]*models.SubscriptionReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubscriptionReport), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var fixedNow = time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Extend(t *testing.T) {
	tests := []struct {
		name       string
		days       int
		setupMocks func(*MockRepository)
		wantStart  time.Time
		wantEnd    time.Time
		wantErr    bool
	}{
		{
			name: "no subscription - window starts today",
			days: 30,
			setupMocks: func(r *MockRepository) {
				r.On("GetSubscription", mock.Anything, int64(1)).Return(nil, nil).Once()
				r.On("UpsertSubscription", mock.Anything, models.Subscription{
					UserID:    1,
					StartDate: day(2025, 6, 15),
					EndDate:   day(2025, 7, 15),
				}).Return(nil).Once()
			},
			wantStart: day(2025, 6, 15),
			wantEnd:   day(2025, 7, 15),
		},
		{
			name: "active subscription - days stack on current end",
			days: 365,
			setupMocks: func(r *MockRepository) {
				r.On("GetSubscription", mock.Anything, int64(1)).Return(&models.Subscription{
					UserID:    1,
					StartDate: day(2025, 1, 1),
					EndDate:   day(2025, 7, 1),
				}, nil).Once()
				r.On("UpsertSubscription", mock.Anything, models.Subscription{
					UserID:    1,
					StartDate: day(2025, 1, 1),
					EndDate:   day(2026, 7, 1),
				}).Return(nil).Once()
			},
			wantStart: day(2025, 1, 1),
			wantEnd:   day(2026, 7, 1),
		},
		{
			name: "subscription ends today - still stacks",
			days: 30,
			setupMocks: func(r *MockRepository) {
				r.On("GetSubscription", mock.Anything, int64(1)).Return(&models.Subscription{
					UserID:    1,
					StartDate: day(2025, 5, 16),
					EndDate:   day(2025, 6, 15),
				}, nil).Once()
				r.On("UpsertSubscription", mock.Anything, models.Subscription{
					UserID:    1,
					StartDate: day(2025, 5, 16),
					EndDate:   day(2025, 7, 15),
				}).Return(nil).Once()
			},
			wantStart: day(2025, 5, 16),
			wantEnd:   day(2025, 7, 15),
		},
		{
			name: "expired subscription - window resets to today",
			days: 30,
			setupMocks: func(r *MockRepository) {
				r.On("GetSubscription", mock.Anything, int64(1)).Return(&models.Subscription{
					UserID:    1,
					StartDate: day(2024, 1, 1),
					EndDate:   day(2024, 12, 31),
				}, nil).Once()
				r.On("UpsertSubscription", mock.Anything, models.Subscription{
					UserID:    1,
					StartDate: day(2025, 6, 15),
					EndDate:   day(2025, 7, 15),
				}).Return(nil).Once()
			},
			wantStart: day(2025, 6, 15),
			wantEnd:   day(2025, 7, 15),
		},
		{
			name:       "non-positive duration rejected",
			days:       0,
			setupMocks: func(_ *MockRepository) {},
			wantErr:    true,
		},
		{
			name: "storage error propagated",
			days: 30,
			setupMocks: func(r *MockRepository) {
				r.On("GetSubscription", mock.Anything, int64(1)).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMocks(repo)

			service := New(repo, nil, newNoopLogger()).WithClock(fixedClock)
			sub, err := service.Extend(context.Background(), 1, tt.days)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantStart, sub.StartDate)
				assert.Equal(t, tt.wantEnd, sub.EndDate)
			}
			repo.AssertExpectations(t)
		})
	}
}

// memRepo — хранилище подписок в памяти для сценарных тестов,
// где важна последовательность мутаций, а не вызовы моков.
type memRepo struct {
	sub *models.Subscription
}

func (m *memRepo) GetSubscription(_ context.Context, _ int64) (*models.Subscription, error) {
	return m.sub, nil
}

func (m *memRepo) UpsertSubscription(_ context.Context, sub models.Subscription) error {
	m.sub = &sub
	return nil
}

func (m *memRepo) DeleteSubscription(_ context.Context, _ int64) (int, error) {
	if m.sub == nil {
		return 0, nil
	}
	m.sub = nil
	return 1, nil
}

func (m *memRepo) ListSubscriptionsWithLastPayment(_ context.Context) ([]*models.SubscriptionReport, error) {
	return nil, nil
}

func TestService_Extend_StackingSumsDurations(t *testing.T) {
	// Последовательные продления активного окна складываются:
	// итоговый end_date равен start_date плюс сумма всех дней.
	repo := &memRepo{}
	service := New(repo, nil, newNoopLogger()).WithClock(fixedClock)

	for _, days := range []int{30, 30, 365} {
		_, err := service.Extend(context.Background(), 1, days)
		require.NoError(t, err)
	}

	require.NotNil(t, repo.sub)
	assert.Equal(t, day(2025, 6, 15), repo.sub.StartDate)
	assert.Equal(t, day(2025, 6, 15).AddDate(0, 0, 30+30+365), repo.sub.EndDate)
}

func TestService_Extend_NeverDecreasesEndDate(t *testing.T) {
	repo := &memRepo{}
	service := New(repo, nil, newNoopLogger()).WithClock(fixedClock)

	first, err := service.Extend(context.Background(), 1, 365)
	require.NoError(t, err)

	second, err := service.Extend(context.Background(), 1, 30)
	require.NoError(t, err)

	assert.False(t, second.EndDate.Before(first.EndDate))
}

func TestService_HasActive(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		admins     []int64
		setupMocks func(*MockRepository)
		want       bool
	}{
		{
			name:   "privileged user always active without storage call",
			userID: 99,
			admins: []int64{99},
			setupMocks: func(_ *MockRepository) {
			},
			want: true,
		},
		{
			name:   "no subscription",
			userID: 1,
			setupMocks: func(r *MockRepository) {
				r.On("GetSubscription", mock.Anything, int64(1)).Return(nil, nil).Once()
			},
			want: false,
		},
		{
			name:   "subscription ends today - active",
			userID: 1,
			setupMocks: func(r *MockRepository) {
				r.On("GetSubscription", mock.Anything, int64(1)).Return(&models.Subscription{
					UserID: 1, StartDate: day(2025, 5, 16), EndDate: day(2025, 6, 15),
				}, nil).Once()
			},
			want: true,
		},
		{
			name:   "subscription expired yesterday",
			userID: 1,
			setupMocks: func(r *MockRepository) {
				r.On("GetSubscription", mock.Anything, int64(1)).Return(&models.Subscription{
					UserID: 1, StartDate: day(2025, 5, 1), EndDate: day(2025, 6, 14),
				}, nil).Once()
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMocks(repo)

			service := New(repo, tt.admins, newNoopLogger()).WithClock(fixedClock)
			got, err := service.HasActive(context.Background(), tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Revoke_ImmediatelyVisible(t *testing.T) {
	repo := new(MockRepository)
	service := New(repo, nil, newNoopLogger()).WithClock(fixedClock)

	repo.On("DeleteSubscription", mock.Anything, int64(1)).Return(1, nil).Once()
	repo.On("GetSubscription", mock.Anything, int64(1)).Return(nil, nil).Once()

	require.NoError(t, service.Revoke(context.Background(), 1))

	active, err := service.HasActive(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, active)
	repo.AssertExpectations(t)
}
