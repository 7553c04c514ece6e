package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/piresc/toolshare/internal/pkg/constants"
	"github.com/piresc/toolshare/internal/pkg/database"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/services/payment/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupScheduler(t *testing.T, cfg models.SchedulerConfig) (*PayoutScheduler, *mocks.MockPaymentUC, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockUC := mocks.NewMockPaymentUC(ctrl)
	rc := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	return NewPayoutScheduler(mockUC, rc, cfg, nil), mockUC, mr
}

func TestRunOnce_SweepsAndReleasesLease(t *testing.T) {
	s, mockUC, mr := setupScheduler(t, models.SchedulerConfig{Enabled: true, LockTTL: time.Minute})

	mockUC.EXPECT().
		ProcessScheduledPayouts(gomock.Any()).
		DoAndReturn(func(context.Context) (*models.PayoutRunSummary, error) {
			assert.True(t, mr.Exists(constants.KeyPayoutLock))
			return &models.PayoutRunSummary{Eligible: 3, Succeeded: 2, Rejected: 1}, nil
		})

	summary, err := s.RunOnce(context.Background())

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.Succeeded)
	assert.False(t, mr.Exists(constants.KeyPayoutLock))
}

func TestRunOnce_SkipsWhenLeaseHeld(t *testing.T) {
	s, _, mr := setupScheduler(t, models.SchedulerConfig{Enabled: true, LockTTL: time.Minute})
	require.NoError(t, mr.Set(constants.KeyPayoutLock, "other-replica"))

	summary, err := s.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Nil(t, summary)
	got, _ := mr.Get(constants.KeyPayoutLock)
	assert.Equal(t, "other-replica", got)
}

func TestRunOnce_ReleasesLeaseOnError(t *testing.T) {
	s, mockUC, mr := setupScheduler(t, models.SchedulerConfig{Enabled: true})

	mockUC.EXPECT().
		ProcessScheduledPayouts(gomock.Any()).
		Return(nil, errors.New("database unavailable"))

	summary, err := s.RunOnce(context.Background())

	assert.Error(t, err)
	assert.Nil(t, summary)
	assert.False(t, mr.Exists(constants.KeyPayoutLock))
}

func TestRunOnce_RedisDown(t *testing.T) {
	s, _, mr := setupScheduler(t, models.SchedulerConfig{Enabled: true})
	mr.Close()

	summary, err := s.RunOnce(context.Background())

	assert.Error(t, err)
	assert.Nil(t, summary)
}

func TestStart_RejectsBadCron(t *testing.T) {
	s, _, _ := setupScheduler(t, models.SchedulerConfig{Enabled: true, PayoutCron: "every tuesday"})

	err := s.Start()

	assert.Error(t, err)
}

func TestStart_Disabled(t *testing.T) {
	s, _, _ := setupScheduler(t, models.SchedulerConfig{Enabled: false, PayoutCron: "every tuesday"})

	require.NoError(t, s.Start())
	s.Stop(context.Background())
}
