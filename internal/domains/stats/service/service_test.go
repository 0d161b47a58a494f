package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"boda/config"
	"boda/infras/otel/mocks"
	guestMocks "boda/internal/domains/guest/mocks"
	guestModel "boda/internal/domains/guest/model"
	"boda/internal/domains/stats/model/dto"
	"boda/internal/domains/stats/service"
	cacheMocks "boda/shared/cache/mocks"
)

type statsServiceMocks struct {
	guestRepo *guestMocks.MockGuest
	cache     *cacheMocks.MockRedisCache
}

func newStatsService(t *testing.T) (service.Stats, statsServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := statsServiceMocks{
		guestRepo: guestMocks.NewMockGuest(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.guestRepo, cfg, m.cache, mocks.NewOtel())

	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return svc, m
}

// Two attending guests, one pending, one needing transport.
func sampleStats() guestModel.OverallStats {
	return guestModel.OverallStats{
		Total:         3,
		Confirmed:     2,
		Pending:       1,
		NeedTransport: 1,
	}
}

func TestStatsService_Overall(t *testing.T) {
	svc, m := newStatsService(t)

	m.guestRepo.EXPECT().OverallStats(gomock.Any()).Return(sampleStats(), nil)

	res, err := svc.Overall(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, dto.OverallStatsResponse{Total: 3, Confirmed: 2, Pending: 1, NeedTransport: 1}, res)
}

func TestStatsService_Attendance(t *testing.T) {
	svc, m := newStatsService(t)

	m.guestRepo.EXPECT().OverallStats(gomock.Any()).Return(sampleStats(), nil)

	res, err := svc.Attendance(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, dto.AttendanceStatsResponse{Confirmed: 2, Pending: 1}, res)
}

func TestStatsService_Transport(t *testing.T) {
	svc, m := newStatsService(t)

	m.guestRepo.EXPECT().OverallStats(gomock.Any()).Return(sampleStats(), nil)

	res, err := svc.Transport(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, dto.TransportStatsResponse{NeedTransport: 1, NoTransport: 2}, res)
}

func TestStatsService_Allergies(t *testing.T) {
	svc, m := newStatsService(t)

	m.guestRepo.EXPECT().
		AllergyStats(gomock.Any()).
		Return([]guestModel.AllergyCount{
			{Allergies: "gluten", Count: 3},
			{Allergies: "lactosa", Count: 1},
		}, nil)

	res, err := svc.Allergies(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, "gluten", res.Allergies[0].Allergies)
	assert.Equal(t, 3, res.Allergies[0].Count)
}

func TestStatsService_RepositoryError(t *testing.T) {
	svc, m := newStatsService(t)

	m.guestRepo.EXPECT().OverallStats(gomock.Any()).Return(guestModel.OverallStats{}, assert.AnError)

	_, err := svc.Overall(context.Background())

	assert.Error(t, err)
}
