package service

import (
	"context"
	"fmt"

	"boda/config"
	"boda/infras/otel"
	guestModel "boda/internal/domains/guest/model"
	guestRepository "boda/internal/domains/guest/repository"
	"boda/internal/domains/stats/model/dto"
	"boda/shared"
	"boda/shared/cache"
	"boda/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

// Stats serves the attendance dashboards. Every figure is a SQL aggregate
// over the guest rows; results are cached and invalidated by guest writes.
type Stats interface {
	Overall(ctx context.Context) (dto.OverallStatsResponse, error)
	Attendance(ctx context.Context) (dto.AttendanceStatsResponse, error)
	Transport(ctx context.Context) (dto.TransportStatsResponse, error)
	Allergies(ctx context.Context) (dto.GetAllergyStatsResponse, error)
}

type serviceImpl struct {
	guestRepo guestRepository.Guest
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(guestRepo guestRepository.Guest, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Stats {
	return &serviceImpl{
		guestRepo: guestRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Overall(ctx context.Context) (res dto.OverallStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Overall")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyStats, "overall")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	stats, err := s.overallStats(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(stats)

	s.saveToCache(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Attendance(ctx context.Context) (res dto.AttendanceStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Attendance")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyStats, "attendance")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	stats, err := s.overallStats(ctx)
	if err != nil {
		return res, err
	}

	res = dto.AttendanceStatsResponse{
		Confirmed: stats.Confirmed,
		Pending:   stats.Pending,
	}

	s.saveToCache(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Transport(ctx context.Context) (res dto.TransportStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transport")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyStats, "transport")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	stats, err := s.overallStats(ctx)
	if err != nil {
		return res, err
	}

	res = dto.TransportStatsResponse{
		NeedTransport: stats.NeedTransport,
		NoTransport:   stats.Total - stats.NeedTransport,
	}

	s.saveToCache(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Allergies(ctx context.Context) (res dto.GetAllergyStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Allergies")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyStats, "allergies")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	counts, err := s.guestRepo.AllergyStats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate allergy stats")

		return res, fmt.Errorf("failed to aggregate allergy stats: %w", err)
	}

	res.FromModels(counts)

	s.saveToCache(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) overallStats(ctx context.Context) (res guestModel.OverallStats, err error) {
	stats, err := s.guestRepo.OverallStats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate guest stats")

		return res, fmt.Errorf("failed to aggregate guest stats: %w", err)
	}

	return stats, nil
}

func (s *serviceImpl) saveToCache(ctx context.Context, cacheKey string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save stats to cache")
		}
	}()
}
