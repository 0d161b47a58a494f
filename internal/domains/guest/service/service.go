package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"boda/config"
	"boda/infras/kafka"
	"boda/infras/otel"
	"boda/internal/domains/guest/model"
	"boda/internal/domains/guest/model/dto"
	"boda/internal/domains/guest/repository"
	seatingService "boda/internal/domains/seating/service"
	settingService "boda/internal/domains/setting/service"
	tableModel "boda/internal/domains/table/model"
	tableRepository "boda/internal/domains/table/repository"
	"boda/shared"
	"boda/shared/cache"
	"boda/shared/constant"
	gDto "boda/shared/dto"
	"boda/shared/failure"
	"boda/shared/timezone"

	"github.com/rs/zerolog/log"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

const (
	cacheGetGuest  = constant.CacheKeyGuest
	cacheGetGuests = constant.CacheKeyGuestList
)

// maxAssignAttempts bounds the retry loop when concurrent parties contend for
// the same table; the final attempt skips the capacity re-check so the party
// is seated regardless.
const maxAssignAttempts = 3

const publishTimeout = 5 * time.Second

type Guest interface {
	GetAll(ctx context.Context, params gDto.QueryParams, attending, needsTransport *bool, search string) (dto.GetGuestsResponse, error)
	Get(ctx context.Context, id int64) (dto.GuestResponse, error)
	Create(ctx context.Context, req dto.CreateGuestRequest) (dto.GuestResponse, error)
	CreateParty(ctx context.Context, req dto.CreateGuestRequest, partySize int) (dto.GetGuestsResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateGuestRequest) (dto.GuestResponse, error)
	Patch(ctx context.Context, id int64, req dto.PatchGuestRequest) (dto.GuestResponse, error)
	Delete(ctx context.Context, id int64) (dto.DeleteGuestResponse, error)
	Reset(ctx context.Context) error
}

type serviceImpl struct {
	repo      repository.Guest
	tableRepo tableRepository.Table
	settings  settingService.Setting
	seating   seatingService.Seating
	kafka     kafka.Client
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Guest,
	tableRepo tableRepository.Table,
	settings settingService.Setting,
	seating seatingService.Seating,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Guest {
	return &serviceImpl{
		repo:      repo,
		tableRepo: tableRepo,
		settings:  settings,
		seating:   seating,
		kafka:     kafkaClient,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func byNameParams(params gDto.QueryParams) gDto.QueryParams {
	if params.SortBy == constant.Empty {
		params.SortBy = model.FieldName
	}

	if params.SortDir == constant.Empty {
		params.SortDir = constant.DefaultValueSortDir
	}

	return params
}

// buildFilter joins the optional flags conjunctively; search is an OR over
// name, email and phone.
func buildFilter(attending, needsTransport *bool, search string) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if attending != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldAttending,
			Value:    *attending,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if needsTransport != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldNeedsTransport,
			Value:    *needsTransport,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if search != constant.Empty {
		group.Filters = append(group.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "search_name",
					Field:    model.FieldName,
					Value:    search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "search_email",
					Field:    model.FieldEmail,
					Value:    search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "search_phone",
					Field:    model.FieldPhone,
					Value:    search,
					Operator: gDto.FilterOperatorLike,
					Table:    model.TableName,
				},
			},
		})
	}

	return group
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, attending, needsTransport *bool, search string) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	params = byNameParams(params)
	filter := buildFilter(attending, needsTransport, search)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetGuests, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for guests")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guests to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetGuest, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for guest")

		return res, nil
	}

	guest, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == 0 {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	res.FromModel(guest)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save guest to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	guest := req.ToModel(user)

	id, err := s.repo.Insert(ctx, guest)
	if err != nil {
		log.Error().Err(err).Msg("failed to create guest")

		return res, fmt.Errorf("failed to create guest: %w", err)
	}

	guest.ID = id

	res.FromModel(guest)

	s.publishGuestCreated(ctx, guest)
	s.invalidateListings(ctx, nil)

	return res, nil
}

// CreateParty seats the whole party at one table picked by the assignment
// engine and inserts every member in a single transaction. An overcommit
// detected by the pre-commit re-check rolls the inserts back and retries
// against another table; the last attempt seats the party without the
// re-check.
func (s *serviceImpl) CreateParty(ctx context.Context, req dto.CreateGuestRequest, partySize int) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateParty")
	defer scope.End()
	defer scope.TraceIfError(err)

	if partySize < 1 {
		partySize = 1
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	var exclude []int64

	for attempt := 1; attempt <= maxAssignAttempts; attempt++ {
		tableID := s.seating.Assign(ctx, partySize, exclude...)

		capacity := 0
		if tableID != nil && attempt < maxAssignAttempts {
			capacity = s.effectiveCapacity(ctx, *tableID)
		}

		guests := req.ToPartyModels(partySize, tableID, user)

		ids, insertErr := s.repo.InsertParty(ctx, guests, tableID, capacity)
		if insertErr != nil {
			if errors.Is(insertErr, repository.ErrTableOvercommitted) && tableID != nil {
				log.Warn().
					Int64("tableID", *tableID).
					Int("attempt", attempt).
					Msg("table overcommitted during party insert, retrying with another table")

				exclude = append(exclude, *tableID)

				continue
			}

			log.Error().Err(insertErr).Msg("failed to create party")

			return res, fmt.Errorf("failed to create party: %w", insertErr)
		}

		for i := range guests {
			guests[i].ID = ids[i]
		}

		res.FromModels(guests)

		s.publishGuestCreated(ctx, guests[0])
		s.invalidateListings(ctx, nil)

		return res, nil
	}

	// Unreachable: the last attempt never reports an overcommit.
	return res, failure.InternalError(errors.New("party assignment retries exhausted")) // nolint:wrapcheck
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if current.ID == 0 {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	_, err = s.repo.Update(ctx, req.ToUpdateMap(current, user), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to update guest")

		return res, fmt.Errorf("failed to update guest: %w", err)
	}

	guest, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get updated guest")

		return res, fmt.Errorf("failed to get updated guest: %w", err)
	}

	res.FromModel(guest)

	s.invalidateListings(ctx, &id)

	return res, nil
}

// Patch applies only the supplied fields. A body with no recognized fields is
// a no-op that returns the current record.
func (s *serviceImpl) Patch(ctx context.Context, id int64, req dto.PatchGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Patch")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if current.ID == 0 {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	// TransformFields always carries the modified_at/modified_by pair.
	if len(updatedFields) <= 2 {
		res.FromModel(current)

		return res, nil
	}

	_, err = s.repo.Update(ctx, updatedFields, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to patch guest")

		return res, fmt.Errorf("failed to patch guest: %w", err)
	}

	guest, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get patched guest")

		return res, fmt.Errorf("failed to get patched guest: %w", err)
	}

	res.FromModel(guest)

	s.invalidateListings(ctx, &id)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (res dto.DeleteGuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check guest existence")

		return res, fmt.Errorf("failed to check guest existence: %w", err)
	}

	if !exists {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	rowsAffected, err := s.repo.Delete(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete guest")

		return res, fmt.Errorf("failed to delete guest: %w", err)
	}

	res = dto.DeleteGuestResponse{
		DeletedID:    id,
		RowsAffected: rowsAffected,
	}

	s.invalidateListings(ctx, &id)

	return res, nil
}

// Reset wipes every guest row. Routed only outside production.
func (s *serviceImpl) Reset(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reset")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Truncate(ctx); err != nil {
		log.Error().Err(err).Msg("failed to reset guests")

		return fmt.Errorf("failed to reset guests: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetGuest)
		shared.InvalidateCaches(c, s.cache, cacheGetGuests)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyStats)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyTableList)
	}()

	return nil
}

func (s *serviceImpl) effectiveCapacity(ctx context.Context, tableID int64) int {
	table, err := s.tableRepo.Get(ctx, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
	if err != nil || table.ID == 0 {
		log.Warn().Err(err).Int64("tableID", tableID).Msg("could not resolve table capacity, skipping re-check")

		return 0
	}

	return table.EffectiveCapacity(s.settings.DefaultTableCapacity(ctx))
}

// publishGuestCreated emits the guest-created event without blocking the
// request; the write is bounded so a struggling broker cannot pile up
// goroutines.
func (s *serviceImpl) publishGuestCreated(ctx context.Context, guest model.Guest) {
	if !s.cfg.Kafka.Enable || s.cfg.Kafka.Topics.GuestCreated == constant.Empty {
		return
	}

	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		message := kafka.Message{
			Key: strconv.FormatInt(guest.ID, 10),
			Value: dto.GuestCreatedEvent{
				ID:        guest.ID,
				Name:      guest.Name,
				Attending: guest.Attending,
				TableID:   guest.TableID,
				CreatedAt: timezone.Format(guest.CreatedAt, constant.DateFormat),
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.GuestCreated, message); err != nil {
			log.Error().Err(err).Int64("guestID", guest.ID).Msg("failed to publish guest created event")
		}
	}()
}

// invalidateListings drops the caches a guest write makes stale, including the
// table listings that embed occupancy.
func (s *serviceImpl) invalidateListings(ctx context.Context, id *int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != nil {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetGuest, *id)); err != nil {
				log.Error().Err(err).Msg("failed to delete guest cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetGuests)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyStats)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyTableList)
	}()
}
