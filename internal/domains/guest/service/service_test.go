package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"boda/config"
	kafkaMocks "boda/infras/kafka/mocks"
	"boda/infras/otel/mocks"
	guestMocks "boda/internal/domains/guest/mocks"
	"boda/internal/domains/guest/model"
	"boda/internal/domains/guest/model/dto"
	"boda/internal/domains/guest/repository"
	"boda/internal/domains/guest/service"
	seatingMocks "boda/internal/domains/seating/service/mocks"
	settingServiceMocks "boda/internal/domains/setting/service/mocks"
	tableMocks "boda/internal/domains/table/mocks"
	tableModel "boda/internal/domains/table/model"
	cacheMocks "boda/shared/cache/mocks"
	gDto "boda/shared/dto"
	"boda/shared/failure"
	gModel "boda/shared/model"
	"boda/shared/timezone"
)

type guestServiceMocks struct {
	repo      *guestMocks.MockGuest
	tableRepo *tableMocks.MockTable
	settings  *settingServiceMocks.MockSetting
	seating   *seatingMocks.MockSeating
	kafka     *kafkaMocks.MockClient
	cache     *cacheMocks.MockRedisCache
	cfg       *config.Config
}

func newGuestService(t *testing.T) (service.Guest, guestServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := guestServiceMocks{
		repo:      guestMocks.NewMockGuest(ctrl),
		tableRepo: tableMocks.NewMockTable(ctrl),
		settings:  settingServiceMocks.NewMockSetting(ctrl),
		seating:   seatingMocks.NewMockSeating(ctrl),
		kafka:     kafkaMocks.NewMockClient(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		cfg:       &config.Config{},
	}

	m.cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.tableRepo, m.settings, m.seating, m.kafka, m.cfg, m.cache, mocks.NewOtel())

	// Async cache writes and invalidations may or may not land before the
	// test ends.
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return svc, m
}

func guestWithMetadata(id int64, name string) model.Guest {
	return model.Guest{
		ID:       id,
		Name:     name,
		MealType: "normal",
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "admin",
			ModifiedBy: "admin",
		},
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func int64Ptr(i int64) *int64 { return &i }

func TestGuestService_GetAll(t *testing.T) {
	t.Run("filters are forwarded to the repository", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Guest, error) {
				assert.Equal(t, model.FieldName, params.SortBy)

				clause, args := filter.GetWhereClause()
				assert.Contains(t, clause, "guests.attending = :attending")
				assert.Contains(t, clause, "LOWER(guests.name) LIKE LOWER(:search_name)")
				assert.Contains(t, clause, " OR ")
				assert.Equal(t, "%Garc%", args["search_name"])

				return []model.Guest{guestWithMetadata(1, "María García")}, nil
			})

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{}, boolPtr(true), nil, "Garc")

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, "María García", res.Guests[0].Name)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, out any) error {
				res, _ := out.(*dto.GetGuestsResponse)
				res.TotalData = 2

				return nil
			})

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{}, nil, nil, "")

		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
	})
}

func TestGuestService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(guestWithMetadata(7, "Juan Pérez"), nil)

		res, err := svc.Get(context.Background(), 7)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), res.ID)
		assert.Equal(t, "Juan Pérez", res.Name)
	})

	t.Run("missing guest reports not found", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

		_, err := svc.Get(context.Background(), 99)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGuestService_Create(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, guest model.Guest) (int64, error) {
				assert.Equal(t, "Ana López", guest.Name)
				assert.False(t, guest.Attending)
				assert.Equal(t, "normal", guest.MealType)
				assert.False(t, guest.NeedsTransport)
				assert.Nil(t, guest.TableID)

				return 11, nil
			})

		res, err := svc.Create(context.Background(), dto.CreateGuestRequest{Name: "Ana López"})

		assert.NoError(t, err)
		assert.Equal(t, int64(11), res.ID)
	})

	t.Run("publishes event when kafka enabled", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.cfg.Kafka.Enable = true
		m.cfg.Kafka.Topics.GuestCreated = "boda.guest.created"

		m.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(12), nil)
		m.kafka.EXPECT().
			SendMessages(gomock.Any(), "boda.guest.created", gomock.Any()).
			Return(nil).
			AnyTimes()

		_, err := svc.Create(context.Background(), dto.CreateGuestRequest{Name: "Ana López"})

		assert.NoError(t, err)
	})
}

func TestGuestService_CreateParty(t *testing.T) {
	t.Run("party of three shares one table", func(t *testing.T) {
		svc, m := newGuestService(t)

		capacity := 8
		m.seating.EXPECT().Assign(gomock.Any(), 3).Return(int64Ptr(4))
		m.tableRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(tableModel.Table{ID: 4, Name: "Table 4", Capacity: &capacity}, nil)
		m.settings.EXPECT().DefaultTableCapacity(gomock.Any()).Return(10)
		m.repo.EXPECT().
			InsertParty(gomock.Any(), gomock.Any(), int64Ptr(4), 8).
			DoAndReturn(func(_ context.Context, guests []model.Guest, _ *int64, _ int) ([]int64, error) {
				assert.Len(t, guests, 3)

				assert.Equal(t, "María García", guests[0].Name)
				assert.True(t, guests[0].Attending)

				assert.Equal(t, "María García - Companion 1", guests[1].Name)
				assert.Equal(t, "María García - Companion 2", guests[2].Name)

				for _, companion := range guests[1:] {
					assert.Nil(t, companion.Email)
					assert.Nil(t, companion.Phone)
					assert.Equal(t, "normal", companion.MealType)
					assert.Equal(t, "Companion of María García", *companion.Notes)
				}

				for _, guest := range guests {
					assert.Equal(t, int64(4), *guest.TableID)
				}

				return []int64{21, 22, 23}, nil
			})

		res, err := svc.CreateParty(context.Background(), dto.CreateGuestRequest{Name: "María García"}, 3)

		assert.NoError(t, err)
		assert.Equal(t, 3, res.TotalData)
		assert.Equal(t, int64(21), res.Guests[0].ID)
		assert.Equal(t, int64(23), res.Guests[2].ID)
	})

	t.Run("overcommit retries against another table", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.seating.EXPECT().Assign(gomock.Any(), 2).Return(int64Ptr(1))
		m.seating.EXPECT().Assign(gomock.Any(), 2, int64(1)).Return(int64Ptr(2))

		m.tableRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(tableModel.Table{ID: 1, Name: "Table 1"}, nil)
		m.tableRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(tableModel.Table{ID: 2, Name: "Table 2"}, nil)
		m.settings.EXPECT().DefaultTableCapacity(gomock.Any()).Return(10).Times(2)

		m.repo.EXPECT().
			InsertParty(gomock.Any(), gomock.Any(), int64Ptr(1), 10).
			Return(nil, repository.ErrTableOvercommitted)
		m.repo.EXPECT().
			InsertParty(gomock.Any(), gomock.Any(), int64Ptr(2), 10).
			Return([]int64{31, 32}, nil)

		res, err := svc.CreateParty(context.Background(), dto.CreateGuestRequest{Name: "Ana López"}, 2)

		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
	})

	t.Run("no table leaves the party unassigned", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.seating.EXPECT().Assign(gomock.Any(), 2).Return(nil)
		m.repo.EXPECT().
			InsertParty(gomock.Any(), gomock.Any(), gomock.Nil(), 0).
			DoAndReturn(func(_ context.Context, guests []model.Guest, _ *int64, _ int) ([]int64, error) {
				for _, guest := range guests {
					assert.Nil(t, guest.TableID)
				}

				return []int64{41, 42}, nil
			})

		res, err := svc.CreateParty(context.Background(), dto.CreateGuestRequest{Name: "Ana López"}, 2)

		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
	})
}

func TestGuestService_Update(t *testing.T) {
	t.Run("omitted flags fall back to the stored record", func(t *testing.T) {
		svc, m := newGuestService(t)

		current := guestWithMetadata(5, "Juan Pérez")
		current.Attending = true
		current.NeedsTransport = true
		current.MealType = "vegan"

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, true, fields[model.FieldAttending])
				assert.Equal(t, true, fields[model.FieldNeedsTransport])
				// meal_type resets to normal rather than keeping vegan.
				assert.Equal(t, "normal", fields[model.FieldMealType])
				assert.Nil(t, fields[model.FieldTableID])

				return 1, nil
			})
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		_, err := svc.Update(context.Background(), 5, dto.UpdateGuestRequest{Name: "Juan Pérez"})

		assert.NoError(t, err)
	})

	t.Run("missing guest reports not found", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

		_, err := svc.Update(context.Background(), 99, dto.UpdateGuestRequest{Name: "Nadie"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGuestService_Patch(t *testing.T) {
	t.Run("empty patch returns the record unchanged", func(t *testing.T) {
		svc, m := newGuestService(t)

		current := guestWithMetadata(5, "Juan Pérez")

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		res, err := svc.Patch(context.Background(), 5, dto.PatchGuestRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "Juan Pérez", res.Name)
	})

	t.Run("only supplied fields are written", func(t *testing.T) {
		svc, m := newGuestService(t)

		current := guestWithMetadata(5, "Juan Pérez")
		patched := current
		patched.Attending = true

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Contains(t, fields, model.FieldAttending)
				assert.NotContains(t, fields, model.FieldName)
				assert.NotContains(t, fields, model.FieldMealType)

				return 1, nil
			})
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(patched, nil)

		res, err := svc.Patch(context.Background(), 5, dto.PatchGuestRequest{Attending: boolPtr(true)})

		assert.NoError(t, err)
		assert.True(t, res.Attending)
	})

	t.Run("missing guest reports not found", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

		_, err := svc.Patch(context.Background(), 99, dto.PatchGuestRequest{Name: strPtr("Nadie")})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGuestService_Delete(t *testing.T) {
	t.Run("existing guest", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)

		res, err := svc.Delete(context.Background(), 5)

		assert.NoError(t, err)
		assert.Equal(t, int64(5), res.DeletedID)
		assert.Equal(t, int64(1), res.RowsAffected)
	})

	t.Run("missing guest reports not found", func(t *testing.T) {
		svc, m := newGuestService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Delete(context.Background(), 99)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGuestService_Reset(t *testing.T) {
	svc, m := newGuestService(t)

	m.repo.EXPECT().Truncate(gomock.Any()).Return(nil)

	err := svc.Reset(context.Background())

	assert.NoError(t, err)
}
