package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"boda/infras/otel/mocks"
	guestMocks "boda/internal/domains/guest/mocks"
	"boda/internal/domains/seating/service"
	settingServiceMocks "boda/internal/domains/setting/service/mocks"
	tableMocks "boda/internal/domains/table/mocks"
	"boda/internal/domains/table/model"
)

type seatingServiceMocks struct {
	settings  *settingServiceMocks.MockSetting
	tableRepo *tableMocks.MockTable
	guestRepo *guestMocks.MockGuest
}

func newSeatingService(t *testing.T) (service.Seating, seatingServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := seatingServiceMocks{
		settings:  settingServiceMocks.NewMockSetting(ctrl),
		tableRepo: tableMocks.NewMockTable(ctrl),
		guestRepo: guestMocks.NewMockGuest(ctrl),
	}

	svc := service.New(m.settings, m.tableRepo, m.guestRepo, mocks.NewOtel())

	return svc, m
}

func seatingTable(id int64, name string, capacity *int) model.Table {
	return model.Table{ID: id, Name: name, Capacity: capacity, Shape: "round"}
}

func TestSeatingService_Assign(t *testing.T) {
	t.Run("only tables with enough free seats are candidates", func(t *testing.T) {
		svc, m := newSeatingService(t)

		two := 2
		m.tableRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Table{
				seatingTable(1, "Table 1", &two),
				seatingTable(2, "Table 2", nil),
			}, nil)
		m.guestRepo.EXPECT().OccupancyByTable(gomock.Any()).Return(map[int64]int{1: 1, 2: 7}, nil)
		m.settings.EXPECT().DefaultTableCapacity(gomock.Any()).Return(10)

		// Table 1 has 1 free seat, Table 2 has 3; only Table 2 fits a party
		// of 3.
		got := svc.Assign(context.Background(), 3)

		assert.NotNil(t, got)
		assert.Equal(t, int64(2), *got)
	})

	t.Run("pick lands on some candidate", func(t *testing.T) {
		svc, m := newSeatingService(t)

		m.tableRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Table{
				seatingTable(1, "Table 1", nil),
				seatingTable(2, "Table 2", nil),
				seatingTable(3, "Table 3", nil),
			}, nil)
		m.guestRepo.EXPECT().OccupancyByTable(gomock.Any()).Return(map[int64]int{3: 10}, nil)
		m.settings.EXPECT().DefaultTableCapacity(gomock.Any()).Return(10)

		got := svc.Assign(context.Background(), 1)

		assert.NotNil(t, got)
		assert.Contains(t, []int64{1, 2}, *got)
	})

	t.Run("excluded tables are skipped", func(t *testing.T) {
		svc, m := newSeatingService(t)

		m.tableRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Table{
				seatingTable(1, "Table 1", nil),
				seatingTable(2, "Table 2", nil),
			}, nil)
		m.guestRepo.EXPECT().OccupancyByTable(gomock.Any()).Return(map[int64]int{}, nil)
		m.settings.EXPECT().DefaultTableCapacity(gomock.Any()).Return(10)

		got := svc.Assign(context.Background(), 1, 1)

		assert.NotNil(t, got)
		assert.Equal(t, int64(2), *got)
	})

	t.Run("all full falls back to first table in name order", func(t *testing.T) {
		svc, m := newSeatingService(t)

		m.tableRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Table{
				seatingTable(4, "Table 1", nil),
				seatingTable(5, "Table 2", nil),
			}, nil)
		m.guestRepo.EXPECT().OccupancyByTable(gomock.Any()).Return(map[int64]int{4: 10, 5: 10}, nil)
		m.settings.EXPECT().DefaultTableCapacity(gomock.Any()).Return(10)

		got := svc.Assign(context.Background(), 1)

		assert.NotNil(t, got)
		assert.Equal(t, int64(4), *got)
	})

	t.Run("all full falls back to first non-excluded table", func(t *testing.T) {
		svc, m := newSeatingService(t)

		m.tableRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Table{
				seatingTable(4, "Table 1", nil),
				seatingTable(5, "Table 2", nil),
				seatingTable(6, "Table 3", nil),
			}, nil)
		m.guestRepo.EXPECT().OccupancyByTable(gomock.Any()).Return(map[int64]int{4: 10, 5: 10, 6: 10}, nil)
		m.settings.EXPECT().DefaultTableCapacity(gomock.Any()).Return(10)

		// Table 4 was already contended, the fallback moves on to Table 5.
		got := svc.Assign(context.Background(), 1, 4)

		assert.NotNil(t, got)
		assert.Equal(t, int64(5), *got)
	})

	t.Run("everything excluded falls back to first table", func(t *testing.T) {
		svc, m := newSeatingService(t)

		m.tableRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Table{
				seatingTable(4, "Table 1", nil),
				seatingTable(5, "Table 2", nil),
			}, nil)
		m.guestRepo.EXPECT().OccupancyByTable(gomock.Any()).Return(map[int64]int{4: 10, 5: 10}, nil)
		m.settings.EXPECT().DefaultTableCapacity(gomock.Any()).Return(10)

		got := svc.Assign(context.Background(), 1, 4, 5)

		assert.NotNil(t, got)
		assert.Equal(t, int64(4), *got)
	})

	t.Run("no tables yields nil", func(t *testing.T) {
		svc, m := newSeatingService(t)

		m.tableRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Table{}, nil)

		got := svc.Assign(context.Background(), 1)

		assert.Nil(t, got)
	})

	t.Run("lookup failure degrades to nil", func(t *testing.T) {
		svc, m := newSeatingService(t)

		m.tableRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		got := svc.Assign(context.Background(), 1)

		assert.Nil(t, got)
	})

	t.Run("needed below one counts as one", func(t *testing.T) {
		svc, m := newSeatingService(t)

		one := 1
		m.tableRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Table{seatingTable(1, "Table 1", &one)}, nil)
		m.guestRepo.EXPECT().OccupancyByTable(gomock.Any()).Return(map[int64]int{}, nil)
		m.settings.EXPECT().DefaultTableCapacity(gomock.Any()).Return(10)

		got := svc.Assign(context.Background(), 0)

		assert.NotNil(t, got)
		assert.Equal(t, int64(1), *got)
	})
}
