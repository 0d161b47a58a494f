package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"boda/config"
	"boda/infras/otel/mocks"
	settingMocks "boda/internal/domains/setting/mocks"
	"boda/internal/domains/setting/model"
	"boda/internal/domains/setting/model/dto"
	"boda/internal/domains/setting/service"
	cacheMocks "boda/shared/cache/mocks"
	"boda/shared/constant"
	"boda/shared/failure"
	"boda/shared/timezone"
)

func newSettingService(t *testing.T) (service.Setting, *settingMocks.MockSetting, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := settingMocks.NewMockSetting(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mockOtel), mockRepo, mockCache
}

func TestSettingService_Get(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		setupMock func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache)
		want      string
		wantErr   bool
	}{
		{
			name: "returns stored value",
			key:  "default_table_capacity",
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Setting{Key: "default_table_capacity", Value: "12", ModifiedAt: timezone.Now()}, nil)
			},
			want:    "12",
			wantErr: false,
		},
		{
			name: "absent key returns empty string without error",
			key:  "missing_key",
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Setting{}, nil)
			},
			want:    "",
			wantErr: false,
		},
		{
			name: "repository error",
			key:  "default_table_capacity",
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Setting{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newSettingService(t)
			tt.setupMock(mockRepo, mockCache)

			got, err := svc.Get(context.Background(), tt.key)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingService_Set(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		req          dto.UpdateSettingRequest
		setupMock    func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache)
		wantRows     int64
		wantErr      bool
		wantNotFound bool
	}{
		{
			name: "successful update",
			key:  "event_name",
			req:  dto.UpdateSettingRequest{Value: "Ana & Luis"},
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantRows: 1,
			wantErr:  false,
		},
		{
			name: "unknown key reports not found",
			key:  "unknown_key",
			req:  dto.UpdateSettingRequest{Value: "x"},
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:      true,
			wantNotFound: true,
		},
		{
			name: "repository error",
			key:  "event_name",
			req:  dto.UpdateSettingRequest{Value: "x"},
			setupMock: func(repo *settingMocks.MockSetting, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newSettingService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Set(context.Background(), tt.key, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantNotFound {
					assert.Equal(t, 404, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.key, res.Key)
			assert.Equal(t, tt.req.Value, res.Value)
			assert.Equal(t, tt.wantRows, res.RowsAffected)
		})
	}
}

func TestSettingService_DefaultTableCapacity(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		getErr error
		want   int
	}{
		{
			name:   "parses stored value",
			stored: "12",
			want:   12,
		},
		{
			name:   "missing setting falls back to default",
			stored: "",
			want:   constant.DefaultTableCapacity,
		},
		{
			name:   "unparsable value falls back to default",
			stored: "a dozen",
			want:   constant.DefaultTableCapacity,
		},
		{
			name:   "non-positive value falls back to default",
			stored: "-4",
			want:   constant.DefaultTableCapacity,
		},
		{
			name:   "repository error falls back to default",
			getErr: errors.New("database error"),
			want:   constant.DefaultTableCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newSettingService(t)

			mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
			mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			mockRepo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(model.Setting{Key: constant.SettingDefaultTableCapacity, Value: tt.stored}, tt.getErr)

			got := svc.DefaultTableCapacity(context.Background())

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingService_List(t *testing.T) {
	svc, mockRepo, mockCache := newSettingService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Setting{
			{Key: "default_table_capacity", Value: "10", ModifiedAt: timezone.Now()},
			{Key: "event_name", Value: "Ana & Luis", ModifiedAt: timezone.Now()},
		}, nil)

	res, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, res.Settings, 2)
	assert.Equal(t, "default_table_capacity", res.Settings[0].Key)
	assert.Equal(t, "10", res.Settings[0].Value)
}
