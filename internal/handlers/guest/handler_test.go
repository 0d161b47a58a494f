package guest_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"boda/infras/otel/mocks"
	"boda/internal/domains/guest/model/dto"
	serviceMocks "boda/internal/domains/guest/service/mocks"
	"boda/internal/handlers/guest"
	gDto "boda/shared/dto"
)

func newGuestHandler(t *testing.T) (*chi.Mux, *serviceMocks.MockGuest) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockGuest(ctrl)

	handler := guest.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestGuestHandler_CreateGuest(t *testing.T) {
	t.Run("party size of one still goes through party creation", func(t *testing.T) {
		router, svc := newGuestHandler(t)

		svc.EXPECT().
			CreateParty(gomock.Any(), gomock.Any(), 1).
			Return(dto.GetGuestsResponse{
				Guests: []dto.GuestResponse{{ID: 1, Name: "Solo Guest", Attending: true}},
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/guests",
			strings.NewReader(`{"name":"Solo Guest","party_size":1}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("no party size creates a single guest", func(t *testing.T) {
		router, svc := newGuestHandler(t)

		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.GuestResponse{ID: 2, Name: "Plain Guest"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/guests",
			strings.NewReader(`{"name":"Plain Guest"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestGuestHandler_GetGuests(t *testing.T) {
	t.Run("no pagination params lists everything", func(t *testing.T) {
		router, svc := newGuestHandler(t)

		svc.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "").
			DoAndReturn(func(_ any, params gDto.QueryParams, _, _ *bool, _ string) (dto.GetGuestsResponse, error) {
				assert.Zero(t, params.Page)
				assert.Zero(t, params.Limit)

				return dto.GetGuestsResponse{}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/guests", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("explicit pagination is passed through", func(t *testing.T) {
		router, svc := newGuestHandler(t)

		svc.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "").
			DoAndReturn(func(_ any, params gDto.QueryParams, _, _ *bool, _ string) (dto.GetGuestsResponse, error) {
				assert.Equal(t, 2, params.Page)
				assert.Equal(t, 5, params.Limit)

				return dto.GetGuestsResponse{}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/guests?page=2&limit=5", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
