package guest

import (
	"net/http"
	"strconv"

	"boda/infras/otel"
	"boda/internal/domains/guest/model/dto"
	"boda/internal/domains/guest/service"
	"boda/shared"
	"boda/shared/constant"
	gDto "boda/shared/dto"
	"boda/shared/failure"
	"boda/shared/validator"
	"boda/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetGuests)
		routerGroup.Post("/", handler.CreateGuest)
		routerGroup.Get("/{id}", handler.GetGuestByID)
		routerGroup.Put("/{id}", handler.UpdateGuest)
		routerGroup.Patch("/{id}", handler.PatchGuest)
		routerGroup.Delete("/{id}", handler.DeleteGuest)
	})
}

func guestID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil {
		return 0, failure.BadRequestFromString("invalid guest id") // nolint:wrapcheck
	}

	return id, nil
}

// GetGuests retrieves all guests based on query parameters.
// @Summary Get all guests
// @Description Retrieve all guests with optional filtering and pagination.
// @Tags Guest
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param attending query boolean false "Filter by attendance"
// @Param needs_transport query boolean false "Filter by transport need"
// @Param search query string false "Search over name, email and phone"
// @Success 200 {object} response.Data[dto.GetGuestsResponse] "List of guests"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests [get]
// @Security BearerAuth
func (handler *Handler) GetGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	// No default pagination: the listing returns the full filtered set
	// unless page/limit are asked for explicitly.
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	attending := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamAttending))
	needsTransport := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamNeedsTransport))
	search := r.URL.Query().Get(constant.RequestParamSearch)

	guests, err := handler.service.GetAll(ctx, queryParams, attending, needsTransport, search)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guests")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guests retrieved successfully")

	response.WithJSON(w, http.StatusOK, guests)
}

// GetGuestByID retrieves a guest by its ID.
// @Summary Get a guest by ID
// @Description Retrieve a guest by its unique identifier.
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path integer true "Guest ID"
// @Success 200 {object} response.Data[dto.GuestResponse] "Guest details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGuestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByID")
	defer scope.End()

	id, err := guestID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest retrieved successfully")

	response.WithJSON(w, http.StatusOK, guest)
}

// CreateGuest handles the creation of a new guest or a whole party.
// @Summary Create a guest or party
// @Description Create a guest; when party_size is present the whole party is created and seated together.
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.CreateGuestRequest true "Create Guest Request"
// @Success 201 {object} response.Data[dto.GuestResponse] "Guest created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests [post]
// @Security BearerAuth
func (handler *Handler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGuest")
	defer scope.End()

	req := dto.CreateGuestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	// Any request that names a party size goes through party creation, so a
	// party of one still gets seated by the engine with attending forced on.
	if req.PartySize != nil {
		party, err := handler.service.CreateParty(ctx, req, req.Size())
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to create party")

			response.WithError(w, err)

			return
		}

		scope.AddEvent("Party created successfully")

		response.WithJSON(w, http.StatusCreated, party)

		return
	}

	guest, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest created successfully")

	response.WithJSON(w, http.StatusCreated, guest)
}

// UpdateGuest replaces a guest record by its ID.
// @Summary Update a guest by ID
// @Description Replace the guest record; omitted flags keep their stored values.
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path integer true "Guest ID"
// @Param request body dto.UpdateGuestRequest true "Update Guest Request"
// @Success 200 {object} response.Data[dto.GuestResponse] "Guest updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGuest")
	defer scope.End()

	id, err := guestID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.UpdateGuestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest updated successfully")

	response.WithJSON(w, http.StatusOK, guest)
}

// PatchGuest applies a partial update to a guest by its ID.
// @Summary Patch a guest by ID
// @Description Update only the supplied guest fields; unknown fields are ignored.
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path integer true "Guest ID"
// @Param request body dto.PatchGuestRequest true "Patch Guest Request"
// @Success 200 {object} response.Data[dto.GuestResponse] "Guest patched successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [patch]
// @Security BearerAuth
func (handler *Handler) PatchGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PatchGuest")
	defer scope.End()

	id, err := guestID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.PatchGuestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Patch(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to patch guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest patched successfully")

	response.WithJSON(w, http.StatusOK, guest)
}

// DeleteGuest deletes a guest by its ID.
// @Summary Delete a guest by ID
// @Description Delete a guest using its unique identifier.
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path integer true "Guest ID"
// @Success 200 {object} response.Data[dto.DeleteGuestResponse] "Guest deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGuest")
	defer scope.End()

	id, err := guestID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest deleted successfully")

	response.WithJSON(w, http.StatusOK, res)
}
