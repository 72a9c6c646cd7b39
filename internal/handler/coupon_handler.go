package handler

import (
	"net/http"
	"strconv"
	"time"

	"coupon-manager/internal/coupon"
	"coupon-manager/internal/middleware"
	"coupon-manager/internal/model"
	"coupon-manager/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CouponHandler handles coupon-related HTTP requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
	now     func() time.Time
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
		now:     time.Now,
	}
}

// List handles GET /api/coupons requests. limit and offset are optional.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	limit, ok := h.intParam(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := h.intParam(w, r, "offset")
	if !ok {
		return
	}

	coupons, err := h.service.List(r.Context(), callerID, limit, offset)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupon.Views(coupons, h.now()))
}

// Search handles GET /api/coupons/search?q= requests.
func (h *CouponHandler) Search(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	coupons, err := h.service.Search(r.Context(), callerID, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupon.Views(coupons, h.now()))
}

// GetByID handles GET /api/coupons/{id} requests.
func (h *CouponHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.couponID(w, r)
	if !ok {
		return
	}

	c, err := h.service.GetByID(r.Context(), callerID, id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupon.View(*c, h.now()))
}

// Create handles POST /api/coupons requests.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req model.CouponRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	c, err := h.service.Create(r.Context(), callerID, &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, coupon.View(*c, h.now()))
}

// Update handles PUT /api/coupons/{id} requests.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.couponID(w, r)
	if !ok {
		return
	}

	var req model.CouponRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	c, err := h.service.Update(r.Context(), callerID, id, &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupon.View(*c, h.now()))
}

// Delete handles DELETE /api/coupons/{id} requests.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.couponID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), callerID, id); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Coupon deleted successfully"})
}

// Redeem handles POST /api/coupons/{id}/redeem requests.
func (h *CouponHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.couponID(w, r)
	if !ok {
		return
	}

	c, err := h.service.Redeem(r.Context(), callerID, id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, coupon.View(*c, h.now()))
}

func (h *CouponHandler) caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, model.ErrUnauthorised, h.logger)
		return uuid.Nil, false
	}
	return callerID, true
}

// couponID reads the {id} path parameter. A malformed id cannot name a stored
// coupon, so it is reported as not found.
func (h *CouponHandler) couponID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, model.ErrNotFound, h.logger)
		return uuid.Nil, false
	}
	return id, true
}

func (h *CouponHandler) intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "Invalid "+name+" parameter", name, h.logger)
		return 0, false
	}
	return v, true
}
