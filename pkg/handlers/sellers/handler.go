package sellers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/seller-atlas/pkg/adapters"
	"github.com/de-tools/seller-atlas/pkg/models/api"
	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/de-tools/seller-atlas/pkg/services/aggregation"
	"github.com/de-tools/seller-atlas/pkg/services/sellers"
	"github.com/rs/zerolog"
)

// badRequestError marks malformed query parameters.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

type Handler struct {
	svc    sellers.Service
	limits adapters.Limits
}

func NewHandler(svc sellers.Service, limits adapters.Limits) *Handler {
	return &Handler{
		svc:    svc,
		limits: limits,
	}
}

func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	rng, err := h.svc.Period(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, adapters.MapDomainPeriodToAPI(rng))
}

func (h *Handler) GetStates(w http.ResponseWriter, r *http.Request) {
	res, limit, ok := h.run(w, r, h.limits.States)
	if !ok {
		return
	}
	h.writeJSON(w, r, adapters.MapLocationsToAPI(res.Range, res.ByState, limit))
}

func (h *Handler) GetCities(w http.ResponseWriter, r *http.Request) {
	res, limit, ok := h.run(w, r, h.limits.Cities)
	if !ok {
		return
	}
	h.writeJSON(w, r, adapters.MapLocationsToAPI(res.Range, res.ByCity, limit))
}

func (h *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	res, limit, ok := h.run(w, r, h.limits.BestWorst)
	if !ok {
		return
	}
	h.writeJSON(w, r, adapters.MapRevenueToAPI(res.Range, res.Revenue, limit))
}

func (h *Handler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	res, _, ok := h.run(w, r, 0)
	if !ok {
		return
	}
	h.writeJSON(w, r, adapters.MapMonthlyToAPI(res.Range, res.Monthly))
}

func (h *Handler) GetRFM(w http.ResponseWriter, r *http.Request) {
	res, limit, ok := h.run(w, r, h.limits.RFMLeaders)
	if !ok {
		return
	}
	h.writeJSON(w, r, adapters.MapRFMToAPI(res.Range, res.RFM, res.RFMSummary, limit))
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	res, _, ok := h.run(w, r, 0)
	if !ok {
		return
	}
	h.writeJSON(w, r, adapters.MapResultToAPISummary(res, h.limits))
}

// run resolves the query window and limit, then aggregates. Errors are
// written to w and reported with ok == false.
func (h *Handler) run(w http.ResponseWriter, r *http.Request, defaultLimit int) (*aggregation.Result, int, bool) {
	ctx := r.Context()

	limit, err := parseLimit(r, defaultLimit)
	if err != nil {
		h.writeError(w, r, err)
		return nil, 0, false
	}

	rng, err := h.resolveRange(r)
	if err != nil {
		h.writeError(w, r, err)
		return nil, 0, false
	}

	res, err := h.svc.Summary(ctx, rng)
	if err != nil {
		h.writeError(w, r, err)
		return nil, 0, false
	}
	return res, limit, true
}

// resolveRange reads start and end from the query; a missing bound falls
// back to the stored period.
func (h *Handler) resolveRange(r *http.Request) (domain.DateRange, error) {
	query := r.URL.Query()
	startParam, endParam := query.Get("start"), query.Get("end")

	var rng domain.DateRange
	if startParam == "" || endParam == "" {
		period, err := h.svc.Period(r.Context())
		if err != nil {
			return domain.DateRange{}, err
		}
		rng = period
	}

	if startParam != "" {
		start, err := domain.ParseDate(startParam)
		if err != nil {
			return domain.DateRange{}, &badRequestError{err: fmt.Errorf("start: %w", err)}
		}
		rng.Start = start
	}
	if endParam != "" {
		end, err := domain.ParseDate(endParam)
		if err != nil {
			return domain.DateRange{}, &badRequestError{err: fmt.Errorf("end: %w", err)}
		}
		rng.End = end
	}
	return domain.NewDateRange(rng.Start, rng.End)
}

func parseLimit(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, &badRequestError{err: fmt.Errorf("limit must be a non-negative integer, got %q", raw)}
	}
	return limit, nil
}

func statusFor(err error) int {
	var (
		rangeErr *domain.InvalidRangeError
		badReq   *badRequestError
	)
	switch {
	case errors.As(err, &rangeErr), errors.As(err, &badReq):
		return http.StatusBadRequest
	case errors.Is(err, sellers.ErrNoData):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger := zerolog.Ctx(r.Context())
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("failed to compute seller tables")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(api.Error{Error: err.Error()}); err != nil {
		logger.Error().Err(err).Msg("failed to encode error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}
