package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nftstake/weight-indexer/internal/services"
	"github.com/nftstake/weight-indexer/internal/types"
)

// rates are decimal strings, they may exceed the JSON safe integer range
type changeRateRequest struct {
	Rate string `json:"rate"`
}

func (h *handlers) healthCheck(r *http.Request) (any, *types.Error) {
	if err := h.service.Ping(r.Context()); err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	return map[string]string{"status": "ok"}, nil
}

func (h *handlers) createPool(r *http.Request) (any, *types.Error) {
	var req services.CreatePoolRequest
	if apiErr := parseJSON(r.Body, &req); apiErr != nil {
		return nil, apiErr
	}
	return h.service.CreatePool(r.Context(), &req)
}

func (h *handlers) getPool(r *http.Request) (any, *types.Error) {
	return h.service.GetPool(r.Context(), chi.URLParam(r, "pool"))
}

func (h *handlers) changeRate(r *http.Request) (any, *types.Error) {
	var req changeRateRequest
	if apiErr := parseJSON(r.Body, &req); apiErr != nil {
		return nil, apiErr
	}
	if req.Rate == "" {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "rate is required")
	}
	rate, err := strconv.ParseUint(req.Rate, 10, 64)
	if err != nil {
		return nil, types.NewError(http.StatusBadRequest, types.BadRequest, fmt.Errorf("invalid rate %q: %w", req.Rate, err))
	}
	return h.service.ChangeRate(r.Context(), chi.URLParam(r, "pool"), rate)
}

func (h *handlers) closePool(r *http.Request) (any, *types.Error) {
	return h.service.ClosePool(r.Context(), chi.URLParam(r, "pool"))
}

func (h *handlers) poolWeight(r *http.Request) (any, *types.Error) {
	return h.service.PoolWeight(r.Context(), chi.URLParam(r, "pool"))
}
