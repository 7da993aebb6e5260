package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nftstake/weight-indexer/internal/services"
	"github.com/nftstake/weight-indexer/internal/types"
)

func (h *handlers) stake(r *http.Request) (any, *types.Error) {
	var req services.StakeRequest
	if apiErr := parseJSON(r.Body, &req); apiErr != nil {
		return nil, apiErr
	}
	return h.service.Stake(r.Context(), chi.URLParam(r, "pool"), &req)
}

func (h *handlers) getStake(r *http.Request) (any, *types.Error) {
	return h.service.GetStake(r.Context(), chi.URLParam(r, "pool"), chi.URLParam(r, "asset"))
}

func (h *handlers) unstake(r *http.Request) (any, *types.Error) {
	return h.service.Unstake(r.Context(), chi.URLParam(r, "pool"), chi.URLParam(r, "asset"))
}

func (h *handlers) withdrawReward(r *http.Request) (any, *types.Error) {
	return h.service.WithdrawReward(r.Context(), chi.URLParam(r, "pool"), chi.URLParam(r, "asset"))
}
