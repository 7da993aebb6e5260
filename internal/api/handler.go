package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nftstake/weight-indexer/internal/observability/metrics"
	"github.com/nftstake/weight-indexer/internal/types"
)

const jsonContentType = "application/json; charset=utf-8"

type handlers struct {
	service Service
}

// handlerFunc returns the response body or an error carrying its status.
type handlerFunc func(r *http.Request) (any, *types.Error)

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func (h *handlers) wrap(endpoint string, successStatus int, f handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		observe := metrics.StartHttpRequestDurationTimer(endpoint)

		body, apiErr := f(r)
		if apiErr != nil {
			logger := log.Ctx(r.Context()).Warn()
			if apiErr.StatusCode >= http.StatusInternalServerError {
				logger = log.Ctx(r.Context()).Error()
			}
			logger.Err(apiErr).
				Str("endpoint", endpoint).
				Stringer("error_code", apiErr.ErrorCode).
				Msg("request failed")

			observe(apiErr.StatusCode)
			writeJSON(w, apiErr.StatusCode, errorResponse{
				ErrorCode: apiErr.ErrorCode.String(),
				Message:   publicMessage(apiErr),
			})
			return
		}

		observe(successStatus)
		writeJSON(w, successStatus, body)
	}
}

// internal errors are not leaked to clients
func publicMessage(apiErr *types.Error) string {
	if apiErr.StatusCode >= http.StatusInternalServerError {
		return "internal service error"
	}
	return apiErr.Error()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

// parseJSON decodes a request body in strict mode.
func parseJSON(r io.Reader, v any) *types.Error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "request body is empty")
		}
		return types.NewError(http.StatusBadRequest, types.BadRequest, fmt.Errorf("invalid request body: %w", err))
	}
	return nil
}
