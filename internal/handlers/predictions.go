package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/scoutai/predict-api/internal/features"
	"github.com/scoutai/predict-api/internal/model"
	"github.com/scoutai/predict-api/internal/models"
)

// Predict handles POST /api/v1/predict.
//
// Status mapping: 400 for a malformed or wrong-shaped request, 503 when
// models are not loaded, 422 when ratings are unresolvable for either
// alliance.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Each alliance must have exactly 3 teams")
		return
	}

	resp, err := h.prediction.PredictMatch(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotReady):
			h.errorResponse(w, http.StatusServiceUnavailable, "Models not loaded. Train models first.")
		case errors.Is(err, features.ErrInsufficientData):
			h.errorResponse(w, http.StatusUnprocessableEntity, "Could not fetch rating data for teams. Check team numbers and event key.")
		default:
			h.logger.Errorw("Prediction failed", "error", err, "event", req.EventKey)
			h.errorResponse(w, http.StatusInternalServerError, "Prediction failed")
		}
		return
	}

	h.jsonResponse(w, http.StatusOK, resp)
}
