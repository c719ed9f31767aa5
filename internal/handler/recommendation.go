package handler

import (
	"context"
	"net/http"
	"time"

	"ecotrack/internal/dto/footprint_v1_dto"

	"github.com/rs/zerolog"
)

// RecommendationHandler serves POST /api/recommendations
type RecommendationHandler struct {
	recommender recommender
}

func NewRecommendation(recommender recommender) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
	}
}

func (h *RecommendationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, msgInvalidMethod)
		return
	}

	var request footprint_v1_dto.RecommendationRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := request.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, msgFootprintRequired)
		return
	}

	// the upstream call runs to completion even if the client goes away
	ctx := context.WithoutCancel(r.Context())

	reqStart := time.Now()
	recommendation, err := h.recommender.Recommend(ctx, request.CarbonFootprint)
	latency := time.Since(reqStart)

	zerolog.Ctx(ctx).Info().Str("latency", latency.String()).Msg("recommendation latency")

	if err != nil {
		writeError(w, r, http.StatusInternalServerError, msgAIRequestFailed)
		return
	}

	writeJSON(w, r, http.StatusOK, footprint_v1_dto.RecommendationResponse{Recommendation: recommendation})
}
