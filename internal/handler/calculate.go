package handler

import (
	"net/http"

	"ecotrack/internal/dto/footprint_v1_dto"
	"ecotrack/internal/metrics"
)

// CalculateHandler serves POST /api/calculate
type CalculateHandler struct {
	calculator calculator
}

func NewCalculate(calculator calculator) *CalculateHandler {
	return &CalculateHandler{
		calculator: calculator,
	}
}

func (h *CalculateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, msgInvalidMethod)
		return
	}

	var request footprint_v1_dto.CalculateRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := request.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, msgMissingParameters)
		return
	}

	mode := request.ModeValue()
	carbonFootprint := h.calculator.Calculate(request.DistanceValue(), mode)
	metrics.RecordCalculation(mode, h.calculator.Known(mode))

	writeJSON(w, r, http.StatusOK, footprint_v1_dto.CalculateResponse{CarbonFootprint: carbonFootprint})
}
