package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ecotrack/internal/dto/footprint_v1_dto"

	"github.com/rs/zerolog"
)

const (
	msgInvalidMethod     = "Invalid request method"
	msgInvalidBody       = "Invalid request body"
	msgMissingParameters = "Missing parameters"
	msgFootprintRequired = "Carbon footprint value is required."
	msgAIRequestFailed   = "AI request failed."
)

var errTrailingData = errors.New("unexpected data after JSON value")

// decodeBody reads a JSON body into v, an empty body leaves v untouched
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("couldn't write a response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, code int, message string) {
	writeJSON(w, r, code, footprint_v1_dto.ErrorResponse{Error: message})
}
