package footprint_v1_dto

import (
	"encoding/json"
	"errors"
)

// Validation errors
var (
	ErrMissingParameters = errors.New("missing parameters")
	ErrFootprintRequired = errors.New("carbon footprint value is required")
)

// CalculateRequest dto of the calculate api.
// Fields keep the raw JSON value, presence is checked by truthiness.
type CalculateRequest struct {
	Distance any `json:"distance"`
	Mode     any `json:"mode"`
}

// UnmarshalJSON reads the exact keys, encoding/json alone would also accept "Distance" or "MODE"
func (r *CalculateRequest) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}
	r.Distance = fields["distance"]
	r.Mode = fields["mode"]
	return nil
}

// Validate validation of request
func (r CalculateRequest) Validate() error {
	if !Truthy(r.Distance) || !Truthy(r.Mode) {
		return ErrMissingParameters
	}
	return nil
}

// DistanceValue distance as a number, NaN when it can't be read as one
func (r CalculateRequest) DistanceValue() float64 {
	return ToNumber(r.Distance)
}

// ModeValue mode as a string, empty for non-string values
func (r CalculateRequest) ModeValue() string {
	mode, _ := r.Mode.(string)
	return mode
}

// CalculateResponse response of the calculate api
type CalculateResponse struct {
	CarbonFootprint string `json:"carbonFootprint"`
}

// RecommendationRequest dto of the recommendations api
type RecommendationRequest struct {
	CarbonFootprint any `json:"carbonFootprint"`
}

// UnmarshalJSON reads the exact "carbonFootprint" key
func (r *RecommendationRequest) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}
	r.CarbonFootprint = fields["carbonFootprint"]
	return nil
}

func decodeObject(data []byte) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Validate validation of request
func (r RecommendationRequest) Validate() error {
	if !Truthy(r.CarbonFootprint) {
		return ErrFootprintRequired
	}
	return nil
}

// RecommendationResponse response of the recommendations api
type RecommendationResponse struct {
	Recommendation string `json:"recommendation"`
}

// ErrorResponse error body of every api
type ErrorResponse struct {
	Error string `json:"error"`
}
