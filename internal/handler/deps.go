package handler

import "context"

type calculator interface {
	Calculate(distance float64, mode string) string
	Known(mode string) bool
}

type recommender interface {
	Recommend(ctx context.Context, carbonFootprint any) (string, error)
}
