package service

import "context"

type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
