package main

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"ecotrack/internal/dto/gemini_v1beta_dto"
	"ecotrack/internal/env"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const modelsPrefix = "/v1beta/models/"

var tips = []string{
	"Replace short car trips with walking or cycling.",
	"Use public transit for your daily commute.",
	"Choose trains over short-haul flights.",
	"Car-pool to share the emissions of each trip.",
	"Combine errands into a single trip.",
	"Keep tyres inflated and drive smoothly to save fuel.",
}

func generateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}
	if !strings.HasSuffix(r.URL.Path, ":generateContent") {
		http.NotFound(w, r)
		return
	}

	var request gemini_v1beta_dto.GenerateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || len(request.Contents) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"Invalid JSON payload","status":"INVALID_ARGUMENT"}}`))
		return
	}
	time.Sleep(300 * time.Millisecond)

	picked := make([]string, 0, 3)
	for _, i := range rand.Perm(len(tips))[:3] {
		picked = append(picked, tips[i])
	}
	advice := "- " + strings.Join(picked, "\n- ")

	response := gemini_v1beta_dto.GenerateContentResponse{
		Candidates: []gemini_v1beta_dto.Candidate{
			{
				Content: gemini_v1beta_dto.Content{
					Role:  "model",
					Parts: []gemini_v1beta_dto.Part{{Text: advice}},
				},
				FinishReason: "STOP",
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("couldn't write a response")
	}
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	port := env.GetEnv("MOCK_PORT", "8081")

	http.HandleFunc(modelsPrefix, generateHandler)
	log.Info().Str("port", port).Msg("Mock Gemini server running")
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal().Err(err).Msg("Mock server crashed")
	}
}
