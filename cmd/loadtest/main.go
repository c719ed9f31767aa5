package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"ecotrack/internal/dto/footprint_v1_dto"
	"ecotrack/internal/env"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

var modes = []string{"car", "bus", "train", "plane", "bike"}

type requestBody struct {
	Distance float64 `json:"distance"`
	Mode     string  `json:"mode"`
}

func generateCalculatePayload() ([]byte, error) {
	body := requestBody{
		Distance: float64(rand.Intn(100000))/100 + 1,
		Mode:     modes[rand.Intn(len(modes))],
	}
	return json.Marshal(body)
}

func generateRecommendationPayload() ([]byte, error) {
	body := footprint_v1_dto.RecommendationRequest{
		CarbonFootprint: float64(rand.Intn(10000))/100 + 1,
	}
	return json.Marshal(body)
}

type result struct {
	latency time.Duration
	status  int
}

func run(ctx context.Context, cmd *cli.Command) error {
	target := cmd.String("target")
	concurrency := cmd.Int("concurrency")
	duration := cmd.Duration("duration")

	url := target + "/api/calculate"
	generate := generateCalculatePayload
	if cmd.Bool("recommendations") {
		url = target + "/api/recommendations"
		generate = generateRecommendationPayload
	}

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	log.Info().
		Str("target", url).
		Int("concurrency", concurrency).
		Dur("duration", duration).
		Msg("Starting load test")

	startTime := time.Now()
	results := make(chan result, 100000)

	var latencies []time.Duration
	statuses := make(map[int]int)
	var aggWg sync.WaitGroup
	aggWg.Add(1)
	go func() {
		defer aggWg.Done()
		for res := range results {
			latencies = append(latencies, res.latency)
			statuses[res.status]++
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		workerID := i
		g.Go(func() error {
			client := &http.Client{}
			for {
				select {
				case <-gctx.Done():
					return nil
				default:
				}

				payload, err := generate()
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Msg("Error generating payload")
					continue
				}

				req, err := http.NewRequestWithContext(gctx, http.MethodPost, url, bytes.NewBuffer(payload))
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Msg("Error creating request")
					continue
				}
				req.Header.Set("Content-Type", "application/json")

				reqStart := time.Now()
				resp, err := client.Do(req)
				latency := time.Since(reqStart)

				if err != nil {
					if gctx.Err() == nil {
						log.Error().Err(err).Int("worker", workerID).Msg("Error sending request or reading response")
					}
					continue
				}
				_ = resp.Body.Close()
				results <- result{latency: latency, status: resp.StatusCode}
			}
		})
	}

	_ = g.Wait()
	close(results)
	aggWg.Wait()

	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		index := int(float64(len(latencies)) * 0.99)
		if index >= len(latencies) {
			index = len(latencies) - 1
		}
		log.Info().Str("99th_percentile", latencies[index].String()).Msg("99th percentile latency")
	}

	for status, count := range statuses {
		log.Info().Int("status", status).Int("count", count).Msg("responses by status")
	}

	totalTime := time.Since(startTime).Seconds()
	rps := float64(len(latencies)) / totalTime
	log.Info().
		Int("total_requests", len(latencies)).
		Float64("rps", rps).
		Msg("Load test completed")

	return nil
}

func main() {
	env.LoadEnv()
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cmd := &cli.Command{
		Name:  "loadtest",
		Usage: "generate concurrent load against the footprint api",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "target",
				Usage:   "base url of the service",
				Value:   "http://localhost:5000",
				Sources: cli.EnvVars("TARGET_URL"),
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "number of concurrent workers",
				Value: 100,
			},
			&cli.DurationFlag{
				Name:  "duration",
				Usage: "duration of the load test",
				Value: 5 * time.Second,
			},
			&cli.BoolFlag{
				Name:  "recommendations",
				Usage: "hit /api/recommendations instead of /api/calculate",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("load test failed")
	}
}
