package main

import (
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hobbsbros/contessa/trainer"
)

func main() {
	population := flag.Int("population", 1000, "Number of independent lineages")
	generations := flag.Int("generations", 10, "Number of generations to evolve")
	seats := flag.Int("seats", 4, "Players per game")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = one per CPU)")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Base RNG seed")
	checkpoint := flag.String("checkpoint", "checkpoints/lineages.json", "Checkpoint output path")
	metricsDir := flag.String("metrics", "metrics", "Metrics output directory")
	flag.Parse()

	config := trainer.Config{
		Population:  *population,
		Generations: *generations,
		Seats:       *seats,
		Workers:     *workers,
		BaseSeed:    *seed,
	}

	t := trainer.New(config)
	lineages, err := t.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	cp := trainer.NewCheckpoint(config, lineages)
	if err := cp.Save(*checkpoint); err != nil {
		log.Fatal().Err(err).Msg("failed to save checkpoint")
	}
	log.Info().Msgf("saved %d lineages to %s", len(lineages), *checkpoint)

	writer, err := trainer.NewWriter(*metricsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create metrics writer")
	}
	if err := writer.WriteLineages(lineages); err != nil {
		log.Fatal().Err(err).Msg("failed to write lineage records")
	}
	if err := writer.WriteGenerationStats(t.Stats()); err != nil {
		log.Fatal().Err(err).Msg("failed to write generation records")
	}
	log.Info().Msgf("wrote training metrics to %s", writer.BaseDir())
}
