// Package trainer evolves agent strategies by self-play: every lineage
// plays one game per generation against mutated clones of its own survivor,
// and the winner carries the bloodline forward.
package trainer

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/hobbsbros/contessa/agent"
	"github.com/hobbsbros/contessa/engine"
	"github.com/hobbsbros/contessa/game"
)

// Config parameterizes a training run.
type Config struct {
	// Population is the number of independent lineages.
	Population int

	// Generations is the total number of generations, counting the
	// founding generation of fully random games.
	Generations int

	// Seats is the number of players per game.
	Seats int

	// Workers is the worker-pool size; zero means one per CPU.
	Workers int

	// BaseSeed derives every game's random source, keeping parallel runs
	// uncorrelated and the whole run reproducible.
	BaseSeed uint64
}

func (c Config) withDefaults() Config {
	if c.Population <= 0 {
		c.Population = 1000
	}
	if c.Generations <= 0 {
		c.Generations = 10
	}
	if c.Seats <= 0 {
		c.Seats = 4
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.BaseSeed == 0 {
		c.BaseSeed = uint64(time.Now().UnixNano())
	}
	return c
}

// Lineage is one strategy bloodline tracked across generations.
type Lineage struct {
	ID         uuid.UUID      `json:"id"`
	Generation int            `json:"generation"`
	Strategy   agent.Strategy `json:"strategy"`
}

// GenerationStats summarizes one generation's surviving parameters.
type GenerationStats struct {
	Generation      int
	MeanLiarCutoff  float64
	MeanLyingCutoff float64
}

// Trainer runs the evolutionary loop.
type Trainer struct {
	config Config
	stats  []GenerationStats
}

// New creates a trainer; zero-valued config fields take defaults.
func New(config Config) *Trainer {
	return &Trainer{config: config.withDefaults()}
}

// Stats returns the per-generation summaries collected by Run.
func (t *Trainer) Stats() []GenerationStats {
	return t.stats
}

// task asks a worker to play one lineage's game for one generation.
type task struct {
	index    int
	seed     uint64
	founding bool
	parent   agent.Strategy
}

// result carries a game's winning strategy back to its lineage.
type result struct {
	index  int
	winner agent.Strategy
}

// Run executes the configured number of generations and returns the final
// survivors, one per lineage. Generations run strictly in sequence; within
// a generation, games are distributed across the worker pool.
func (t *Trainer) Run() ([]Lineage, error) {
	cfg := t.config
	if cfg.Seats < engine.MinPlayers || cfg.Seats > engine.MaxPlayers {
		return nil, fmt.Errorf("seats per game must be in [%d,%d], got %d",
			engine.MinPlayers, engine.MaxPlayers, cfg.Seats)
	}

	lineages := make([]Lineage, cfg.Population)
	for i := range lineages {
		lineages[i] = Lineage{ID: uuid.New()}
	}

	log.Info().Msgf("training %d lineages for %d generations with %d workers...",
		cfg.Population, cfg.Generations, cfg.Workers)

	for gen := 0; gen < cfg.Generations; gen++ {
		t.runGeneration(gen, lineages)

		stats := summarize(gen, lineages)
		t.stats = append(t.stats, stats)
		log.Info().Msgf("generation %d of %d complete: mean liar cutoff %.4f, mean lying cutoff %.4f",
			gen+1, cfg.Generations, stats.MeanLiarCutoff, stats.MeanLyingCutoff)
	}

	return lineages, nil
}

// runGeneration plays every lineage's game on the worker pool and installs
// each winner as that lineage's survivor. It only returns once the whole
// generation has finished; the next generation never starts early.
func (t *Trainer) runGeneration(gen int, lineages []Lineage) {
	tasks := make(chan task, len(lineages))
	results := make(chan result, len(lineages))

	var wg sync.WaitGroup
	for w := 0; w < t.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tk := range tasks {
				results <- result{index: tk.index, winner: t.playGame(tk)}
			}
		}()
	}

	for i, lineage := range lineages {
		tasks <- task{
			index:    i,
			seed:     gameSeed(t.config.BaseSeed, gen, i),
			founding: gen == 0,
			parent:   lineage.Strategy,
		}
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		lineages[r.index].Strategy = r.winner
		lineages[r.index].Generation = gen
	}
}

// playGame seeds one game, plays it to completion and returns the winning
// seat's strategy. Seat 0 holds the survivor unchanged; every other seat
// plays a freshly mutated copy. Founding games randomize all seats.
func (t *Trainer) playGame(tk task) agent.Strategy {
	rng := rand.New(rand.NewSource(tk.seed))

	strategies := make([]agent.Strategy, t.config.Seats)
	if tk.founding {
		for i := range strategies {
			strategies[i] = agent.RandomStrategy(rng)
		}
	} else {
		strategies[0] = tk.parent
		for i := 1; i < len(strategies); i++ {
			strategies[i] = tk.parent.Mutate(rng)
		}
	}

	players := make([]game.Player, len(strategies))
	for i, s := range strategies {
		players[i] = agent.New(i, len(strategies)-1, s, rand.New(rand.NewSource(rng.Uint64())))
	}

	eng, err := engine.New(players, engine.WithSeed(rng.Uint64()))
	if err != nil {
		// Seats was validated in Run.
		panic(err)
	}

	winner := eng.Play()
	return strategies[winner]
}

// gameSeed mixes the base seed with the generation and lineage indices so no
// two games in a run share a random stream.
func gameSeed(base uint64, gen, lineage int) uint64 {
	return base + uint64(gen)*0x9E3779B97F4A7C15 + uint64(lineage)*0xBF58476D1CE4E5B9
}

func summarize(gen int, lineages []Lineage) GenerationStats {
	stats := GenerationStats{Generation: gen}
	for _, l := range lineages {
		stats.MeanLiarCutoff += l.Strategy.LiarCutoff
		stats.MeanLyingCutoff += l.Strategy.LyingCutoff
	}
	stats.MeanLiarCutoff /= float64(len(lineages))
	stats.MeanLyingCutoff /= float64(len(lineages))
	return stats
}
