package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueTotales = "jobs:totales"

const maxAttempts = 3

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// TotalesPayload identifies one (business date, branch) scope whose cached
// daily totals must be recomputed after a ledger write.
type TotalesPayload struct {
	Fecha  string `json:"fecha"` // YYYY-MM-DD
	Branch string `json:"branch"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueTotales pushes a totals-refresh job for one date/branch scope.
func (d *Dispatcher) EnqueueTotales(ctx context.Context, fecha, branch string) error {
	return d.enqueue(ctx, QueueTotales, "totales", TotalesPayload{Fecha: fecha, Branch: branch})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers holds the job processors. They are wired in the composition root
// (cmd/server) so workers get full access to services without import cycles.
type Handlers struct {
	// Totales recomputes and caches daily totals for one date/branch.
	Totales func(ctx context.Context, fecha, branch string) error
}

// StartWorkerPool launches numWorkers goroutines consuming the totals queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *Handlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueTotales).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var payload TotalesPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Str("type", job.Type).Err(err).Msg("failed to unmarshal payload")
		return
	}

	if err := handlers.Totales(ctx, payload.Fecha, payload.Branch); err != nil {
		job.Attempts++
		log.Warn().
			Str("fecha", payload.Fecha).
			Str("branch", payload.Branch).
			Int("attempts", job.Attempts).
			Err(err).
			Msg("totals refresh failed")

		if job.Attempts >= maxAttempts {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}
		// Re-enqueue for another attempt
		if encoded, err := json.Marshal(job); err == nil {
			_ = rdb.LPush(ctx, queue, encoded).Err()
		}
	}
}
