package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/northpole-labs/reindeergames/internal/config"
)

const (
	ArchiveBatchSize    = 50
	ArchiveBatchTimeout = 2 * time.Second
	ArchivePollTimeout  = 1 * time.Second
)

// GameRecord is one finished game, queued by the handler and drained
// into Postgres by the ArchiveWorker.
type GameRecord struct {
	SessionID  string    `json:"session_id"`
	Score      int       `json:"score"`
	GameLength int       `json:"game_length"`
	FinishedAt time.Time `json:"finished_at"`
}

// EnqueueGameRecord pushes a finished game onto the archive queue.
// Archiving is best effort; callers log and move on if this fails.
func EnqueueGameRecord(ctx context.Context, rdb *redis.Client, rec GameRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal game record: %w", err)
	}
	if err := rdb.RPush(ctx, config.WorkerKey.ArchiveGamesQueue, raw).Err(); err != nil {
		return fmt.Errorf("enqueue game record: %w", err)
	}
	return nil
}

// ArchiveWorker drains the finished-game queue into Postgres in
// batches, with a single-row fallback and requeue on failure.
type ArchiveWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewArchiveWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *ArchiveWorker {
	return &ArchiveWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "archive_worker").Logger(),
	}
}

func (w *ArchiveWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ArchiveWorker started")

	batch := make([]*GameRecord, 0, ArchiveBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ArchiveBatchSize || time.Since(lastFlush) >= ArchiveBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ArchivePollTimeout, config.WorkerKey.ArchiveGamesQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var rec GameRecord
			if err := json.Unmarshal([]byte(item[1]), &rec); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &rec)
		}
	}
}

func (w *ArchiveWorker) flushSafe(ctx context.Context, batch []*GameRecord) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkInsert(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk archive insert failed, using fallback")

		for _, rec := range batch {
			if err := w.insertSingle(ctx, rec); err != nil {
				w.log.Error().Err(err).Msg("insertSingle failed, requeueing")
				raw, _ := json.Marshal(rec)
				w.rdb.RPush(ctx, config.WorkerKey.ArchiveGamesQueue, raw)
			}
		}
	}
}

func (w *ArchiveWorker) bulkInsert(ctx context.Context, batch []*GameRecord) error {
	n := len(batch)

	sessionIDs := make([]string, 0, n)
	scores := make([]int, 0, n)
	lengths := make([]int, 0, n)
	finished := make([]time.Time, 0, n)

	for _, rec := range batch {
		sessionIDs = append(sessionIDs, rec.SessionID)
		scores = append(scores, rec.Score)
		lengths = append(lengths, rec.GameLength)
		finished = append(finished, rec.FinishedAt)
	}

	query := `
		INSERT INTO game_archive (session_id, score, game_length, finished_at)
		SELECT u.session_id, u.score, u.game_length, u.finished_at
		FROM UNNEST(
			$1::text[],
			$2::int[],
			$3::int[],
			$4::timestamptz[]
		) AS u (session_id, score, game_length, finished_at)
	`

	_, err := w.pool.Exec(ctx, query, sessionIDs, scores, lengths, finished)
	return err
}

func (w *ArchiveWorker) insertSingle(ctx context.Context, rec *GameRecord) error {
	_, err := w.pool.Exec(ctx,
		`INSERT INTO game_archive (session_id, score, game_length, finished_at)
		 VALUES ($1, $2, $3, $4)`,
		rec.SessionID, rec.Score, rec.GameLength, rec.FinishedAt,
	)

	return err
}
