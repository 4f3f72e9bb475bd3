// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-cred-keeper/internal/config"
	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/store"
	"github.com/MKhiriev/go-cred-keeper/internal/utils"
	"github.com/MKhiriev/go-cred-keeper/internal/validators"
	"github.com/MKhiriev/go-cred-keeper/internal/workers"
	"github.com/MKhiriev/go-cred-keeper/internal/zcap"
)

// Result summarises one successful synchronization pass.
type Result struct {
	// UpdateCount is the number of updates applied from the processed page.
	UpdateCount int `json:"updateCount"`

	// HasMore reports whether the page source indicated further pages behind
	// the advanced cursor.
	HasMore bool `json:"hasMore"`
}

// Engine is the production [Synchronizer]. One Engine serves the whole
// process; its rate limiter spans concurrent passes so that the remote
// status service sees a single bounded request stream.
type Engine struct {
	references store.ReferenceStore
	progress   store.SyncProgressStore
	invoker    zcap.Invoker
	validator  validators.Validator
	limiter    workers.Limiter
	uuid       *utils.UUIDGenerator
	defaults   Options

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewEngine wires a synchronization engine against its stores and the
// capability invoker. Deployment-wide defaults come from cfg; zero values
// fall back to the package constants.
func NewEngine(references store.ReferenceStore, progress store.SyncProgressStore, invoker zcap.Invoker, cfg config.Engine, logger *logger.Logger) *Engine {
	ratePerSecond := cfg.RatePerSecond
	if ratePerSecond <= 0 {
		ratePerSecond = DefaultRatePerSecond
	}

	return &Engine{
		references: references,
		progress:   progress,
		invoker:    invoker,
		validator:  validators.NewStatusUpdateValidator(),
		limiter:    rate.NewLimiter(rate.Limit(ratePerSecond), ratePerSecond),
		uuid:       utils.NewUUIDGenerator(),
		defaults: Options{
			Concurrency:              cfg.Concurrency,
			Limit:                    cfg.PageLimit,
			IgnoreCredentialNotFound: cfg.IgnoreCredentialNotFound,
		},
		logger: logger,
	}
}

// Synchronize runs one pass for syncID: load (or lazily create) its progress
// record, pull a single page from source positioned at the stored cursor,
// validate the whole page up front, apply every update through a bounded
// worker pool, and advance the cursor only when every update succeeded.
//
// On any failure the stored cursor is left untouched and the first captured
// error is returned; a later call re-attempts the same page. Cancellation is
// returned unwrapped, so callers can match it with [errors.Is] directly.
func (e *Engine) Synchronize(ctx context.Context, syncID string, source PageSource, opts Options) (Result, error) {
	if syncID == "" {
		return Result{}, ErrEmptySyncID
	}
	if source == nil {
		return Result{}, ErrNilPageSource
	}

	opts = opts.withDefaults(e.defaults)

	log := logger.FromContext(ctx).GetChildLogger()
	log.UpdateContext(func(zctx zerolog.Context) zerolog.Context {
		return zctx.Str("sync_id", syncID).Str("pass_id", e.uuid.Generate())
	})
	ctx = log.WithContext(ctx)

	progress, _, err := e.progress.GetProgress(ctx, syncID, true)
	if err != nil {
		return Result{}, fmt.Errorf("load progress for sync %q: %w", syncID, err)
	}

	updates, nextCursor, err := source.NextPage(ctx, progress.Cursor, opts.Limit)
	if err != nil {
		return Result{}, fmt.Errorf("next page for sync %q: %w", syncID, err)
	}

	// The page is validated in full before the first side effect, so a
	// malformed update aborts the pass with nothing applied.
	for idx, update := range updates {
		if err = e.validator.Validate(ctx, update); err != nil {
			return Result{}, fmt.Errorf("%w: update %d: %w", ErrInvalidStatusUpdate, idx, err)
		}
	}

	pool := workers.NewPool(opts.Concurrency, e.limiter)
	for _, update := range updates {
		pool.Go(ctx, func(taskCtx context.Context) error {
			return e.applyUpdate(taskCtx, update, opts)
		})
	}

	if err = pool.Wait(); err != nil {
		log.Err(err).Int("update_count", len(updates)).Msg("synchronization pass failed")
		return Result{}, err
	}
	// A drained pool reports nil even when cancellation made it drop tasks.
	if err = ctx.Err(); err != nil {
		return Result{}, err
	}

	progress.Sequence++
	progress.Cursor = nextCursor
	if err = e.progress.UpdateProgress(ctx, progress); err != nil {
		return Result{}, fmt.Errorf("advance progress for sync %q: %w", syncID, err)
	}

	result := Result{UpdateCount: len(updates), HasMore: nextCursor.HasMore()}

	log.Info().
		Int("update_count", result.UpdateCount).
		Bool("has_more", result.HasMore).
		Int64("sequence", progress.Sequence).
		Msg("synchronization pass applied")

	return result, nil
}

var _ Synchronizer = (*Engine)(nil)
