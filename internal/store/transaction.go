package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/nestly-api/internal/platform/logger"
)

// TxFn is the body of a transaction. Returning an error rolls it back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn inside a transaction on db and commits when fn
// returns nil. An error from fn rolls the transaction back and is returned
// unchanged, so callers can still match it with errors.Is. A panic inside fn
// rolls back before it propagates.
//
// Room writes use it to keep the row and its amenity links consistent:
//
//	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
//	    rooms := roomStore.WithTx(tx)
//	    if err := rooms.Create(ctx, room); err != nil {
//	        return err
//	    }
//	    return rooms.ReplaceAmenities(ctx, room.ID, amenityIDs)
//	})
func RunInTransaction(ctx context.Context, db TxBeginner, fn TxFn) error {
	log := logger.FromContext(ctx).With(slog.String("component", "transaction"))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback after panic failed",
				slog.String("error", rbErr.Error()),
				slog.Any("panic", p))
		} else {
			log.Error("rolled back transaction after panic", slog.Any("panic", p))
		}
		// ALLOW-PANIC: Propagating caught panic from transaction
		panic(p)
	}()

	if err := fn(ctx, tx); err != nil {
		return rollback(log, tx, err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Debug("transaction committed")
	return nil
}

// rollback aborts tx after cause. cause stays matchable through the
// returned error even when the rollback itself fails.
func rollback(log *slog.Logger, tx *sql.Tx, cause error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		log.Error("failed to roll back transaction",
			slog.String("rollback_error", rbErr.Error()),
			slog.String("original_error", cause.Error()))
		return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, cause)
	}

	log.Debug("rolled back transaction", slog.String("error", cause.Error()))
	return cause
}
