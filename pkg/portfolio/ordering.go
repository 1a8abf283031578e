package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reorder retry policy. Reordering issues many individual updates inside one
// transaction and is the highest-contention operation in the system, so it is
// the only operation with automatic conflict retry.
const (
	reorderAttempts    = 3
	reorderBackoffBase = 100 * time.Millisecond
)

// nextOrder returns the order value for a new child of the scope: one past
// the current maximum, or 0 when no siblings exist. The max-read plus insert
// is not serialized against concurrent creates; two racing creates can be
// assigned the same value. The next explicit reorder compacts the sequence.
func nextOrder(ctx context.Context, repo Repository, scope OrderScope) (int, error) {
	max, err := repo.MaxOrder(ctx, scope)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// reorder assigns order = index for every identifier in orderedIDs, restricted
// to children of the scope, inside one transaction.
//
// An identifier that exists but belongs to a different parent scope is
// silently skipped without consuming an index. An identifier that belongs to
// no record at all fails the whole call with ErrNotFound. On ErrConflict the
// whole transaction is retried with exponential backoff before the conflict
// is surfaced.
//
// Deleting a child never renumbers its siblings; gaps persist until the next
// reorder call lands here and compacts the sequence.
func reorder(ctx context.Context, repo Repository, scope OrderScope, orderedIDs []uuid.UUID) error {
	if !scope.Entity.IsValid() {
		return invalidf("unknown entity kind %q", scope.Entity)
	}
	if len(orderedIDs) == 0 {
		return invalidf("orderedIds must not be empty")
	}
	seen := make(map[uuid.UUID]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if id == uuid.Nil {
			return invalidf("orderedIds contains a nil identifier")
		}
		if _, dup := seen[id]; dup {
			return invalidf("orderedIds contains duplicate identifier %s", id)
		}
		seen[id] = struct{}{}
	}

	var err error
	for attempt := 0; attempt < reorderAttempts; attempt++ {
		if attempt > 0 {
			backoff := reorderBackoffBase << (attempt - 1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err = repo.InTx(ctx, func(tx Repository) error {
			next := 0
			for _, id := range orderedIDs {
				matched, err := tx.SetOrder(ctx, scope, id, next)
				if err != nil {
					return err
				}
				if !matched {
					exists, err := tx.Exists(ctx, scope.Entity, id)
					if err != nil {
						return err
					}
					if !exists {
						return fmt.Errorf("%w: %s %s", ErrNotFound, scope.Entity, id)
					}
					// Belongs to another parent: skip without burning an index.
					continue
				}
				next++
			}
			return nil
		})

		if !errors.Is(err, ErrConflict) {
			return err
		}
	}
	return err
}
