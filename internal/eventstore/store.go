// Package eventstore implements the append-only event log that is the
// system's source of truth (spec §4.5): every domain state change is an
// appended Event; current state is always a projection over the log.
package eventstore

import (
	"context"

	"github.com/ledgertrace/ledgertrace/internal/model"
)

// Store is the append-only event log contract. All writers serialize
// through Append; readers read the current log length once and project up
// to it so concurrent appends never produce an inconsistent snapshot.
type Store interface {
	// Append writes events in order, assigning no meaning to anything but
	// the event payload itself. It is the sole mutating operation.
	Append(ctx context.Context, events ...model.Event) error

	// Events returns every event appended so far, in append order.
	Events(ctx context.Context) ([]model.Event, error)

	// Len reports the current log length, for readers that want a
	// consistent snapshot boundary (spec §5's "read the current log
	// length once" policy).
	Len(ctx context.Context) (int, error)

	Close() error
}
