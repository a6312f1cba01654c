// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package interrupt

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/rs/zerolog/log"
)

// ErrCanceled is returned by import loops stopped through their context.
// Records consumed before the interrupt are still flushed to the store.
const ErrCanceled = common.ConstError("import interrupted")

// IsCancelled reports whether the given context is done.
func IsCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Check is polled by import loops between records. It returns ErrCanceled
// once the context is done, nil otherwise.
func Check(ctx context.Context) error {
	if IsCancelled(ctx) {
		return ErrCanceled
	}
	return nil
}

// Register derives the context of an import command. The context is canceled
// on SIGINT or SIGTERM, which makes the running import return ErrCanceled
// after its current record, so the command can still flush and close the
// store. The signal handler is released once the context is done.
func Register(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(signals)
		select {
		case sig := <-signals:
			log.Warn().Str("signal", sig.String()).Msg("Stopping import, flushing pending writes")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx
}
