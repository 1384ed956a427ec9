// Command textsign signs and verifies text with BLAKE3 keyed hashes or
// Ed25519 signatures.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vitalvas/textsign/cmd/textsign/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.New().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
