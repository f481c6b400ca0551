// Command qrbench benchmarks QR code encoders and serves the results.
//
// Usage:
//
//	qrbench serve                     start the HTTP API
//	qrbench run --iterations 50       run a batch and print a comparison table
//	qrbench info <package>            show registry info of a package
//
// Configuration comes from the environment (and .env); a YAML profile given
// with --profile overrides the initial settings.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
