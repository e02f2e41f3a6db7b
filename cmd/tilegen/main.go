// Command tilegen drives the tile generator with synthetic pages.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gogpu/tilegen/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
