package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nkaroui/opsdeck/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	prefsPath := flag.String("prefs", "", "override prefs file path (optional)")
	dataDir := flag.String("data", "", "override data directory (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{PrefsPath: *prefsPath, DataDir: *dataDir}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "opsdeck: %v\n", err)
		return 1
	}
	return 0
}
