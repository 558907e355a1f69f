package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/docvault/internal/buildinfo"
	"github.com/dmitrijs2005/docvault/internal/client/cli"
	"github.com/dmitrijs2005/docvault/internal/client/config"
	"github.com/dmitrijs2005/docvault/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()

	var log logging.Logger
	syncLog := func() error { return nil }
	if cfg.LogFile != "" {
		fl := logging.NewFileLogger(cfg.LogFile, cfg.Debug)
		syncLog = fl.Sync
		log = fl
	} else {
		log = logging.NewTextLogger(os.Stderr, cfg.Debug)
	}
	defer func() { _ = syncLog() }()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docvault: %v\n", err)
		os.Exit(1)
	}

	// The REPL blocks on stdin, so an interrupt ends the process directly
	// after aborting any request in flight.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		interrupt(cancel, app.Close, syncLog, os.Stdout, os.Exit)
	}()

	app.Run(ctx)
}

// interrupt aborts in-flight work and exits with 130. os.Exit skips deferred
// calls, so buffered log entries are flushed here.
func interrupt(cancel context.CancelFunc, closeApp func(), syncLog func() error, out io.Writer, exit func(int)) {
	cancel()
	closeApp()
	_ = syncLog()
	fmt.Fprintln(out)
	exit(130)
}
