package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-kit/log/level"
	"github.com/jessevdk/go-flags"
)

// configPath returns the ini config path given on the command line or in the
// environment, before the full options are parsed.
func configPath() string {
	var pre struct {
		Config string `long:"config" env:"NODEPOOL_CONFIG"`
	}

	p := flags.NewParser(&pre, flags.IgnoreUnknown)
	_, _ = p.Parse()

	return pre.Config
}

func main() {
	p := flags.NewParser(&opts, flags.Default)

	// Values from the config file are overridden by the command line.
	if path := configPath(); path != "" {
		if err := flags.NewIniParser(p).ParseFile(path); err != nil {
			fmt.Println("config error:", err)
			os.Exit(2)
		}
	}

	if _, err := p.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); !ok || flagsErr.Type != flags.ErrHelp {
			fmt.Println("cli error:", err)
		}

		os.Exit(2)
	}

	wg := sync.WaitGroup{}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	// Initialize all components.
	logger, closeLogger := setupLogger()
	pool, closePool := setupClient(logger)

	// Components must be shut down in a particular order.
	shutdownOrder := []shutdownFunc{
		closePool,
		closeLogger,
	}

	if opts.RestAPI.Enabled {
		_, closeRestServer := setupAPIServer(&wg, pool, logger)
		shutdownOrder = append([]shutdownFunc{closeRestServer}, shutdownOrder...)
	}

	// Block until we receive a signal to shut down.
	<-interrupt
	level.Info(logger).Log("msg", "received interrupt signal, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown all components.
	for _, f := range shutdownOrder {
		if err := f(ctx); err != nil {
			level.Error(logger).Log("msg", "failed to shutdown component", "err", err)
		}
	}

	// Wait for all components to finish background tasks.
	wg.Wait()
}
