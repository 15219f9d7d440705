package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/mergington/activities/internal/loadtest"
	"github.com/mergington/activities/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumStudents     = 1000
	defaultWorkers         = 2 // multiplier for runtime.NumCPU()
	defaultDuplicateEvery  = 5
	defaultUnregisterEvery = 3
	defaultTimeout         = 30 * time.Second
	defaultRunTimeout      = 10 * time.Minute
)

func main() {
	var (
		baseURL         = flag.String("url", "http://localhost:8000", "Base URL of the service")
		numStudents     = flag.Int("students", defaultNumStudents, "Number of generated students")
		workers         = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		duplicateEvery  = flag.Int("duplicate-every", defaultDuplicateEvery, "Every Nth student retries its signup (0 disables)")
		unregisterEvery = flag.Int("unregister-every", defaultUnregisterEvery, "Every Nth student unregisters afterwards (0 disables)")
		timeout         = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile         = flag.String("log", "", "Log file for run output (default: signup_load_TIMESTAMP.log)")
		verbose         = flag.Bool("verbose", false, "Log every request")
		help            = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp()
		return
	}

	closer, err := loadtest.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &loadtest.Config{
		BaseURL:         *baseURL,
		NumStudents:     *numStudents,
		Workers:         *workers,
		Timeout:         *timeout,
		DuplicateEvery:  *duplicateEvery,
		UnregisterEvery: *unregisterEvery,
		LogFile:         *logFile,
		Verbose:         *verbose,
	}

	if _, err := loadtest.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "load run failed", logger.Error(err))
		closer.Close()
		os.Exit(1)
	}
}
