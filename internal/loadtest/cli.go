package loadtest

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mergington/activities/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging sends log output to stdout and logFile. If logFile is empty,
// a timestamped filename is generated. The returned closer flushes the file.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "signup_load_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stdout, file))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}

	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return file, nil
}

// ShowHelp prints usage information for the load tool.
func ShowHelp() {
	os.Stdout.WriteString(`Mergington Signup Load Tool
===========================

Drives concurrent signups and unregistrations against a running activities
server, then checks that no roster holds an email twice and that every
accepted change is reflected in GET /activities.

Usage:
  signup-load [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -students int
        Number of generated students (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -duplicate-every int
        Every Nth student retries its signup (default 5, 0 disables)
  -unregister-every int
        Every Nth student unregisters afterwards (default 3, 0 disables)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for run output (default: signup_load_TIMESTAMP.log)
  -verbose
        Log every request
  -help
        Show this help message

Examples:
  signup-load -students 5000 -workers 32
  signup-load -url http://localhost:8080 -duplicate-every 1
`)
}
