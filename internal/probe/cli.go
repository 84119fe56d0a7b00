package probe

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/wcdash/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging logs to stdout and to logFile. If logFile is empty, a
// timestamped filename is generated. The returned closer flushes the file.
func SetupLogging(logFile string) (io.Closer, error) {
	if logFile == "" {
		logFile = "probe_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithOutput(io.MultiWriter(os.Stdout, file))); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return file, nil
}

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`World Cup Dashboard Probe
=========================

Checks a running dashboard: reads every feed, queries every country and
year, and verifies the answers agree with each other.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the dashboard (default "http://localhost:8080")
  -workers int
        Number of concurrent lookup workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -legacy string
        Comma separated names that must not appear after normalization (default "West Germany")
  -log string
        Log file for probe output (default: probe_TIMESTAMP.log)
  -verbose
        Log every lookup
  -help
        Show this help message

Examples:
  go run ./cmd/probe
  go run ./cmd/probe -url http://127.0.0.1:8080 -workers 4 -verbose
`)
}
