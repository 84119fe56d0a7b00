package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/okian/wcdash/internal/probe"
)

// Default configuration constants.
const (
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 10 * time.Second
	defaultProbeTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "Base URL of the dashboard")
		workers = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent lookup workers")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		legacy  = flag.String("legacy", "West Germany", "Comma separated names that must not appear after normalization")
		logFile = flag.String("log", "", "Log file for probe output (default: probe_TIMESTAMP.log)")
		verbose = flag.Bool("verbose", false, "Log every lookup")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	closer, err := probe.SetupLogging(*logFile)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), defaultProbeTimeout)
	defer cancel()

	config := &probe.Config{
		BaseURL:     strings.TrimRight(*baseURL, "/"),
		Workers:     *workers,
		Timeout:     *timeout,
		LegacyNames: splitNames(*legacy),
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	if _, err := probe.Run(ctx, config, os.Stdout); err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		closer.Close()
		cancel()
		os.Exit(1)
	}
}

func splitNames(s string) []string {
	var out []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
