package testsignups

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mergington/activities/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "test_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the signup test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Mergington Activities Signup Test Tool
======================================

A concurrent tool for exercising the school activities signup service.

Usage:
  go run cmd/test-signups/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -signups int
        Number of signups to generate and submit (default 500)
  -audit int
        Number of audit entries to fetch after the run (default 100)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated signups (default: generated_signups_TIMESTAMP.json)
  -log string
        Log file for test output (default: test_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/test-signups/main.go

  # Test with custom parameters
  go run cmd/test-signups/main.go -signups 2000 -workers 16 -url http://localhost:8000

  # Test with verbose output
  go run cmd/test-signups/main.go -verbose -signups 1000

  # Test with custom log file
  go run cmd/test-signups/main.go -signups 2000 -log my_test.log
`)
}
