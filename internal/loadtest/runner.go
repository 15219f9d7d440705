package loadtest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mergington/activities/pkg/logger"
)

// Run executes the complete load run.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting signup load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("students", config.NumStudents),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Bool("verbose", config.Verbose))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Discover the catalog
	before, err := client.Activities(ctx)
	if err != nil {
		return stats, fmt.Errorf("activity discovery failed: %w", err)
	}
	names := make([]string, 0, len(before))
	for name := range before {
		names = append(names, name)
	}

	// Step 3: Generate the workload
	plan, err := generatePlan(ctx, config, names, stats)
	if err != nil {
		return stats, fmt.Errorf("workload generation failed: %w", err)
	}

	// Step 4: Submit signups, then unregistrations
	signups := submitJobs(ctx, config, client, plan.Signups)
	unregisters := submitJobs(ctx, config, client, plan.Unregisters)

	exp, err := buildExpectation(signups, unregisters, stats)
	if err != nil {
		return stats, fmt.Errorf("response verification failed: %w", err)
	}

	// Step 5: Verify the final listing
	after, err := client.Activities(ctx)
	if err != nil {
		return stats, fmt.Errorf("final listing failed: %w", err)
	}
	if err := verifyRosters(ctx, after, exp, stats); err != nil {
		return stats, fmt.Errorf("roster verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "load run completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if _, err := readResponseBody(resp); err != nil {
		return fmt.Errorf("failed to read health response: %w", err)
	}

	// Any 200 is healthy; the body is Prometheus exposition.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, requestsPerSecond float64

	total := stats.Signups + stats.Duplicates + stats.Full + stats.Unregisters + stats.Failed
	if total > 0 {
		successRate = float64(total-stats.Failed) / float64(total) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(total) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("students", stats.Students),
		logger.Int("signups", stats.Signups),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("full", stats.Full),
		logger.Int("unregisters", stats.Unregisters),
		logger.Int("failed", stats.Failed),
		logger.Int("violations", stats.Violations),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
