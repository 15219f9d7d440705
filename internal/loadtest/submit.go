package loadtest

import (
	"context"
	"sync"

	"github.com/mergington/activities/pkg/logger"
)

// result pairs a job with the outcome the server reported.
type result struct {
	job     Job
	outcome Outcome
}

// submitJobs sends jobs through a pool of config.Workers goroutines.
func submitJobs(ctx context.Context, config *Config, client *HTTPClient, jobs []Job) []result {
	workers := config.Workers
	if workers <= 0 {
		workers = 1
	}

	jobChan := make(chan Job, workers*WorkerChannelMultiplier)
	resultChan := make(chan result, len(jobs))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				outcome := client.Do(ctx, job)
				if config.Verbose {
					logger.Get().Debug(ctx, "request completed",
						logger.String("activity", job.Activity),
						logger.String("email", job.Email),
						logger.Bool("unregister", job.Unregister),
						logger.String("outcome", string(outcome)))
				}
				resultChan <- result{job: job, outcome: outcome}
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobChan <- job:
			}
		}
	}()

	wg.Wait()
	close(resultChan)

	results := make([]result, 0, len(jobs))
	for r := range resultChan {
		results = append(results, r)
	}
	return results
}
