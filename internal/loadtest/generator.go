package loadtest

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/mergington/activities/pkg/logger"
)

// Plan is the generated workload: signups first, then unregistrations.
type Plan struct {
	Signups     []Job
	Unregisters []Job
}

// generatePlan assigns uuid-based students to activities round robin.
// Activities are taken in name order so a plan is reproducible for a catalog.
func generatePlan(ctx context.Context, config *Config, activities []string, stats *Stats) (*Plan, error) {
	if len(activities) == 0 {
		return nil, fmt.Errorf("no activities to sign up for")
	}
	if config.NumStudents <= 0 {
		return nil, fmt.Errorf("number of students must be positive, got %d", config.NumStudents)
	}

	names := append([]string(nil), activities...)
	sort.Strings(names)

	domain := config.EmailDomain
	if domain == "" {
		domain = "loadtest.mergington.edu"
	}

	plan := &Plan{Signups: make([]Job, 0, config.NumStudents)}
	for i := 0; i < config.NumStudents; i++ {
		job := Job{
			Activity: names[i%len(names)],
			Email:    "student-" + uuid.NewString() + "@" + domain,
		}
		plan.Signups = append(plan.Signups, job)

		if every(config.DuplicateEvery, i) {
			plan.Signups = append(plan.Signups, job)
		}
		if every(config.UnregisterEvery, i) {
			job.Unregister = true
			plan.Unregisters = append(plan.Unregisters, job)
		}
	}

	stats.Students = config.NumStudents
	logger.Get().Info(ctx, "generated workload",
		logger.Int("students", config.NumStudents),
		logger.Int("signupRequests", len(plan.Signups)),
		logger.Int("unregisterRequests", len(plan.Unregisters)))

	return plan, nil
}

func every(n, i int) bool {
	return n > 0 && i%n == 0
}
