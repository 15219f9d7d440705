package loadtest

import (
	"context"
	"fmt"

	"github.com/mergington/activities/pkg/logger"
)

// expectation is the roster state a run should leave behind for its students.
type expectation struct {
	present map[string]map[string]struct{}
	absent  map[string]map[string]struct{}
}

// buildExpectation replays signup and unregister results. A student is
// expected present after an accepted signup and absent after an accepted
// unregistration or a rejected (full) signup.
func buildExpectation(signups, unregisters []result, stats *Stats) (*expectation, error) {
	exp := &expectation{
		present: make(map[string]map[string]struct{}),
		absent:  make(map[string]map[string]struct{}),
	}
	add := func(m map[string]map[string]struct{}, activity, email string) {
		if m[activity] == nil {
			m[activity] = make(map[string]struct{})
		}
		m[activity][email] = struct{}{}
	}

	accepted := make(map[Job]int)
	for _, r := range signups {
		switch r.outcome {
		case OutcomeOK:
			stats.Signups++
			accepted[r.job]++
			add(exp.present, r.job.Activity, r.job.Email)
		case OutcomeDuplicate:
			stats.Duplicates++
		case OutcomeFull:
			stats.Full++
			add(exp.absent, r.job.Activity, r.job.Email)
		default:
			stats.Failed++
		}
	}
	for job, n := range accepted {
		if n > 1 {
			stats.Violations++
			return exp, fmt.Errorf("%s was accepted %d times for %q", job.Email, n, job.Activity)
		}
	}

	for _, r := range unregisters {
		signup := r.job
		signup.Unregister = false
		switch r.outcome {
		case OutcomeOK:
			stats.Unregisters++
			delete(exp.present[signup.Activity], signup.Email)
			add(exp.absent, signup.Activity, signup.Email)
		case OutcomeNotRegistered:
			if accepted[signup] > 0 {
				stats.Violations++
				return exp, fmt.Errorf("%s signed up for %q but was reported not registered", signup.Email, signup.Activity)
			}
		default:
			stats.Failed++
		}
	}

	return exp, nil
}

// verifyRosters checks the listing against exp and the no-duplicates invariant.
func verifyRosters(ctx context.Context, activities map[string]Activity, exp *expectation, stats *Stats) error {
	logger.Get().Info(ctx, "verifying rosters", logger.Int("activities", len(activities)))

	var firstErr error
	fail := func(err error) {
		stats.Violations++
		logger.Get().Warn(ctx, "roster violation", logger.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}

	for name, a := range activities {
		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if _, dup := seen[email]; dup {
				fail(fmt.Errorf("%s appears more than once in %q", email, name))
			}
			seen[email] = struct{}{}
		}

		for email := range exp.present[name] {
			if _, ok := seen[email]; !ok {
				fail(fmt.Errorf("%s missing from %q", email, name))
			}
		}
		for email := range exp.absent[name] {
			if _, ok := seen[email]; ok {
				fail(fmt.Errorf("%s still listed in %q", email, name))
			}
		}
	}

	if firstErr != nil {
		return firstErr
	}

	logger.Get().Info(ctx, "rosters verified")
	return nil
}
