package testsignups

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mergington/activities/pkg/logger"
)

// generateSignups creates the specified number of signups with unique student
// emails spread round-robin across the given activities. Every
// duplicateEvery-th signup repeats the one before it so a predictable share
// of submissions exercises the already-signed-up path.
func generateSignups(ctx context.Context, config *Config, activities []string, stats *Stats) ([]Signup, error) {
	if len(activities) == 0 {
		return nil, fmt.Errorf("no activities available to sign up for")
	}

	logger.Get().Info(ctx, "generating signups with unique student emails", logger.Int("numSignups", config.NumSignups))

	signups := make([]Signup, config.NumSignups)

	// Pre-allocate emails to ensure uniqueness
	emails := make([]string, config.NumSignups)
	for i := 0; i < config.NumSignups; i++ {
		emails[i] = "student-" + uuid.New().String() + "@mergington.edu"
	}

	// Generate signups concurrently
	type signupResult struct {
		index  int
		signup Signup
		err    error
	}

	resultChan := make(chan signupResult, config.NumSignups)

	// Use worker pool for signup generation
	workerCount := minInt(config.Workers, config.NumSignups)
	signupsPerWorker := config.NumSignups / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * signupsPerWorker
		end := start + signupsPerWorker
		if worker == workerCount-1 {
			end = config.NumSignups // Last worker gets remaining signups
		}

		go func(_ int, start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- signupResult{index: i, err: ctx.Err()}
					return
				default:
					signup := generateSingleSignup(i, emails[i], activities)
					resultChan <- signupResult{index: i, signup: signup, err: nil}
				}
			}
		}(worker, start, end)
	}

	// Collect results
	for i := 0; i < config.NumSignups; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during signup generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate signup %d: %w", result.index, result.err)
			}
			signups[result.index] = result.signup
		}
	}

	// Repeat every duplicateEvery-th signup to provoke conflicts
	for i := duplicateEvery - 1; i < config.NumSignups; i += duplicateEvery {
		if i > 0 {
			signups[i] = signups[i-1]
		}
	}

	stats.SignupsGenerated = len(signups)
	logger.Get().Info(ctx, "generated signups successfully", logger.Int("count", len(signups)))

	return signups, nil
}

// generateSingleSignup creates a single signup for the given index and email.
func generateSingleSignup(index int, email string, activities []string) Signup {
	return Signup{
		Activity: activities[index%len(activities)],
		Email:    email,
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
