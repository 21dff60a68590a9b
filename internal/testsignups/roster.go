package testsignups

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"sync"
	"sync/atomic"
)

// fetchCatalog retrieves the full activity catalog.
func fetchCatalog(ctx context.Context, config *Config) (map[string]ActivityDetails, error) {
	log.Printf("📚 Fetching the activity catalog...")

	client := newHTTPClient(config.Timeout)
	endpoint := config.BaseURL + "/activities"

	resp, err := client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var catalog map[string]ActivityDetails
	if err := unmarshalJSON(body, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	log.Printf("✅ Catalog lists %d activities", len(catalog))

	return catalog, nil
}

// activityNames returns the catalog's activity names in a stable order.
func activityNames(catalog map[string]ActivityDetails) []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// retrieveRosters retrieves the roster of every activity concurrently.
func retrieveRosters(ctx context.Context, config *Config, names []string, stats *Stats) (map[string]ActivityDetails, error) {
	log.Printf("📋 Retrieving rosters for %d activities with %d workers...", len(names), config.Workers)

	client := newHTTPClient(config.Timeout)

	// Results storage
	rosters := make([]ActivityDetails, len(names))
	found := make([]bool, len(names))
	var failed int64

	// Create worker pool
	nameChan := make(chan int, config.Workers*WorkerChannelMultiplier) // Send indices instead of names
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for index := range nameChan {
				select {
				case <-ctx.Done():
					return
				default:
					name := names[index]
					details, err := retrieveSingleRoster(ctx, client, config.BaseURL, name)

					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to get roster for %s: %v", name, err)
						}
					} else {
						rosters[index] = details
						found[index] = true
					}
				}
			}
		}(i)
	}

	// Send activity indices to workers
	go func() {
		defer close(nameChan)
		for i := range names {
			select {
			case <-ctx.Done():
				return
			case nameChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Keep only activities that answered
	valid := make(map[string]ActivityDetails, len(names))
	entries := 0
	for i, name := range names {
		if found[i] {
			valid[name] = rosters[i]
			entries += len(rosters[i].Participants)
		}
	}

	// Update stats
	stats.RostersRetrieved = len(valid)
	stats.RosterEntries = entries

	log.Printf(`✅ Roster retrieval completed:
   Retrieved: %d
   Failed: %d
`, len(valid), int(atomic.LoadInt64(&failed)))

	return valid, nil
}

// retrieveSingleRoster retrieves the details of a single activity.
func retrieveSingleRoster(ctx context.Context, client *HTTPClient, baseURL, name string) (ActivityDetails, error) {
	endpoint := baseURL + "/activities/" + url.PathEscape(name)

	resp, err := client.Get(ctx, endpoint)
	if err != nil {
		return ActivityDetails{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return ActivityDetails{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return ActivityDetails{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var details ActivityDetails
	if err := unmarshalJSON(body, &details); err != nil {
		return ActivityDetails{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return details, nil
}

// getAuditTrail retrieves the most recent roster changes.
func getAuditTrail(ctx context.Context, config *Config, stats *Stats) ([]RosterChange, error) {
	log.Printf("🧾 Getting the last %d audit entries...", config.AuditLimit)

	client := newHTTPClient(config.Timeout)
	endpoint := fmt.Sprintf("%s/audit?limit=%d", config.BaseURL, config.AuditLimit)

	resp, err := client.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var changes []RosterChange
	if err := unmarshalJSON(body, &changes); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.AuditEntries = len(changes)
	log.Printf("✅ Retrieved %d audit entries", len(changes))

	return changes, nil
}
