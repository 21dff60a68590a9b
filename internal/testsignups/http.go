package testsignups

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with an empty body. The signup endpoints
// take all their input from the URL path and query string.
func (c *HTTPClient) Post(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// signupURL builds the signup endpoint URL for a single signup.
func signupURL(baseURL string, signup Signup) string {
	return baseURL + "/activities/" + url.PathEscape(signup.Activity) + "/signup?email=" + url.QueryEscape(signup.Email)
}

// submitSignups submits signups concurrently using worker pools
func submitSignups(ctx context.Context, config *Config, signups []Signup, stats *Stats) error {
	log.Printf("📤 Submitting %d signups with %d workers...", len(signups), config.Workers)

	client := newHTTPClient(config.Timeout)

	// Counters for statistics
	var (
		successful int64
		conflicted int64
		failed     int64
		submitted  int64
	)

	// Progress reporting
	var lastReportNano int64
	reportInterval := 1 * time.Second

	// Create worker pool
	signupChan := make(chan Signup, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for signup := range signupChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleSignup(ctx, client, config.BaseURL, signup)

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch result {
					case "success":
						atomic.AddInt64(&successful, 1)
					case "conflict":
						atomic.AddInt64(&conflicted, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting
					now := time.Now()
					last := atomic.LoadInt64(&lastReportNano)
					if now.UnixNano()-last >= int64(reportInterval) && atomic.CompareAndSwapInt64(&lastReportNano, last, now.UnixNano()) {
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						conf := atomic.LoadInt64(&conflicted)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (success: %d, conflict: %d, failed: %d)",
								total, len(signups), succ, conf, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (success: %d, conflict: %d, failed: %d)",
								total, len(signups), succ, conf, fail)
						}
					}
				}
			}
		}(i)
	}

	// Send signups to workers
	go func() {
		defer close(signupChan)
		for _, signup := range signups {
			select {
			case <-ctx.Done():
				return
			case signupChan <- signup:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.SignupsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SignupsSuccessful = int(atomic.LoadInt64(&successful))
	stats.SignupsConflicted = int(atomic.LoadInt64(&conflicted))
	stats.SignupsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Signup submission completed:
   Successful: %d
   Conflict: %d
   Failed: %d
`, stats.SignupsSuccessful, stats.SignupsConflicted, stats.SignupsFailed)

	return nil
}

// submitSingleSignup submits a single signup and returns the result
func submitSingleSignup(ctx context.Context, client *HTTPClient, baseURL string, signup Signup) string {
	resp, err := client.Post(ctx, signupURL(baseURL, signup))
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	// Parse response based on status code
	switch resp.StatusCode {
	case StatusOK:
		// OK - student added to the roster
		var msg MessageResponse
		if err := unmarshalJSON(body, &msg); err == nil && msg.Message != "" {
			return "success"
		}
		return "success" // Assume success for 200 even if parsing fails
	case StatusBadRequest:
		// Bad request - student already on the roster
		var errResp ErrorResponse
		if err := unmarshalJSON(body, &errResp); err == nil && errResp.Code == "already_signed_up" {
			return "conflict"
		}
		return "conflict" // Assume conflict for 400 even if parsing fails
	default:
		// Error
		return "failed"
	}
}
