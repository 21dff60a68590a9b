package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with a metric prefix", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithMetricPrefix("edge"),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metric names should carry the prefix", func() {
				So(manager, ShouldNotBeNil)
				So(manager.metricName("signups_total"), ShouldEqual, "edge_signups_total")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording roster metrics", func() {
			Convey("Then it should record signups", func() {
				So(func() {
					RecordSignup()
					RecordSignup()
					RecordSignup()
				}, ShouldNotPanic)
			})

			Convey("And it should record unregistrations", func() {
				So(func() {
					RecordUnregistration()
					RecordUnregistration()
				}, ShouldNotPanic)
			})

			Convey("And it should record signup conflicts", func() {
				So(func() {
					RecordSignupConflict()
					RecordSignupConflict()
				}, ShouldNotPanic)
			})

			Convey("And it should record unregister conflicts", func() {
				So(func() {
					RecordUnregisterConflict()
				}, ShouldNotPanic)
			})

			Convey("And it should record activity lookup misses", func() {
				So(func() {
					RecordActivityLookupMiss()
					RecordActivityLookupMiss()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording catalog metrics", func() {
			Convey("Then it should update the activity count", func() {
				So(func() {
					UpdateActivityCount(9)
					UpdateActivityCount(10)
				}, ShouldNotPanic)
			})

			Convey("And it should update the participant total", func() {
				So(func() {
					UpdateParticipantsTotal(13)
					UpdateParticipantsTotal(14)
				}, ShouldNotPanic)
			})

			Convey("And it should update per-activity roster sizes", func() {
				So(func() {
					UpdateRosterSize("Chess Club", 2)
					UpdateRosterSize("Basketball", 1)
					UpdateRosterSize("Drama Club", 2)
				}, ShouldNotPanic)
			})

			Convey("And it should update per-activity roster utilization", func() {
				So(func() {
					UpdateRosterUtilization("Chess Club", 0.1666)
					UpdateRosterUtilization("Basketball", 0.0667)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording registry metrics", func() {
			Convey("Then it should record registry update latency", func() {
				So(func() {
					RecordRegistryUpdateLatency(0.5)
					RecordRegistryUpdateLatency(1.0)
					RecordRegistryUpdateLatency(2.5)
				}, ShouldNotPanic)
			})

			Convey("And it should record registry query latency", func() {
				So(func() {
					RecordRegistryQueryLatency(0.1)
					RecordRegistryQueryLatency(0.2)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording audit trail metrics", func() {
			Convey("Then it should record recorded and dropped changes", func() {
				So(func() {
					RecordAuditChangeRecorded()
					RecordAuditChangeRecorded()
					RecordAuditChangeDropped()
				}, ShouldNotPanic)
			})

			Convey("And it should update trail gauges", func() {
				So(func() {
					UpdateAuditTrailSize(12)
					UpdateAuditTrailCapacity(1024)
					UpdateAuditTrailUtilization(0.0117)
					UpdateAuditHistorySize(256)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record HTTP requests", func() {
				So(func() {
					RecordHTTPRequest("/activities", "GET", "200")
					RecordHTTPRequest("/activities/signup", "POST", "200")
					RecordHTTPRequest("/healthz", "GET", "200")
				}, ShouldNotPanic)
			})

			Convey("And it should record HTTP request duration", func() {
				So(func() {
					RecordHTTPRequestDuration("/activities", "GET", "200", 5.0)
					RecordHTTPRequestDuration("/activities/signup", "POST", "200", 10.0)
					RecordHTTPRequestDuration("/healthz", "GET", "200", 1.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording error metrics", func() {
			Convey("Then it should record errors by component", func() {
				So(func() {
					RecordErrorByComponent("registry", "not_found")
					RecordErrorByComponent("audit", "trail_full")
					RecordErrorByComponent("http", "bad_request")
				}, ShouldNotPanic)
			})

			Convey("And it should record errors by type", func() {
				So(func() {
					RecordErrorByType("not_found", "warning")
					RecordErrorByType("already_signed_up", "warning")
					RecordErrorByType("internal_error", "error")
				}, ShouldNotPanic)
			})

			Convey("And it should record errors by endpoint", func() {
				So(func() {
					RecordErrorByEndpoint("/activities/signup", "POST", "not_found")
					RecordErrorByEndpoint("/activities/unregister", "POST", "not_registered")
					RecordErrorByEndpoint("/audit", "GET", "bad_request")
				}, ShouldNotPanic)
			})

			Convey("And it should record error latency", func() {
				So(func() {
					RecordErrorLatency("registry", "not_found", 1.0)
					RecordErrorLatency("http", "bad_request", 0.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording system metrics", func() {
			Convey("Then it should update system memory usage", func() {
				So(func() {
					UpdateSystemMemoryUsage(1024 * 1024 * 100)
					UpdateSystemMemoryUsage(1024 * 1024 * 200)
				}, ShouldNotPanic)
			})

			Convey("And it should update system goroutine count", func() {
				So(func() {
					UpdateSystemGoroutineCount(100)
					UpdateSystemGoroutineCount(200)
				}, ShouldNotPanic)
			})

			Convey("And it should record system GC pause time", func() {
				So(func() {
					RecordSystemGCPauseTime(1.0)
					RecordSystemGCPauseTime(2.0)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsEdgeCases(t *testing.T) {
	Convey("Given metrics edge cases", t, func() {
		Convey("When recording metrics with edge values", func() {
			Convey("And using zero values", func() {
				So(func() {
					UpdateActivityCount(0)
					UpdateParticipantsTotal(0)
					UpdateRosterSize("Chess Club", 0)
					RecordRegistryUpdateLatency(0.0)
					RecordHTTPRequestDuration("/test", "GET", "200", 0.0)
				}, ShouldNotPanic)
			})

			Convey("And using negative values", func() {
				So(func() {
					UpdateActivityCount(-1)
					UpdateParticipantsTotal(-100)
					UpdateAuditTrailSize(-5)
				}, ShouldNotPanic)
			})

			Convey("And using very large values", func() {
				So(func() {
					UpdateParticipantsTotal(1000000)
					UpdateAuditTrailCapacity(10000000)
					RecordRegistryQueryLatency(10000.0)
					RecordHTTPRequestDuration("/test", "GET", "200", 30000.0)
				}, ShouldNotPanic)
			})

			Convey("And using empty strings", func() {
				So(func() {
					RecordHTTPRequest("", "", "200")
					RecordHTTPRequestDuration("", "", "200", 10.0)
					RecordErrorByComponent("", "")
					RecordErrorByType("", "")
					RecordErrorByEndpoint("", "", "")
					RecordErrorLatency("", "", 10.0)
					UpdateRosterSize("", 0)
				}, ShouldNotPanic)
			})

			Convey("And using special characters in labels", func() {
				So(func() {
					RecordHTTPRequest("/activities/Chess Club/signup?email=a@b", "POST", "200")
					UpdateRosterSize("Gym Class", 2)
					RecordErrorByComponent("component-with-dash", "error_with_underscore")
					RecordErrorByType("error.with.dots", "error")
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			// Start multiple goroutines recording metrics
			for i := 0; i < 10; i++ {
				go func(id int) {
					for j := 0; j < 100; j++ {
						RecordSignup()
						UpdateRosterSize("Chess Club", j)
						RecordRegistryUpdateLatency(float64(j))
						RecordHTTPRequest("/activities", "GET", "200")
					}
					done <- true
				}(i)
			}

			// Wait for all goroutines to complete
			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue) // If we get here, no panics occurred
			})
		})
	})
}

func TestMetricsOptionsValidation(t *testing.T) {
	Convey("Given metrics options validation", t, func() {
		Convey("When creating with empty namespace", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty subsystem", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithSubsystem(""), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty metric prefix", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithMetricPrefix(""), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with nil histogram buckets", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with nil custom labels", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithCustomLabels(nil), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with zero refresh interval", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRefreshInterval(0), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with negative refresh interval", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRefreshInterval(-1*time.Second), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}
