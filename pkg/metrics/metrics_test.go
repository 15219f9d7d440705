package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithPrometheusRegistry(registry),
			)
			manager.activities.Set(3)

			Convey("Then the options should be applied", func() {
				So(manager.Enabled(), ShouldBeFalse)
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_namespace_test_subsystem_activity_count")
			})
		})

		Convey("When creating with empty or invalid option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(-time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "mergington")
				So(manager.subsystem, ShouldEqual, "activities")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestSignupMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording signups for an activity", func() {
			before := testutil.ToFloat64(globalManager.signups.WithLabelValues("Metrics Club"))
			RecordSignup("Metrics Club")
			RecordSignup("Metrics Club")

			Convey("Then the counter should increase", func() {
				after := testutil.ToFloat64(globalManager.signups.WithLabelValues("Metrics Club"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When recording a rejection", func() {
			signup := globalManager.rosterRejections.WithLabelValues("signup", "Metrics Club", "already_registered")
			unregister := globalManager.rosterRejections.WithLabelValues("unregister", "Metrics Club", "not_registered")
			beforeSignup := testutil.ToFloat64(signup)
			beforeUnregister := testutil.ToFloat64(unregister)
			RecordRosterRejected("signup", "Metrics Club", "already_registered")
			RecordRosterRejected("unregister", "Metrics Club", "not_registered")
			RecordRosterRejected("unregister", "Metrics Club", "not_registered")

			Convey("Then each operation should be counted under its own label", func() {
				So(testutil.ToFloat64(signup)-beforeSignup, ShouldEqual, 1)
				So(testutil.ToFloat64(unregister)-beforeUnregister, ShouldEqual, 2)
			})

			Convey("And the counter should be exposed as roster_rejections_total", func() {
				count, err := testutil.GatherAndCount(GetRegistry(), "mergington_activities_roster_rejections_total")
				So(err, ShouldBeNil)
				So(count, ShouldBeGreaterThanOrEqualTo, 2)
			})
		})

		Convey("When recording is disabled", func() {
			SetEnabled(false)
			defer SetEnabled(true)
			before := testutil.ToFloat64(globalManager.unregistrations.WithLabelValues("Metrics Club"))
			RecordUnregister("Metrics Club")

			Convey("Then counters should not move", func() {
				after := testutil.ToFloat64(globalManager.unregistrations.WithLabelValues("Metrics Club"))
				So(after, ShouldEqual, before)
			})
		})

		Convey("When updating gauges", func() {
			UpdateParticipants("Metrics Club", 7)
			UpdateActivityCount(9)

			Convey("Then they should hold the latest values", func() {
				So(testutil.ToFloat64(globalManager.participants.WithLabelValues("Metrics Club")), ShouldEqual, 7)
				So(testutil.ToFloat64(globalManager.activities), ShouldEqual, 9)
			})
		})
	})
}

func TestHTTPAndErrorMetrics(t *testing.T) {
	Convey("Given HTTP and error recorders", t, func() {
		Convey("When recording with edge values", func() {
			So(func() {
				RecordHTTPRequest("activities", "GET", "200")
				RecordHTTPRequestDuration("activities", "GET", "200", 0)
				RecordHTTPRequest("", "", "")
				RecordErrorByType("not_found", "medium")
				RecordErrorByEndpoint("signup", "POST", "client_error")
				RecordErrorLatency("http", "not_found", 30000)
				UpdateSystemMemoryUsage(0)
				UpdateSystemGoroutineCount(-1)
				RecordSystemGCPauseTime(1.5)
			}, ShouldNotPanic)
		})

		Convey("When gathering the custom registry", func() {
			RecordHTTPRequest("activities", "GET", "200")
			count, err := testutil.GatherAndCount(GetRegistry(), "mergington_activities_http_requests_total")

			Convey("Then the request counter should be exposed", func() {
				So(err, ShouldBeNil)
				So(count, ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			for i := 0; i < 10; i++ {
				go func() {
					for j := 0; j < 100; j++ {
						RecordSignup("Concurrency Club")
						UpdateParticipants("Concurrency Club", j)
						RecordHTTPRequest("signup", "POST", "200")
					}
					done <- true
				}()
			}

			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue)
			})
		})
	})
}

func TestSetEnabledConcurrency(t *testing.T) {
	Convey("Given recorders running on several goroutines", t, func() {
		var wg sync.WaitGroup
		stop := make(chan struct{})

		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					select {
					case <-stop:
						return
					default:
						RecordSignup("Toggle Club")
						RecordRosterRejected("signup", "Toggle Club", "already_registered")
					}
				}
			}()
		}

		Convey("When recording is toggled at the same time", func() {
			for i := 0; i < 100; i++ {
				SetEnabled(i%2 == 0)
			}
			SetEnabled(true)
			close(stop)
			wg.Wait()

			Convey("Then recording should end up enabled", func() {
				So(globalManager.Enabled(), ShouldBeTrue)
			})
		})
	})
}
