package loadtest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mergington/activities/internal/adapters/http/api"
	service "github.com/mergington/activities/internal/app"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newServer(opts ...service.Option) (*httptest.Server, func()) {
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	mux := http.NewServeMux()
	api.NewServer(svc, svc, logger.Get()).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	return srv, func() {
		srv.Close()
		svc.Stop()
	}
}

func TestGeneratePlan(t *testing.T) {
	Convey("Given a config with duplicates and unregistrations", t, func() {
		cfg := &Config{NumStudents: 10, DuplicateEvery: 5, UnregisterEvery: 2, EmailDomain: "example.edu"}
		stats := &Stats{}

		Convey("When generating a plan over two activities", func() {
			plan, err := generatePlan(context.Background(), cfg, []string{"B Club", "A Club"}, stats)

			Convey("Then students should be spread round robin by name", func() {
				So(err, ShouldBeNil)
				So(plan.Signups[0].Activity, ShouldEqual, "A Club")
				So(plan.Signups[0].Email, ShouldEndWith, "@example.edu")
				So(stats.Students, ShouldEqual, 10)
			})

			Convey("And duplicate and unregister jobs should be added", func() {
				So(len(plan.Signups), ShouldEqual, 12)
				So(len(plan.Unregisters), ShouldEqual, 5)
				for _, job := range plan.Unregisters {
					So(job.Unregister, ShouldBeTrue)
				}
			})
		})

		Convey("When there are no activities", func() {
			_, err := generatePlan(context.Background(), cfg, nil, stats)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given server responses", t, func() {
		cases := []struct {
			status int
			body   string
			want   Outcome
		}{
			{http.StatusOK, `{"message":"ok"}`, OutcomeOK},
			{http.StatusBadRequest, `{"detail":"Student already signed up for this activity"}`, OutcomeDuplicate},
			{http.StatusBadRequest, `{"detail":"Activity is full"}`, OutcomeFull},
			{http.StatusNotFound, `{"detail":"Student not registered for this activity"}`, OutcomeNotRegistered},
			{http.StatusNotFound, `{"detail":"Activity not found"}`, OutcomeNotFound},
			{http.StatusInternalServerError, `oops`, OutcomeFailed},
		}

		Convey("Then each should map to its outcome", func() {
			for _, tc := range cases {
				So(classify(tc.status, []byte(tc.body)), ShouldEqual, tc.want)
			}
		})
	})
}

func TestBuildExpectation(t *testing.T) {
	Convey("Given a signup accepted twice for one student", t, func() {
		job := Job{Activity: "Chess Club", Email: "a@x"}
		signups := []result{{job: job, outcome: OutcomeOK}, {job: job, outcome: OutcomeOK}}

		Convey("Then it should report a violation", func() {
			stats := &Stats{}
			_, err := buildExpectation(signups, nil, stats)
			So(err, ShouldNotBeNil)
			So(stats.Violations, ShouldEqual, 1)
		})
	})

	Convey("Given a signup followed by an accepted unregistration", t, func() {
		job := Job{Activity: "Chess Club", Email: "a@x"}
		undo := job
		undo.Unregister = true
		stats := &Stats{}
		exp, err := buildExpectation(
			[]result{{job: job, outcome: OutcomeOK}, {job: job, outcome: OutcomeDuplicate}},
			[]result{{job: undo, outcome: OutcomeOK}},
			stats,
		)

		Convey("Then the student should be expected absent", func() {
			So(err, ShouldBeNil)
			So(exp.present["Chess Club"], ShouldNotContainKey, "a@x")
			So(exp.absent["Chess Club"], ShouldContainKey, "a@x")
			So(stats.Signups, ShouldEqual, 1)
			So(stats.Duplicates, ShouldEqual, 1)
			So(stats.Unregisters, ShouldEqual, 1)
		})
	})
}

func TestVerifyRosters(t *testing.T) {
	Convey("Given a listing with a duplicated email", t, func() {
		listing := map[string]Activity{
			"Chess Club": {Participants: []string{"a@x", "a@x"}},
		}
		stats := &Stats{}

		Convey("Then verification should fail", func() {
			err := verifyRosters(context.Background(), listing, &expectation{}, stats)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "more than once")
			So(stats.Violations, ShouldEqual, 1)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running activities server", t, func() {
		srv, cleanup := newServer()
		defer cleanup()

		Convey("When driving a concurrent load run", func() {
			cfg := &Config{
				BaseURL:         srv.URL,
				NumStudents:     60,
				Workers:         8,
				Timeout:         5 * time.Second,
				DuplicateEvery:  2,
				UnregisterEvery: 3,
			}
			stats, err := Run(context.Background(), cfg)

			Convey("Then every roster invariant should hold", func() {
				So(err, ShouldBeNil)
				So(stats.Signups, ShouldEqual, 60)
				So(stats.Duplicates, ShouldEqual, 30)
				So(stats.Unregisters, ShouldEqual, 20)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Violations, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a server enforcing capacity", t, func() {
		srv, cleanup := newServer(
			service.WithSeeds(map[string]model.Seed{
				"Tiny Club": {Description: "d", Schedule: "s", MaxParticipants: 2},
			}),
			service.WithCapacityEnforced(true),
		)
		defer cleanup()

		Convey("When more students sign up than fit", func() {
			stats, err := Run(context.Background(), &Config{
				BaseURL:     srv.URL,
				NumStudents: 10,
				Workers:     4,
				Timeout:     5 * time.Second,
			})

			Convey("Then exactly capacity signups should be accepted", func() {
				So(err, ShouldBeNil)
				So(stats.Signups, ShouldEqual, 2)
				So(stats.Full, ShouldEqual, 8)
			})
		})
	})

	Convey("Given no server", t, func() {
		Convey("Then the health check should fail", func() {
			_, err := Run(context.Background(), &Config{BaseURL: "http://127.0.0.1:1", NumStudents: 1, Timeout: time.Second})
			So(err, ShouldNotBeNil)
			So(strings.Contains(err.Error(), "health check"), ShouldBeTrue)
		})
	})
}
