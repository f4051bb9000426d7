package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/lectio/internal/app"
	"github.com/okian/lectio/internal/config"
	"github.com/okian/lectio/internal/domain/model"
	"github.com/okian/lectio/internal/domain/session"
	"github.com/okian/lectio/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

// testClock is a hand-driven time source for deterministic elapsed values.
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{current: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (tc *testClock) now() time.Time          { return tc.current }
func (tc *testClock) advance(d time.Duration) { tc.current = tc.current.Add(d) }

func TestServiceTimepointMode(t *testing.T) {
	Convey("Given a timepoint-mode service", t, func() {
		ctx := context.Background()
		tc := newTestClock()
		cfg := config.New(ctx)
		svc := app.New(app.WithConfig(cfg), app.WithNow(tc.now))

		So(svc.IntervalMode(), ShouldBeFalse)
		So(svc.Active(), ShouldBeFalse)

		Convey("When recording before start", func() {
			res := svc.RecordClick(ctx, model.CategoryStudent, "Raised Hand")

			Convey("Then the click is dropped", func() {
				So(res, ShouldEqual, session.IgnoredInactive)
			})
		})

		Convey("When an observation runs", func() {
			s := svc.StartObservation(ctx)
			So(s.ID, ShouldNotBeEmpty)
			So(svc.Active(), ShouldBeTrue)

			tc.advance(10 * time.Second)
			So(svc.RecordClick(ctx, model.CategoryStudent, "Raised Hand"), ShouldEqual, session.Recorded)
			tc.advance(20 * time.Second)
			So(svc.RecordClick(ctx, model.CategoryEngagement, "High"), ShouldEqual, session.Recorded)
			tc.advance(5 * time.Second)
			So(svc.SaveComment(ctx, "good pacing"), ShouldEqual, session.Recorded)

			Convey("Then elapsed time and the display timer track the clock", func() {
				So(svc.Elapsed(), ShouldEqual, 35.0)
				So(svc.FormatElapsed(), ShouldEqual, "0:35")
			})

			Convey("And stopping returns every event with its mapped value", func() {
				events := svc.StopObservation(ctx)
				So(len(events), ShouldEqual, 3)
				So(events[0].Response, ShouldEqual, "Raised Hand")
				v, ok := events[0].Value.Float()
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 1.0)
				v, ok = events[1].Value.Float()
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 3.0)
				So(svc.Active(), ShouldBeFalse)
			})

			Convey("And the frozen timer keeps the final reading after stop", func() {
				tc.advance(25 * time.Second)
				svc.StopObservation(ctx)
				tc.advance(time.Hour)
				So(svc.FormatElapsed(), ShouldEqual, "1:00")
			})
		})
	})
}

func TestServiceIntervalMode(t *testing.T) {
	Convey("Given an interval-mode service", t, func() {
		ctx := context.Background()
		tc := newTestClock()
		cfg := config.New(ctx)
		cfg.TimerMethod = config.TimerMethodInterval
		cfg.TimerInterval = 120
		svc := app.New(app.WithConfig(cfg), app.WithNow(tc.now))

		So(svc.IntervalMode(), ShouldBeTrue)
		So(svc.Interval(), ShouldEqual, 120*time.Second)

		Convey("When toggles are pressed across a boundary", func() {
			svc.StartObservation(ctx)
			svc.Toggle(ctx, model.CategoryStudent, "Raised Hand", true)
			tc.advance(5 * time.Second)
			svc.Toggle(ctx, model.CategoryEngagement, "High", true)

			tc.advance(115 * time.Second)
			n := svc.TickInterval(ctx)

			Convey("Then the tick flushes both toggles at the boundary stamp", func() {
				So(n, ShouldEqual, 2)
				events := svc.StopObservation(ctx)
				So(len(events), ShouldEqual, 2)
				So(events[0].Elapsed, ShouldEqual, 120.0)
				So(events[1].Elapsed, ShouldEqual, 120.0)
			})

			Convey("Then a follow-up tick with cleared state writes nothing", func() {
				So(svc.TickInterval(ctx), ShouldEqual, 0)
			})
		})

		Convey("When a session stops with toggles still pressed", func() {
			svc.StartObservation(ctx)
			svc.Toggle(ctx, model.CategoryInstructor, "Lecturing", true)
			tc.advance(30 * time.Second)
			events := svc.StopObservation(ctx)

			Convey("Then the partial interval is flushed before stopping", func() {
				So(len(events), ShouldEqual, 1)
				So(events[0].Response, ShouldEqual, "Lecturing")
			})
		})

		Convey("When comments arrive mid-interval", func() {
			svc.StartObservation(ctx)
			tc.advance(45 * time.Second)
			So(svc.SaveComment(ctx, "projector flicker"), ShouldEqual, session.Recorded)
			events := svc.StopObservation(ctx)

			Convey("Then the comment is stamped immediately, not at the boundary", func() {
				So(events[0].Elapsed, ShouldEqual, 45.0)
			})
		})
	})
}

func TestServiceExportLoadRoundTrip(t *testing.T) {
	Convey("Given a recorded session", t, func() {
		ctx := context.Background()
		tc := newTestClock()
		cfg := config.New(ctx)
		cfg.Protocol = "COPUS"
		svc := app.New(app.WithConfig(cfg), app.WithNow(tc.now))

		svc.StartObservation(ctx)
		tc.advance(10 * time.Second)
		svc.RecordClick(ctx, model.CategoryStudent, "Raised Hand")
		tc.advance(20 * time.Second)
		svc.RecordClick(ctx, model.CategoryEngagement, "Medium")
		tc.advance(15 * time.Second)
		svc.SaveComment(ctx, "loud, but engaged")
		tc.advance(15 * time.Second)

		Convey("When exporting and loading it back", func() {
			path := filepath.Join(t.TempDir(), "observation.csv")
			n, err := svc.StopAndExport(ctx, path)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 3)

			report, err := svc.Analyze(ctx, path)
			So(err, ShouldBeNil)

			Convey("Then every event survives the round trip", func() {
				So(len(report.Table.Rows), ShouldEqual, 3)
				seen := make(map[string]int)
				for _, r := range report.Table.Rows {
					seen[r.Response]++
				}
				So(seen["Raised Hand"], ShouldEqual, 1)
				So(seen["Medium"], ShouldEqual, 1)
				So(seen["loud, but engaged"], ShouldEqual, 1)
			})

			Convey("Then the metadata block carries the session facts", func() {
				So(report.Table.Meta["Protocol"], ShouldEqual, "COPUS")
				So(report.Table.Meta["Duration"], ShouldEqual, "60.0")
				So(report.Table.Meta["Total Responses"], ShouldEqual, "3")
				So(report.Table.Meta["Observation Started"], ShouldEqual, "2024-01-01 09:00:00")
			})

			Convey("Then the analysis feeds are populated", func() {
				So(report.Summary.TotalResponses, ShouldEqual, 3)
				So(report.Summary.UniqueCategories, ShouldEqual, 3)
				So(len(report.PerCategory), ShouldEqual, 3)
				So(len(report.Insights), ShouldBeGreaterThan, 0)
				So(len(report.Comments), ShouldEqual, 1)
				So(report.Comments[0].Text, ShouldEqual, "loud, but engaged")
				So(len(report.Counts), ShouldEqual, 3)
			})

			Convey("Then the loaded rows are grouped by configured category order", func() {
				So(report.Table.Rows[0].Category, ShouldEqual, "Student")
				So(report.Table.Rows[1].Category, ShouldEqual, "Comment")
				So(report.Table.Rows[2].Category, ShouldEqual, "Engagement")
			})
		})

		Convey("When analyzing a missing file", func() {
			_, err := svc.Analyze(ctx, filepath.Join(t.TempDir(), "nope.csv"))

			Convey("Then the load error propagates", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestServiceRestart(t *testing.T) {
	Convey("Given a service that has already finished one session", t, func() {
		ctx := context.Background()
		tc := newTestClock()
		svc := app.New(app.WithConfig(config.New(ctx)), app.WithNow(tc.now))

		first := svc.StartObservation(ctx)
		tc.advance(time.Minute)
		svc.RecordClick(ctx, model.CategoryStudent, "Question")
		svc.StopObservation(ctx)

		Convey("When a second observation starts", func() {
			second := svc.StartObservation(ctx)
			tc.advance(5 * time.Second)
			svc.RecordClick(ctx, model.CategoryStudent, "Raised Hand")

			Convey("Then the session identity and log are fresh", func() {
				So(second.ID, ShouldNotEqual, first.ID)
				events := svc.StopObservation(ctx)
				So(len(events), ShouldEqual, 1)
				So(events[0].Elapsed, ShouldEqual, 5.0)
			})

			Convey("Then the display timer restarted from zero", func() {
				So(svc.FormatElapsed(), ShouldEqual, "0:05")
			})
		})
	})
}

func TestServiceExportFailure(t *testing.T) {
	Convey("Given an active session", t, func() {
		ctx := context.Background()
		tc := newTestClock()
		svc := app.New(app.WithConfig(config.New(ctx)), app.WithNow(tc.now))
		svc.StartObservation(ctx)
		tc.advance(10 * time.Second)
		svc.RecordClick(ctx, model.CategoryStudent, "Raised Hand")

		Convey("When the export destination cannot be written", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "missing", "observation.csv")
			_, err := svc.StopAndExport(ctx, path)

			Convey("Then the error surfaces and no file appears", func() {
				So(err, ShouldNotBeNil)
				_, statErr := os.Stat(path)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})
}
