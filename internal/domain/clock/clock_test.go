package clock_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/lectio/internal/domain/clock"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeNow returns a controllable time source starting at a fixed instant.
func fakeNow() (func() time.Time, func(d time.Duration)) {
	current := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return current }
	advance := func(d time.Duration) { current = current.Add(d) }
	return now, advance
}

func TestTimer(t *testing.T) {
	Convey("Given a timer with an injected time source", t, func() {
		now, advance := fakeNow()
		tm := clock.New(clock.WithNow(now))

		Convey("When it has never been started", func() {
			Convey("Then elapsed is zero and it formats as 0:00", func() {
				So(tm.Running(), ShouldBeFalse)
				So(tm.Elapsed(), ShouldEqual, 0.0)
				So(tm.Format(), ShouldEqual, "0:00")
			})
		})

		Convey("When started and time passes", func() {
			So(tm.Start(), ShouldBeNil)
			advance(95 * time.Second)

			Convey("Then elapsed tracks the time source", func() {
				So(tm.Running(), ShouldBeTrue)
				So(tm.Elapsed(), ShouldEqual, 95.0)
				So(tm.Format(), ShouldEqual, "1:35")
			})

			Convey("And starting again fails with ErrAlreadyRunning", func() {
				err := tm.Start()
				So(errors.Is(err, clock.ErrAlreadyRunning), ShouldBeTrue)
				So(tm.Elapsed(), ShouldEqual, 95.0)
			})
		})

		Convey("When stopped after running", func() {
			So(tm.Start(), ShouldBeNil)
			advance(30 * time.Second)
			tm.Stop()
			advance(10 * time.Minute)

			Convey("Then elapsed stays frozen at the stop instant", func() {
				So(tm.Running(), ShouldBeFalse)
				So(tm.Elapsed(), ShouldEqual, 30.0)
				So(tm.Format(), ShouldEqual, "0:30")
			})

			Convey("And stopping again is a no-op", func() {
				tm.Stop()
				So(tm.Elapsed(), ShouldEqual, 30.0)
			})

			Convey("And a restart clears the frozen duration", func() {
				So(tm.Start(), ShouldBeNil)
				advance(5 * time.Second)
				So(tm.Elapsed(), ShouldEqual, 5.0)
			})
		})

		Convey("When reset", func() {
			So(tm.Start(), ShouldBeNil)
			advance(42 * time.Second)
			tm.Reset()

			Convey("Then the timer forgets everything", func() {
				So(tm.Running(), ShouldBeFalse)
				So(tm.Elapsed(), ShouldEqual, 0.0)
				So(tm.Format(), ShouldEqual, "0:00")
			})
		})
	})
}
