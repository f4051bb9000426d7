package analysis_test

import (
	"testing"

	"github.com/okian/lectio/internal/adapters/dataset"
	"github.com/okian/lectio/internal/analysis"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInsights(t *testing.T) {
	Convey("Given the insights generator", t, func() {
		Convey("When the table spans two minutes", func() {
			table := &dataset.Table{Rows: []dataset.Row{
				row(0, "Student", "Raised Hand", "1"),
				row(30, "Student", "Question", "1"),
				row(60, "Engagement", "High", "3"),
				row(120, "Student", "Raised Hand", "1"),
			}}
			insights := analysis.Insights(table)

			Convey("Then the lines come in the fixed order", func() {
				So(len(insights), ShouldEqual, 5)
				So(insights[0], ShouldEqual, "Response rate: 2.0 responses per minute")
				So(insights[1], ShouldEqual, "Most active category: Student (3 responses)")
				So(insights[2], ShouldStartWith, "Early responses")
				So(insights[3], ShouldStartWith, "Late responses")
				So(insights[4], ShouldEqual, "Average value: 1.50")
			})

			Convey("Then the quartile counts use inclusive cut points", func() {
				// sorted times 0,30,60,120: q1=22.5, q3=75
				So(insights[2], ShouldEqual, "Early responses (first 25% of time): 1")
				So(insights[3], ShouldEqual, "Late responses (last 25% of time): 1")
			})
		})

		Convey("When every event shares one timestamp", func() {
			table := &dataset.Table{Rows: []dataset.Row{
				row(10, "Student", "Raised Hand", "1"),
				row(10, "Student", "Question", "1"),
			}}
			insights := analysis.Insights(table)

			Convey("Then the zero span yields a zero rate, not a division crash", func() {
				So(insights[0], ShouldEqual, "Response rate: 0.0 responses per minute")
			})

			Convey("Then inclusive quartiles cover everything", func() {
				So(insights[2], ShouldEqual, "Early responses (first 25% of time): 2")
				So(insights[3], ShouldEqual, "Late responses (last 25% of time): 2")
			})
		})

		Convey("When categories tie on frequency", func() {
			table := &dataset.Table{Rows: []dataset.Row{
				row(1, "Instructor", "Lecturing", "1"),
				row(2, "Student", "Raised Hand", "1"),
			}}
			insights := analysis.Insights(table)

			Convey("Then the first-seen category wins", func() {
				So(insights[1], ShouldEqual, "Most active category: Instructor (1 responses)")
			})
		})

		Convey("When no value is numeric", func() {
			table := &dataset.Table{Rows: []dataset.Row{
				row(5, "Comment", "hard to hear", ""),
				row(65, "Comment", "better", "free text"),
			}}
			insights := analysis.Insights(table)

			Convey("Then the average line reports the sentinel", func() {
				So(insights[4], ShouldEqual, "Average value: N/A (no numeric values found)")
			})
		})

		Convey("When the table is empty", func() {
			insights := analysis.Insights(&dataset.Table{})

			Convey("Then a single no-data line is returned", func() {
				So(insights, ShouldResemble, []string{"No responses recorded"})
			})
		})
	})
}
