package analysis_test

import (
	"testing"

	"github.com/okian/lectio/internal/adapters/dataset"
	"github.com/okian/lectio/internal/analysis"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCategoryCounts(t *testing.T) {
	Convey("Given the category distribution", t, func() {
		table := &dataset.Table{Rows: []dataset.Row{
			row(1, "Student", "Raised Hand", "1"),
			row(2, "Engagement", "High", "3"),
			row(3, "Student", "Question", "1"),
			row(4, "Comment", "check this", ""),
		}}

		Convey("When counting", func() {
			counts := analysis.CategoryCounts(table)

			Convey("Then counts come in first-seen order", func() {
				So(counts, ShouldResemble, []analysis.CategoryCount{
					{Category: "Student", Count: 2},
					{Category: "Engagement", Count: 1},
					{Category: "Comment", Count: 1},
				})
			})
		})

		Convey("When the table is empty", func() {
			So(analysis.CategoryCounts(&dataset.Table{}), ShouldBeNil)
		})
	})
}

func TestComments(t *testing.T) {
	Convey("Given comment extraction", t, func() {
		table := &dataset.Table{Rows: []dataset.Row{
			row(1, "Student", "Raised Hand", "1"),
			row(12.5, "Comment", "lost the back rows", ""),
			row(40, "comment", "recovered", ""),
		}}

		Convey("When extracting", func() {
			comments := analysis.Comments(table)

			Convey("Then comment rows surface regardless of case", func() {
				So(comments, ShouldResemble, []analysis.Comment{
					{TimeS: 12.5, Text: "lost the back rows"},
					{TimeS: 40, Text: "recovered"},
				})
			})
		})

		Convey("When no comments exist", func() {
			bare := &dataset.Table{Rows: []dataset.Row{row(1, "Student", "Raised Hand", "1")}}
			So(analysis.Comments(bare), ShouldBeNil)
		})
	})
}

func TestTimeBins(t *testing.T) {
	Convey("Given time-series binning", t, func() {
		table := &dataset.Table{Rows: []dataset.Row{
			row(0, "Student", "Raised Hand", "1"),
			row(30, "Student", "Question", "1"),
			row(59, "Engagement", "High", "3"),
			row(120, "Student", "Raised Hand", "1"),
		}}

		Convey("When splitting into two buckets", func() {
			bins := analysis.TimeBins(table, 2)

			Convey("Then buckets cover the range with the end inclusive", func() {
				So(len(bins), ShouldEqual, 2)
				So(bins[0].Start, ShouldEqual, 0.0)
				So(bins[0].End, ShouldEqual, 60.0)
				So(bins[1].End, ShouldEqual, 120.0)

				So(bins[0].Counts["Student"], ShouldEqual, 2)
				So(bins[0].Counts["Engagement"], ShouldEqual, 1)
				So(bins[1].Counts["Student"], ShouldEqual, 1)
			})
		})

		Convey("When every row shares a timestamp", func() {
			flat := &dataset.Table{Rows: []dataset.Row{
				row(10, "Student", "Raised Hand", "1"),
				row(10, "Student", "Question", "1"),
			}}
			bins := analysis.TimeBins(flat, 3)

			Convey("Then all rows land in the final bucket without dividing by zero", func() {
				So(len(bins), ShouldEqual, 3)
				So(bins[2].Counts["Student"], ShouldEqual, 2)
			})
		})

		Convey("When inputs are degenerate", func() {
			So(analysis.TimeBins(&dataset.Table{}, 4), ShouldBeNil)
			So(analysis.TimeBins(table, 0), ShouldBeNil)
		})
	})
}
