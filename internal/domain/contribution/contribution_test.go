package contribution_test

import (
	"testing"

	"github.com/okian/cellpulse/internal/domain/contribution"
	"github.com/okian/cellpulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAnalyze(t *testing.T) {
	Convey("Given branch totals", t, func() {
		Convey("When both branches contribute", func() {
			a := contribution.Analyze([]contribution.Amount{
				{Branch: "CellPoint 1", Amount: 600000},
				{Branch: "CellPoint 2", Amount: 400000},
			})

			Convey("Then shares sum to 100 and the larger one carries", func() {
				So(a.Defined, ShouldBeTrue)
				So(a.Carrier, ShouldEqual, "CellPoint 1")
				var sum float64
				for _, s := range a.Shares {
					sum += s.Pct
				}
				So(sum, ShouldAlmostEqual, 100, 1e-6)
				So(a.Shares[0].Pct, ShouldAlmostEqual, 60, 1e-9)
			})
		})

		Convey("When many parties contribute unevenly", func() {
			a := contribution.Analyze([]contribution.Amount{
				{Branch: "A", Amount: 1}, {Branch: "B", Amount: 7}, {Branch: "C", Amount: 3},
			})
			var sum float64
			for _, s := range a.Shares {
				sum += s.Pct
			}
			So(sum, ShouldAlmostEqual, 100, 1e-6)
			So(a.Carrier, ShouldEqual, "B")
		})

		Convey("When contributions tie", func() {
			a := contribution.Analyze([]contribution.Amount{
				{Branch: "CellPoint 1", Amount: 500},
				{Branch: "CellPoint 2", Amount: 500},
			})

			Convey("Then the first declared branch carries", func() {
				So(a.Carrier, ShouldEqual, "CellPoint 1")
			})
		})

		Convey("When the total is zero", func() {
			a := contribution.Analyze([]contribution.Amount{
				{Branch: "CellPoint 1", Amount: 0},
				{Branch: "CellPoint 2", Amount: 0},
			})

			Convey("Then shares and carrier are undefined", func() {
				So(a.Defined, ShouldBeFalse)
				So(a.Shares, ShouldBeEmpty)
				So(a.Carrier, ShouldEqual, "")
			})
		})
	})
}

func TestAmountBuilders(t *testing.T) {
	Convey("Given branch sheets", t, func() {
		branches := []model.BranchRecords{
			{Branch: "CP1", Records: []model.PerformanceRecord{{Name: "A", Achieved: 10}, {Name: "B", Achieved: 5}}},
			{Branch: "CP2", Records: []model.PerformanceRecord{{Name: "A", Achieved: 0}}},
		}

		Convey("Then branch amounts sum each sheet", func() {
			amounts := contribution.Achieved(branches)
			So(amounts, ShouldResemble, []contribution.Amount{{Branch: "CP1", Amount: 15}, {Branch: "CP2", Amount: 0}})
		})

		Convey("Then record amounts skip non-positive achievement", func() {
			amounts := contribution.Records(append(branches[0].Records, branches[1].Records...))
			So(len(amounts), ShouldEqual, 2)
		})
	})
}
