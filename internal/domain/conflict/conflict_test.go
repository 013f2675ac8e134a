package conflict_test

import (
	"testing"

	"github.com/okian/cellpulse/internal/domain/conflict"
	"github.com/okian/cellpulse/internal/domain/contribution"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDetect(t *testing.T) {
	Convey("Given primary and strategic branch achievement", t, func() {
		primary := contribution.Analyze([]contribution.Amount{
			{Branch: "CP1", Amount: 600000},
			{Branch: "CP2", Amount: 400000},
		})

		Convey("When the strategic carrier differs", func() {
			strategic := contribution.Analyze([]contribution.Amount{
				{Branch: "CP1", Amount: 200000},
				{Branch: "CP2", Amount: 500000},
			})
			r := conflict.Detect(primary, strategic)

			Convey("Then a conflict is raised", func() {
				So(r.PrimaryCarrier, ShouldEqual, "CP1")
				So(r.StrategicCarrier, ShouldEqual, "CP2")
				So(r.Conflict, ShouldBeTrue)
				So(r.Determined, ShouldBeTrue)
			})
		})

		Convey("When the same branch carries both", func() {
			strategic := contribution.Analyze([]contribution.Amount{
				{Branch: "CP1", Amount: 300},
				{Branch: "CP2", Amount: 100},
			})
			So(conflict.Detect(primary, strategic).Conflict, ShouldBeFalse)
		})

		Convey("When the strategic total is zero", func() {
			strategic := contribution.Analyze([]contribution.Amount{{Branch: "CP1"}, {Branch: "CP2"}})
			r := conflict.Detect(primary, strategic)

			Convey("Then the signal is undetermined rather than a conflict", func() {
				So(r.Determined, ShouldBeFalse)
				So(r.Conflict, ShouldBeFalse)
				So(r.StrategicCarrier, ShouldEqual, "")
			})
		})
	})
}
