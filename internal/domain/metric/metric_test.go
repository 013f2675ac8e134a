package metric_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/cellpulse/internal/domain/metric"
	"github.com/okian/cellpulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAchievement(t *testing.T) {
	Convey("Given performance records", t, func() {
		Convey("When the target is positive", func() {
			pct := metric.Achievement(model.PerformanceRecord{Name: "OPPO", Target: 200, Achieved: 150})

			Convey("Then the percentage is achieved/target*100", func() {
				v, ok := pct.Value()
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 75.0)
			})
		})

		Convey("When the target is zero", func() {
			pct := metric.Achievement(model.PerformanceRecord{Name: "NEW", Target: 0, Achieved: 500})

			Convey("Then the percentage is NotApplicable, not zero or infinity", func() {
				So(pct.IsNA(), ShouldBeTrue)
				v, ok := pct.Value()
				So(ok, ShouldBeFalse)
				So(v, ShouldEqual, 0)
			})
		})

		Convey("When the target is negative", func() {
			pct := metric.Achievement(model.PerformanceRecord{Target: -10, Achieved: 5})

			Convey("Then the percentage is NotApplicable", func() {
				So(pct.IsNA(), ShouldBeTrue)
			})
		})
	})
}

func TestPercentJSON(t *testing.T) {
	Convey("Given percentages", t, func() {
		Convey("When a defined value is marshalled", func() {
			b, err := json.Marshal(metric.Of(12.5))
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, "12.5")
		})

		Convey("When NotApplicable is marshalled", func() {
			b, err := json.Marshal(metric.NotApplicable())
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, "null")
		})

		Convey("When null is unmarshalled", func() {
			p := metric.Of(3)
			So(json.Unmarshal([]byte("null"), &p), ShouldBeNil)
			So(p.IsNA(), ShouldBeTrue)
		})
	})
}

func TestSumAndMean(t *testing.T) {
	Convey("Given a record set", t, func() {
		records := []model.PerformanceRecord{
			{Name: "A", Target: 100, Achieved: 50},
			{Name: "B", Target: 300, Achieved: 150},
		}

		Convey("When summing", func() {
			totals := metric.Sum(records)

			Convey("Then totals and pending are computed", func() {
				So(totals.Target, ShouldEqual, 400)
				So(totals.Achieved, ShouldEqual, 200)
				So(totals.Pending, ShouldEqual, 200)
				So(totals.Pct.Or(-1), ShouldEqual, 50)
			})
		})

		Convey("When summing nothing", func() {
			So(metric.Sum(nil).Pct.IsNA(), ShouldBeTrue)
		})

		Convey("When averaging with an undefined entry", func() {
			mean := metric.Mean([]metric.Percent{metric.Of(80), metric.NotApplicable(), metric.Of(40)})
			So(mean.Or(-1), ShouldEqual, 60)
		})

		Convey("When averaging only undefined entries", func() {
			So(metric.Mean([]metric.Percent{metric.NotApplicable()}).IsNA(), ShouldBeTrue)
		})
	})
}
