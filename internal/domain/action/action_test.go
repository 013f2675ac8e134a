package action_test

import (
	"testing"

	"github.com/okian/cellpulse/internal/domain/action"
	"github.com/okian/cellpulse/internal/domain/model"
	"github.com/okian/cellpulse/internal/domain/tier"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGrade(t *testing.T) {
	Convey("Given pace ratios", t, func() {
		So(action.Grade(0), ShouldEqual, action.DifficultyEasy)
		So(action.Grade(1), ShouldEqual, action.DifficultyEasy)
		So(action.Grade(1.1), ShouldEqual, action.DifficultyStretch)
		So(action.Grade(1.2), ShouldEqual, action.DifficultyStretch)
		So(action.Grade(1.5), ShouldEqual, action.DifficultyHard)
		So(action.Grade(1.51), ShouldEqual, action.DifficultyAlmostImpossible)
	})
}

func TestPlanRecord(t *testing.T) {
	Convey("Given a brand with balance to do", t, func() {
		r := model.PerformanceRecord{Name: "VIVO", BalanceToDo: 1200, DailyTarget: 100}

		Convey("When ten days remain", func() {
			it := action.PlanRecord(r, model.DateContext{DaysCompleted: 20, DaysRemaining: 10, TotalDays: 30})

			Convey("Then the required pace and difficulty are derived", func() {
				So(it.RequiredDaily, ShouldEqual, 120)
				So(it.PaceRatio, ShouldAlmostEqual, 1.2, 1e-9)
				So(it.Difficulty, ShouldEqual, action.DifficultyStretch)
			})
		})

		Convey("When the month is closed", func() {
			it := action.PlanRecord(r, model.DateContext{DaysCompleted: 30, DaysRemaining: 0, TotalDays: 30})

			Convey("Then the required pace is zero, not undefined", func() {
				So(it.RequiredDaily, ShouldEqual, 0)
				So(it.Difficulty, ShouldEqual, action.DifficultyMonthClosed)
			})
		})

		Convey("When the daily target is unknown", func() {
			r.DailyTarget = 0
			it := action.PlanRecord(r, model.DateContext{DaysCompleted: 20, DaysRemaining: 10, TotalDays: 30})
			So(it.PaceRatio, ShouldEqual, 0)
			So(it.Difficulty, ShouldEqual, action.DifficultyEasy)
		})
	})
}

func TestPlan(t *testing.T) {
	Convey("Given ranked records", t, func() {
		ranked := tier.ClassifyAll([]model.PerformanceRecord{{Name: "A", BalanceToDo: 10}, {Name: "B", BalanceToDo: 20}}, tier.BrandRisk)
		items := action.Plan(ranked, model.DateContext{DaysRemaining: 5})
		So(len(items), ShouldEqual, 2)
		So(items[1].Name, ShouldEqual, "B")
		So(items[1].RequiredDaily, ShouldEqual, 4)
	})
}
