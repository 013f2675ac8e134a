package executive_test

import (
	"testing"

	"github.com/okian/cellpulse/internal/domain/executive"
	. "github.com/smartystreets/goconvey/convey"
)

type performer struct {
	name string
	pct  float64
}

func nameOf(p performer) string { return p.name }

func TestSelect(t *testing.T) {
	Convey("Given a ranked list led by the sentinel", t, func() {
		ranked := []performer{{"Admin", 98}, {"Priya", 95}, {"Raj", 80}}

		sel := executive.Select("overall", ranked, "admin", nameOf)

		Convey("Then the runner-up is the effective top performer", func() {
			So(sel.Found, ShouldBeTrue)
			So(sel.Effective.name, ShouldEqual, "Priya")
			So(sel.Reported.name, ShouldEqual, "Admin")
			So(sel.Substituted, ShouldBeTrue)
		})

		Convey("And a notice records that the sentinel ranked first", func() {
			So(sel.Notice, ShouldNotBeNil)
			So(sel.Notice.Sentinel, ShouldEqual, "Admin")
			So(sel.Notice.View, ShouldEqual, "overall")
			So(sel.Notice.Message, ShouldContainSubstring, "Admin ranked first")
		})

		Convey("And the ranked list itself is untouched", func() {
			So(ranked[0].name, ShouldEqual, "Admin")
		})
	})

	Convey("Given a ranked list led by a real performer", t, func() {
		sel := executive.Select("handset", []performer{{"Raj", 99}, {"Admin", 90}}, "Admin", nameOf)

		Convey("Then nothing is substituted", func() {
			So(sel.Effective.name, ShouldEqual, "Raj")
			So(sel.Substituted, ShouldBeFalse)
			So(sel.Notice, ShouldBeNil)
		})
	})

	Convey("Given only the sentinel", t, func() {
		sel := executive.Select("accessories", []performer{{"ADMIN", 70}}, "Admin", nameOf)

		Convey("Then the sentinel stays effective with a notice", func() {
			So(sel.Effective.name, ShouldEqual, "ADMIN")
			So(sel.Substituted, ShouldBeFalse)
			So(sel.Notice, ShouldNotBeNil)
		})
	})

	Convey("Given an empty view", t, func() {
		sel := executive.Select("overall", []performer{}, "Admin", nameOf)
		So(sel.Found, ShouldBeFalse)
		So(sel.Notice, ShouldBeNil)
	})

	Convey("Given no sentinel configured", t, func() {
		sel := executive.Select("overall", []performer{{"Admin", 98}, {"Priya", 95}}, "", nameOf)
		So(sel.Effective.name, ShouldEqual, "Admin")
		So(sel.Substituted, ShouldBeFalse)
	})
}
