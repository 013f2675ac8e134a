package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/cellpulse/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.BatchConcurrency, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.SentinelName, convey.ShouldEqual, "Admin")
			convey.So(cfg.Branches, convey.ShouldResemble, []string{"CellPoint 1", "CellPoint 2"})
			convey.So(cfg.StrategicUnit, convey.ShouldEqual, 100_000)
			convey.So(len(cfg.StrategicTargets), convey.ShouldEqual, 10)
			convey.So(cfg.StrategicTargets["IPHONE"], convey.ShouldEqual, 70)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given an otherwise valid config", t, func() {
		cfg := config.New()

		convey.Convey("When the strategic unit is zero", func() {
			cfg.StrategicUnit = 0
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "strategic_unit")
		})

		convey.Convey("When a strategic target is negative", func() {
			cfg.StrategicTargets["MOTO"] = -1
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "MOTO")
		})

		convey.Convey("When the log format is unknown", func() {
			cfg.LogFormat = "xml"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When no branch is configured", func() {
			cfg.Branches = nil
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the batch concurrency is not positive", func() {
			cfg.BatchConcurrency = 0
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
