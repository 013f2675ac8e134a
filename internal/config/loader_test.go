package config_test

import (
	"errors"
	"os"
	"testing"

	"github.com/okian/cellpulse/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 64)
				convey.So(cfg.StrategicTargets["VIVO"], convey.ShouldEqual, 45)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CELLPULSE_ADDR", ":8080")
			_ = os.Setenv("CELLPULSE_BATCH_CONCURRENCY", "3")
			_ = os.Setenv("CELLPULSE_MAX_UPLOAD_MB", "2")
			_ = os.Setenv("CELLPULSE_SENTINEL_NAME", "Manager")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.BatchConcurrency, convey.ShouldEqual, 3)
				convey.So(cfg.MaxUploadMB, convey.ShouldEqual, 2)
				convey.So(cfg.SentinelName, convey.ShouldEqual, "Manager")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
log_format: json
branches:
  - North
  - South
  - East
strategic_unit: 1000
strategic_targets:
  oppo: 5
  vivo: 7
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CELLPULSE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.Branches, convey.ShouldResemble, []string{"North", "South", "East"})
				convey.So(cfg.StrategicUnit, convey.ShouldEqual, 1000)
			})

			convey.Convey("And the target table replaces the defaults", func() {
				convey.So(cfg.StrategicTargets, convey.ShouldResemble, map[string]float64{"oppo": 5, "vivo": 7})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
max_batch_size: 8
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CELLPULSE_CONFIG", tmpFile)
			_ = os.Setenv("CELLPULSE_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")   // env
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 8) // file
				convey.So(cfg.MaxUploadMB, convey.ShouldEqual, 10) // default
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CELLPULSE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("CELLPULSE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("CELLPULSE_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("CELLPULSE_MAX_BATCH_SIZE", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"CELLPULSE_CONFIG",
		"CELLPULSE_ADDR",
		"CELLPULSE_BATCH_CONCURRENCY",
		"CELLPULSE_MAX_BATCH_SIZE",
		"CELLPULSE_MAX_UPLOAD_MB",
		"CELLPULSE_SENTINEL_NAME",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "cellpulse-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
