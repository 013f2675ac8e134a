package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then metric families are registered under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.reportsGenerated.WithLabelValues("sales").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				So(families[0].GetName(), ShouldStartWith, "cellpulse_")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithBatchBuckets([]float64{1, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then report metrics use the custom names", func() {
				manager.conflictsDetected.Inc()
				n, err := testutil.GatherAndCount(registry, "test_namespace_test_subsystem_conflicts_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When two managers share a registry", func() {
			registry := prometheus.NewRegistry()
			_ = NewManager(WithPrometheusRegistry(registry))

			Convey("Then duplicate registration panics", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording report metrics", func() {
			before := testutil.ToFloat64(globalManager.reportsGenerated.WithLabelValues("staff"))
			RecordReportGenerated("staff")
			RecordReportGenerated("staff")

			Convey("Then the counter for the kind advances", func() {
				So(testutil.ToFloat64(globalManager.reportsGenerated.WithLabelValues("staff")), ShouldEqual, before+2)
			})
		})

		Convey("When recording record counts", func() {
			before := testutil.ToFloat64(globalManager.notApplicableRecords.WithLabelValues("sales"))
			RecordRecordsClassified("sales", 10)
			RecordNotApplicable("sales", 3)
			So(testutil.ToFloat64(globalManager.notApplicableRecords.WithLabelValues("sales")), ShouldEqual, before+3)
		})

		Convey("When recording overlay and conflict signals", func() {
			excluded := testutil.ToFloat64(globalManager.overlayExcluded)
			conflicts := testutil.ToFloat64(globalManager.conflictsDetected)
			RecordOverlayExcluded(2)
			RecordConflict()
			So(testutil.ToFloat64(globalManager.overlayExcluded), ShouldEqual, excluded+2)
			So(testutil.ToFloat64(globalManager.conflictsDetected), ShouldEqual, conflicts+1)
		})

		Convey("When tracking batch work", func() {
			AddBatchInFlight(3)
			AddBatchInFlight(-3)
			So(testutil.ToFloat64(globalManager.batchInFlight), ShouldEqual, 0)
			So(func() { RecordBatchSize(4) }, ShouldNotPanic)
		})

		Convey("When recording the remaining metrics", func() {
			So(func() {
				RecordReportError("cellsum", "insufficient_data")
				RecordReportLatency("cellsum", 1.5)
				RecordSentinelNotices(1)
				RecordIngestRows("brand", 12)
				RecordIngestError("staff")
				RecordHTTPRequest("/reports/sales", "POST", "200")
				RecordHTTPRequestDuration("/reports/sales", "POST", "200", 4.2)
				RecordErrorByEndpoint("/reports/sales", "POST", "bad_request")
				UpdateSystemMemoryUsage(1024 * 1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordReportGenerated("sales")
		families, err := GetRegistry().Gather()
		So(err, ShouldBeNil)

		Convey("Then it exposes only cellpulse metrics", func() {
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "cellpulse_"), ShouldBeTrue)
			}
		})
	})
}
