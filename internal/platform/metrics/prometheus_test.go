package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecorder(t *testing.T) {
	Convey("Given a recorder on a private registry", t, func() {
		r := NewRecorder(WithNamespace("test"))

		Convey("When requests and violations are recorded", func() {
			r.ObserveHTTP("/dashboard/summary", http.MethodGet, http.StatusOK, 20*time.Millisecond)
			r.ObserveHTTP("/dashboard/summary", http.MethodGet, http.StatusOK, 40*time.Millisecond)
			r.SchemaViolation("/matchup-analysis/matchup-prediction")
			r.FeedFallback("events")

			Convey("Then the counters reflect them", func() {
				So(counterValue(r.httpRequests.WithLabelValues("/dashboard/summary", "GET", "200")), ShouldEqual, 2)
				So(counterValue(r.schemaViolations.WithLabelValues("/matchup-analysis/matchup-prediction")), ShouldEqual, 1)
				So(counterValue(r.feedFallbacks.WithLabelValues("events")), ShouldEqual, 1)
			})

			Convey("Then the handler exposes them", func() {
				rec := httptest.NewRecorder()
				r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.Contains(rec.Body.String(), "test_schema_violations_total"), ShouldBeTrue)
			})
		})

		Convey("When the recorder is nil", func() {
			var nilRecorder *Recorder

			Convey("Then recording does not panic", func() {
				So(func() { nilRecorder.ObserveHTTP("/", "GET", 200, time.Millisecond) }, ShouldNotPanic)
				So(func() { nilRecorder.SchemaViolation("/") }, ShouldNotPanic)
				So(func() { nilRecorder.FeedFallback("events") }, ShouldNotPanic)
			})
		})
	})
}

func counterValue(c interface{ Write(*dto.Metric) error }) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return -1
	}
	return m.GetCounter().GetValue()
}
