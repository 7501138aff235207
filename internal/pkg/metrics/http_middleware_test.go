package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetricsMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(HTTPMetricsMiddleware)
	r.Get("/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/employees/{id}", "404"))

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/employees/{id}", "404"))
	assert.Equal(t, 3.0, after-before)
}

func TestStatusWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	w.Flush()
	assert.True(t, rec.Flushed)
	assert.Equal(t, rec, w.Unwrap())
}

func TestObserveClock(t *testing.T) {
	before := testutil.ToFloat64(clockEvents.WithLabelValues("clock_in", "noop"))
	ObserveClock("clock_in", false)
	assert.Equal(t, 1.0, testutil.ToFloat64(clockEvents.WithLabelValues("clock_in", "noop"))-before)

	SetAttendance(3, 2, 1, 0)
	assert.Equal(t, 3.0, testutil.ToFloat64(employeesClockedIn))
	assert.Equal(t, 1.0, testutil.ToFloat64(lateArrivals))
}
