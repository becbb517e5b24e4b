package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveInsert(t *testing.T) {
	ok := testutil.ToFloat64(Inserts.WithLabelValues("widget", "placeholder", "ok"))
	failed := testutil.ToFloat64(Inserts.WithLabelValues("widget", "placeholder", "error"))

	ObserveInsert("widget", "placeholder", nil)
	ObserveInsert("widget", "placeholder", errors.New("boom"))
	ObserveInsert("widget", "placeholder", nil)

	assert.Equal(t, ok+2, testutil.ToFloat64(Inserts.WithLabelValues("widget", "placeholder", "ok")))
	assert.Equal(t, failed+1, testutil.ToFloat64(Inserts.WithLabelValues("widget", "placeholder", "error")))
}

func TestHandler(t *testing.T) {
	ReferenceLoads.WithLabelValues("widget").Inc()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `relsave_reference_loads_total{entity="widget"}`))
}
