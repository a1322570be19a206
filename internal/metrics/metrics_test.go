package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/leads/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/leads/:id", "204"))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/leads/"+id, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/leads/:id", "204"))
	assert.Equal(t, before+2, after)
}

func TestRecordExtraction(t *testing.T) {
	before := testutil.ToFloat64(extractionRuns.WithLabelValues("preview", "ok"))
	acceptedBefore := testutil.ToFloat64(extractionLeads.WithLabelValues("accepted"))

	RecordExtraction(true, "ok", 3, 2, 5)

	assert.Equal(t, before+1, testutil.ToFloat64(extractionRuns.WithLabelValues("preview", "ok")))
	assert.Equal(t, acceptedBefore+3, testutil.ToFloat64(extractionLeads.WithLabelValues("accepted")))
}

func TestRecordProviderRequest(t *testing.T) {
	okBefore := testutil.ToFloat64(providerRequests.WithLabelValues("search", "ok"))
	errBefore := testutil.ToFloat64(providerRequests.WithLabelValues("search", "error"))

	RecordProviderRequest("search", nil)
	RecordProviderRequest("search", errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(providerRequests.WithLabelValues("search", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(providerRequests.WithLabelValues("search", "error")))
}
