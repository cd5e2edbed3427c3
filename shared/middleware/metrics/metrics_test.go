package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/threads/{threadId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/threads/"+id, nil))
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			counts[labels["path"]+" "+labels["status"]] = metric.GetCounter().GetValue()
		}
	}

	assert.Equal(t, 3.0, counts["/threads/{threadId} 404"], "ids collapse into the route pattern")
}
