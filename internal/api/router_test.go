package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewRouter_RoutesAndMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(&mockSeriesService{}))

	// series route is mounted; no data behind the mock means 404
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/series?item_code=TX", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("series status=%d, want 404", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id middleware not attached")
	}

	// unknown path falls through to gin's default 404
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown path status=%d, want 404", w.Code)
	}
}
