package response

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func record(t *testing.T, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	fn(c)
	return w
}

func TestRespondListNilBecomesEmptyArray(t *testing.T) {
	var items []string
	w := record(t, func(c *gin.Context) { RespondList(c, items) })
	if got := w.Body.String(); got != "[]" {
		t.Fatalf("nil slice should serialize as [], got %q", got)
	}
}

func TestRespondListKeepsElements(t *testing.T) {
	w := record(t, func(c *gin.Context) { RespondList(c, []int{1, 2}) })
	if got := w.Body.String(); got != "[1,2]" {
		t.Fatalf("unexpected body %q", got)
	}
}
