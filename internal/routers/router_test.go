package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ivywong/webwriter/internal/app"
	"github.com/ivywong/webwriter/internal/domain"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	c, err := app.LoadConfigData([]byte("storage:\n  type: memory\n"))
	require.NoError(t, err)
	a, err := app.NewApp(c, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

type listBody struct {
	Code int `json:"code"`
	Data struct {
		List  []map[string]any `json:"list"`
		Total int              `json:"total"`
	} `json:"data"`
}

func TestSpacesAndCards(t *testing.T) {
	a := newTestApp(t)
	a.Store.AddSpace("Work")
	a.Store.AddCard(domain.Position{X: 10, Y: 20, W: domain.AutoWidth}, "# Groceries\nmilk")
	r := NewPrivateRouter(a)

	w := get(r, "/api/spaces")
	require.Equal(t, http.StatusOK, w.Code)
	var spaces listBody
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &spaces))
	assert.Equal(t, 2, spaces.Data.Total)

	w = get(r, "/api/spaces?q=WOR")
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &spaces))
	require.Equal(t, 1, spaces.Data.Total)
	assert.Equal(t, "Work", spaces.Data.List[0]["name"])

	w = get(r, "/api/spaces/current/cards")
	require.Equal(t, http.StatusOK, w.Code)
	var cards listBody
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &cards))
	require.Equal(t, 1, cards.Data.Total)
	assert.Equal(t, "Groceries", cards.Data.List[0]["title"])
}

func TestUnknownSpaceAndRoute(t *testing.T) {
	r := NewPrivateRouter(newTestApp(t))

	w := get(r, "/api/spaces/space-missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404101")

	w = get(r, "/nothing-here")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404108")
}

func TestHealthHistoryAndMetrics(t *testing.T) {
	a := newTestApp(t)
	a.Store.AddCard(domain.Position{W: domain.AutoWidth}, "x")
	r := NewPrivateRouter(a)

	w := get(r, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)

	w = get(r, "/api/history")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"undos":1`)

	w = get(r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "webwriter_store_mutations_total")
}
