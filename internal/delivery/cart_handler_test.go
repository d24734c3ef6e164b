package delivery

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart_service/internal/pricing"
	"cart_service/internal/repository"
	"cart_service/internal/usecase"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dir := t.TempDir()
	catalog := repository.NewSeedCatalogRepository(logger)
	uc := usecase.NewCartUseCase(
		catalog,
		pricing.NewEngine(decimal.RequireFromString("0.15")),
		repository.NewCartSnapshotCodec(catalog, logger),
		repository.NewSettingsCodec(logger),
		filepath.Join(dir, "cart.csv"), filepath.Join(dir, "settings.properties"),
		logger,
	)

	router := gin.New()
	NewCatalogHandler(uc, logger).RegisterRoutes(router)
	NewCartHandler(uc, logger).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp Response
	if ct := w.Header().Get("Content-Type"); strings.HasPrefix(ct, "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestListProductsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/products", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success", resp.Status)
	products, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, products, 25)

	w, resp = doJSON(t, router, http.MethodGet, "/products?q=laptop&category=Electronics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	products, ok = resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, products, 1)
}

func TestListCategoriesEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusOK, w.Code)
	cats, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"Books", "Electronics", "Fashion", "Home", "Sports"}, cats)
}

func TestAddItemEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"EL-001","quantity":2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success", resp.Status)

	cart, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	lines, ok := cart["lines"].([]interface{})
	require.True(t, ok)
	assert.Len(t, lines, 1)

	// unknown product maps to 404
	w, resp = doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"NOPE-9","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Fail", resp.Status)

	// missing body maps to 400
	w, _ = doJSON(t, router, http.MethodPost, "/cart/items", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuantityEndpoints(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"EL-001","quantity":1}`)
	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"EL-002","quantity":1}`)

	w, resp := doJSON(t, router, http.MethodPatch, "/cart/items/EL-001", `{"quantity":5}`)
	assert.Equal(t, http.StatusOK, w.Code)
	cart := resp.Data.(map[string]interface{})
	lines := cart["lines"].([]interface{})
	require.Len(t, lines, 2)
	assert.EqualValues(t, 5, lines[0].(map[string]interface{})["quantity"])

	// zero quantity removes the line
	w, resp = doJSON(t, router, http.MethodPatch, "/cart/items/EL-001", `{"quantity":0}`)
	assert.Equal(t, http.StatusOK, w.Code)
	cart = resp.Data.(map[string]interface{})
	assert.Len(t, cart["lines"].([]interface{}), 1)

	// batch update
	w, resp = doJSON(t, router, http.MethodPatch, "/cart/items", `[{"product_id":"EL-002","quantity":3}]`)
	assert.Equal(t, http.StatusOK, w.Code)
	cart = resp.Data.(map[string]interface{})
	lines = cart["lines"].([]interface{})
	require.Len(t, lines, 1)
	assert.EqualValues(t, 3, lines[0].(map[string]interface{})["quantity"])

	// remove + clear
	w, _ = doJSON(t, router, http.MethodDelete, "/cart/items/EL-002", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, router, http.MethodDelete, "/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSettingsAndTotalsEndpoints(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"EL-002","quantity":1}`) // 6999.00

	w, resp := doJSON(t, router, http.MethodPut, "/settings", `{"discount":"SAVE10","shipping":50.00}`)
	assert.Equal(t, http.StatusOK, w.Code)
	cart := resp.Data.(map[string]interface{})
	totals := cart["totals"].(map[string]interface{})
	assert.Equal(t, "699.9", totals["item_discount"])
	assert.Equal(t, "944.87", totals["tax"]) // (6999-699.90)*0.15 = 944.865 -> 944.87

	// negative shipping rejected
	w, _ = doJSON(t, router, http.MethodPut, "/settings", `{"discount":"","shipping":-5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = doJSON(t, router, http.MethodGet, "/settings", "")
	assert.Equal(t, http.StatusOK, w.Code)
	settings := resp.Data.(map[string]interface{})
	assert.Equal(t, "SAVE10", settings["discount"])
}

func TestSaveLoadCheckoutEndpoints(t *testing.T) {
	router := newTestRouter(t)

	// checkout on an empty cart conflicts
	w, _ := doJSON(t, router, http.MethodPost, "/cart/checkout", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// load before any save is a 404
	w, _ = doJSON(t, router, http.MethodPost, "/cart/load", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"SP-301","quantity":2}`)

	w, _ = doJSON(t, router, http.MethodPost, "/cart/save", "")
	assert.Equal(t, http.StatusOK, w.Code)

	doJSON(t, router, http.MethodDelete, "/cart", "")

	w, resp := doJSON(t, router, http.MethodPost, "/cart/load", "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 0, data["skipped_records"])
	cart := data["cart"].(map[string]interface{})
	assert.Len(t, cart["lines"].([]interface{}), 1)

	w, resp = doJSON(t, router, http.MethodPost, "/cart/checkout", "")
	assert.Equal(t, http.StatusOK, w.Code)
	totals := resp.Data.(map[string]interface{})
	assert.Equal(t, "698", totals["subtotal"]) // 2 x 349.00
}

func TestReceiptEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodGet, "/cart/receipt", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	doJSON(t, router, http.MethodPost, "/cart/items", `{"product_id":"BK-401","quantity":1}`)

	req := httptest.NewRequest(http.MethodGet, "/cart/receipt", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "==== Receipt ====")
	assert.Contains(t, rec.Body.String(), "BK-401")
}
