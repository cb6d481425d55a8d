package logitrackserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventorymemory "github.com/logitrack/logitrack/internal/domains/inventory/adapters/memory"
	inventoryapp "github.com/logitrack/logitrack/internal/domains/inventory/application"
	inventoryadapter "github.com/logitrack/logitrack/internal/domains/orders/adapters/inventory"
	ordermemory "github.com/logitrack/logitrack/internal/domains/orders/adapters/memory"
	orderworkflows "github.com/logitrack/logitrack/internal/domains/orders/adapters/workflows"
	orderapp "github.com/logitrack/logitrack/internal/domains/orders/application"
	"github.com/logitrack/logitrack/internal/platform/cache"
	apierrors "github.com/logitrack/logitrack/internal/shared/errors"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	shared := cache.NewMemory()
	items := inventorymemory.NewRepository()
	orderService := orderapp.NewService(ordermemory.NewRepository(ordermemory.WithItemGuard(items)), inventoryadapter.NewReader(items), shared)
	inventoryService := inventoryapp.NewService(items, shared, inventoryapp.WithDependentListings(orderService))
	return NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		InventoryAPI: NewInventoryAPI(inventoryService),
		OrderAPI:     NewOrderAPI(orderService, orderworkflows.NewInlineOrderWorkflows(orderService)),
	})
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func widget() map[string]any {
	return map[string]any{"itemId": 1, "name": "Widget", "quantity": 10, "location": "A1"}
}

func order(id int64, items ...map[string]any) map[string]any {
	if items == nil {
		items = []map[string]any{}
	}
	return map[string]any{
		"orderId":      id,
		"customerName": "Acme",
		"datePlaced":   "2024-06-12T10:00:00Z",
		"items":        items,
	}
}

func TestRouter_OrderLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/inventory", widget())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/inventory/1", rec.Header().Get("Location"))

	rec = do(t, router, http.MethodPost, "/api/orders", order(5, map[string]any{"itemId": 1, "quantity": 2}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/api/orders/5", rec.Header().Get("Location"))

	rec = do(t, router, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.EqualValues(t, 5, listed[0]["orderId"])

	rec = do(t, router, http.MethodDelete, "/api/inventory/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/orders/5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched struct {
		Items []struct {
			ItemID      int64  `json:"itemId"`
			ItemName    string `json:"itemName"`
			ItemMissing bool   `json:"itemMissing"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Len(t, fetched.Items, 1)
	assert.True(t, fetched.Items[0].ItemMissing)
	assert.Empty(t, fetched.Items[0].ItemName)

	rec = do(t, router, http.MethodDelete, "/api/orders/5", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, http.MethodGet, "/api/orders/5", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.TypeNotFound, decodeProblem(t, rec).Type)
}

func TestRouter_UnknownItemIsUnprocessable(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodPost, "/api/orders", order(6, map[string]any{"itemId": 404, "quantity": 1}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeUnprocessable, problem.Type)
	assert.Equal(t, []any{float64(404)}, problem.Extensions["missingItemIds"])

	rec = do(t, router, http.MethodGet, "/api/orders/6", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ValidationProblemListsFields(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodPost, "/api/inventory", map[string]any{
		"itemId": 0, "name": "", "quantity": 10, "location": "A1",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeValidation, problem.Type)
	fields, ok := problem.Extensions["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "itemId")
	assert.Contains(t, fields, "name")
}

func TestRouter_DuplicateIsConflict(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/inventory", widget()).Code)

	rec := do(t, router, http.MethodPost, "/api/inventory", widget())
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_RejectsBadParameters(t *testing.T) {
	router := newTestRouter(t)
	cases := map[string]string{
		"page zero":       "/api/orders?page=0",
		"page size zero":  "/api/orders?pageSize=0",
		"page not number": "/api/orders?page=abc",
		"id not number":   "/api/orders/abc",
		"item id range":   "/api/inventory/0",
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRouter_Pagination(t *testing.T) {
	router := newTestRouter(t)
	for id := int64(1); id <= 3; id++ {
		require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/orders", order(id)).Code)
	}

	rec := do(t, router, http.MethodGet, "/api/orders?page=2&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.EqualValues(t, 3, listed[0]["orderId"])
}
