package logitrackserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every bounded context.
type ApiHandleFunctions struct {
	InventoryAPI InventoryAPI
	OrderAPI     OrderAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler bound.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListItems", http.MethodGet, "/api/inventory", handleFunctions.InventoryAPI.ListItems},
		{"AddItem", http.MethodPost, "/api/inventory", handleFunctions.InventoryAPI.AddItem},
		{"GetItem", http.MethodGet, "/api/inventory/:itemId", handleFunctions.InventoryAPI.GetItem},
		{"DeleteItem", http.MethodDelete, "/api/inventory/:itemId", handleFunctions.InventoryAPI.DeleteItem},
		{"ListOrders", http.MethodGet, "/api/orders", handleFunctions.OrderAPI.ListOrders},
		{"CreateOrder", http.MethodPost, "/api/orders", handleFunctions.OrderAPI.CreateOrder},
		{"GetOrder", http.MethodGet, "/api/orders/:orderId", handleFunctions.OrderAPI.GetOrder},
		{"DeleteOrder", http.MethodDelete, "/api/orders/:orderId", handleFunctions.OrderAPI.DeleteOrder},
	}
}
