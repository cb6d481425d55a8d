package logitrackserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	orderhttpmapper "github.com/logitrack/logitrack/internal/domains/orders/adapters/http/mapper"
	"github.com/logitrack/logitrack/internal/domains/orders/application/types"
	orderports "github.com/logitrack/logitrack/internal/domains/orders/ports"
	apierrors "github.com/logitrack/logitrack/internal/shared/errors"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI. A nil orchestrator creates orders through the service.
func NewOrderAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Get /api/orders
// Lists one page of orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	page, pageSize := defaultPage, defaultPageSize
	query := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "pageSize", query, &pageSize); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	fields := map[string]string{}
	if page < 1 {
		fields["page"] = fmt.Sprintf("must be at least 1 (value: %d)", page)
	}
	if pageSize < 1 {
		fields["pageSize"] = fmt.Sprintf("must be at least 1 (value: %d)", pageSize)
	}
	if len(fields) > 0 {
		respondProblem(c, apierrors.NewValidationProblem(fields).WithDetail("page and pageSize must be positive"))
		return
	}
	orders, err := api.service.ListOrders(c.Request.Context(), types.ListOrdersInput{Page: page, PageSize: pageSize})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromProjectionList(orders))
}

// Post /api/orders
// Creates an order with its lines
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.Order
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	created, err := api.createOrder(c.Request.Context(), orderhttpmapper.ToCreateOrderInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/orders/%d", created.ID))
	c.JSON(http.StatusCreated, orderhttpmapper.FromProjection(created))
}

func (api *OrderAPI) createOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	if api.workflows != nil {
		return api.workflows.CreateOrder(ctx, input)
	}
	return api.service.CreateOrder(ctx, input)
}

// Get /api/orders/:orderId
// Finds an order by id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromProjection(order))
}

// Delete /api/orders/:orderId
// Deletes an order and its lines
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
