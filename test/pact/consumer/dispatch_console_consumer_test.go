//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/logitrack/logitrack/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type orderLinePayload struct {
	ItemID      int64  `json:"itemId"`
	ItemName    string `json:"itemName,omitempty"`
	Quantity    int32  `json:"quantity"`
	ItemMissing bool   `json:"itemMissing,omitempty"`
}

type orderPayload struct {
	OrderID      int64              `json:"orderId"`
	CustomerName string             `json:"customerName"`
	DatePlaced   string             `json:"datePlaced"`
	Items        []orderLinePayload `json:"items"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestDispatchConsoleContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problemContentType := matchers.S("application/problem+json")
	itemMatcher := matchers.Map{
		"itemId":   matchers.Like(pacttest.ExistingItemID),
		"name":     matchers.Like(pacttest.ExampleItemName),
		"quantity": matchers.Like(12),
		"location": matchers.Like(pacttest.ExampleLocation),
	}
	orderMatcher := func(orderID int64) matchers.Map {
		return matchers.Map{
			"orderId":      matchers.Like(orderID),
			"customerName": matchers.Like(pacttest.ExampleCustomer),
			"datePlaced":   matchers.Like(pacttest.ExampleDatePlaced),
			"items": matchers.EachLike(matchers.Map{
				"itemId":   matchers.Like(pacttest.ExistingItemID),
				"itemName": matchers.Like(pacttest.ExampleItemName),
				"quantity": matchers.Like(2),
			}, 1),
		}
	}

	pact.AddInteraction().
		Given(pacttest.StateInventoryBaseline).
		UponReceiving("a request to add an inventory item").
		WithRequest("POST", "/api/inventory", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleItemPayload())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(itemMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateItemExists).
		UponReceiving("a request to create an order for an existing item").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderPayload(pacttest.NewOrderID, pacttest.ExistingItemID))
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderMatcher(pacttest.NewOrderID))
		})

	pact.AddInteraction().
		Given(pacttest.StateInventoryBaseline).
		UponReceiving("a request to create an order for an unknown item").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderPayload(pacttest.NewOrderID, pacttest.UnknownItemID))
		}).
		WillRespondWith(http.StatusUnprocessableEntity, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/unprocessable-entity"),
				"status": matchers.Like(http.StatusUnprocessableEntity),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to fetch an existing order").
		WithRequest("GET", fmt.Sprintf("/api/orders/%d", pacttest.ExistingOrderID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderMatcher(pacttest.ExistingOrderID))
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing order").
		WithRequest("GET", fmt.Sprintf("/api/orders/%d", pacttest.MissingOrderID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newDispatchClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := client.post(ctx, "/api/inventory", pacttest.ExampleItemPayload(), nil); err != nil {
			return fmt.Errorf("add item: %w", err)
		}

		var created orderPayload
		if err := client.post(ctx, "/api/orders", pacttest.ExampleOrderPayload(pacttest.NewOrderID, pacttest.ExistingItemID), &created); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if created.OrderID != pacttest.NewOrderID || len(created.Items) == 0 {
			return fmt.Errorf("unexpected created order %+v", created)
		}

		err := client.post(ctx, "/api/orders", pacttest.ExampleOrderPayload(pacttest.NewOrderID, pacttest.UnknownItemID), nil)
		if apiErr, ok := err.(apiError); !ok || apiErr.Status() != http.StatusUnprocessableEntity {
			return fmt.Errorf("expected 422 for unknown item, got %v", err)
		}

		var fetched orderPayload
		if err := client.get(ctx, fmt.Sprintf("/api/orders/%d", pacttest.ExistingOrderID), &fetched); err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if fetched.OrderID != pacttest.ExistingOrderID {
			return fmt.Errorf("expected order id %d, got %+v", pacttest.ExistingOrderID, fetched)
		}

		err = client.get(ctx, fmt.Sprintf("/api/orders/%d", pacttest.MissingOrderID), nil)
		if apiErr, ok := err.(apiError); !ok || apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404 for order %d, got %v", pacttest.MissingOrderID, err)
		}
		return nil
	})
	require.NoError(t, err)
}

type dispatchClient struct {
	baseURL    string
	httpClient *http.Client
}

func newDispatchClient(config pactconsumer.MockServerConfig) *dispatchClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &dispatchClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *dispatchClient) post(ctx context.Context, path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *dispatchClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *dispatchClient) do(req *http.Request, out any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
