package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	invapp "github.com/orderflow/order-fulfillment/internal/inventory/application"
	invhttp "github.com/orderflow/order-fulfillment/internal/inventory/infrastructure/http"
	invmem "github.com/orderflow/order-fulfillment/internal/inventory/infrastructure/memory"
	notifapp "github.com/orderflow/order-fulfillment/internal/notification/application"
	notifhttp "github.com/orderflow/order-fulfillment/internal/notification/infrastructure/http"
	notifmem "github.com/orderflow/order-fulfillment/internal/notification/infrastructure/memory"
	"github.com/orderflow/order-fulfillment/internal/order/application"
	"github.com/orderflow/order-fulfillment/internal/order/infrastructure/httpclient"
	ordermem "github.com/orderflow/order-fulfillment/internal/order/infrastructure/memory"
	"github.com/orderflow/order-fulfillment/pkg/dispatch"
)

// fulfillmentEnv wires the three services together the way the binaries do,
// with real HTTP in between and in-memory stores behind each service.
type fulfillmentEnv struct {
	orders       *httptest.Server
	inventory    *httptest.Server
	notifyRepo   *notifmem.Repository
	notifyBroken *brokenSwitch
}

type brokenSwitch struct {
	mu     sync.Mutex
	broken bool
}

func (b *brokenSwitch) set(v bool) {
	b.mu.Lock()
	b.broken = v
	b.mu.Unlock()
}

func (b *brokenSwitch) get() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.broken
}

func setupFulfillment(t *testing.T) *fulfillmentEnv {
	t.Helper()
	log := slog.New(slog.DiscardHandler)

	invSvc := invapp.NewService(log, invmem.NewStore())
	invSrv := httptest.NewServer(invhttp.NewHandler(log, invSvc).Routes())
	t.Cleanup(invSrv.Close)

	notifyRepo := notifmem.NewRepository()
	broken := &brokenSwitch{}
	notifHandler := notifhttp.NewHandler(log, notifapp.NewService(log, notifyRepo, nil)).Routes()
	notifSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if broken.get() {
			http.Error(w, `{"error":"sink down"}`, http.StatusInternalServerError)
			return
		}
		notifHandler.ServeHTTP(w, r)
	}))
	t.Cleanup(notifSrv.Close)

	queue := dispatch.NewQueue(log, 64, time.Second)
	qctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = queue.Run(qctx) }()

	svc := application.NewService(log,
		ordermem.NewRepository(),
		httpclient.NewInventoryClient(log, invSrv.URL, 2*time.Second),
		httpclient.NewNotificationClient(log, notifSrv.URL, 2*time.Second),
		nil,
		queue,
	)
	orderSrv := httptest.NewServer(NewHandler(log, svc).Routes())
	t.Cleanup(orderSrv.Close)

	return &fulfillmentEnv{
		orders:       orderSrv,
		inventory:    invSrv,
		notifyRepo:   notifyRepo,
		notifyBroken: broken,
	}
}

func (e *fulfillmentEnv) seedStock(t *testing.T, productID string, quantity int) {
	t.Helper()
	resp := postJSON(t, e.inventory.URL+"/inventory", map[string]any{"productId": productID, "quantity": quantity})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (e *fulfillmentEnv) stock(t *testing.T, productID string) int {
	t.Helper()
	resp, err := http.Get(e.inventory.URL + "/inventory/" + productID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return int(decodeBody(t, resp)["quantity"].(float64))
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func TestCreateOrder_Confirmed(t *testing.T) {
	e := setupFulfillment(t)
	e.seedStock(t, "sku-1", 10)

	resp := postJSON(t, e.orders.URL+"/orders", map[string]any{"customerId": "c1", "productId": "sku-1", "quantity": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "CONFIRMED", body["status"])
	require.NotEmpty(t, body["id"])
	require.Equal(t, "c1", body["customerId"])

	require.Equal(t, 7, e.stock(t, "sku-1"))

	// The confirmation reaches the sink after the response; poll briefly.
	orderID := body["id"].(string)
	require.Eventually(t, func() bool {
		_, err := e.notifyRepo.GetByOrderID(context.Background(), orderID)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	e := setupFulfillment(t)
	e.seedStock(t, "sku-2", 2)

	resp := postJSON(t, e.orders.URL+"/orders", map[string]any{"customerId": "c1", "productId": "sku-2", "quantity": 5})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Insufficient stock", decodeBody(t, resp)["error"])

	require.Equal(t, 2, e.stock(t, "sku-2"))
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	e := setupFulfillment(t)

	resp := postJSON(t, e.orders.URL+"/orders", map[string]any{"customerId": "c1", "productId": "sku-x", "quantity": 1})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Product not found", decodeBody(t, resp)["error"])
}

func TestCreateOrder_InvalidRequest(t *testing.T) {
	e := setupFulfillment(t)

	resp := postJSON(t, e.orders.URL+"/orders", map[string]any{"customerId": "c1", "productId": "sku-1", "quantity": 0})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Post(e.orders.URL+"/orders", "application/json", bytes.NewReader([]byte("nope")))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// Two concurrent orders for stock that covers only one: exactly one confirms.
func TestCreateOrder_ConcurrentContention(t *testing.T) {
	e := setupFulfillment(t)
	e.seedStock(t, "sku-3", 5)

	statuses := make(chan int, 2)
	for i := 0; i < 2; i++ {
		go func() {
			b, _ := json.Marshal(map[string]any{"customerId": "c1", "productId": "sku-3", "quantity": 4})
			resp, err := http.Post(e.orders.URL+"/orders", "application/json", bytes.NewReader(b))
			if err != nil {
				statuses <- 0
				return
			}
			resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}

	got := []int{<-statuses, <-statuses}
	require.ElementsMatch(t, []int{http.StatusOK, http.StatusBadRequest}, got)
	require.Equal(t, 1, e.stock(t, "sku-3"))
}

func TestCreateOrder_NotificationSinkDown(t *testing.T) {
	e := setupFulfillment(t)
	e.seedStock(t, "sku-1", 10)
	e.notifyBroken.set(true)

	resp := postJSON(t, e.orders.URL+"/orders", map[string]any{"customerId": "c1", "productId": "sku-1", "quantity": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "CONFIRMED", decodeBody(t, resp)["status"])
	require.Equal(t, 7, e.stock(t, "sku-1"))
}

func TestCreateOrder_InventoryServiceDown(t *testing.T) {
	e := setupFulfillment(t)
	e.inventory.Close()

	resp := postJSON(t, e.orders.URL+"/orders", map[string]any{"customerId": "c1", "productId": "sku-1", "quantity": 1})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "failed to reserve inventory", decodeBody(t, resp)["error"])
}

func TestGetOrder(t *testing.T) {
	e := setupFulfillment(t)
	e.seedStock(t, "sku-1", 10)

	resp := postJSON(t, e.orders.URL+"/orders", map[string]any{"customerId": "c1", "productId": "sku-1", "quantity": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	orderID := decodeBody(t, resp)["id"].(string)

	getResp, err := http.Get(e.orders.URL + "/orders/" + orderID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	require.Equal(t, orderID, decodeBody(t, getResp)["id"])

	missing, err := http.Get(e.orders.URL + "/orders/nope")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
	missing.Body.Close()
}
