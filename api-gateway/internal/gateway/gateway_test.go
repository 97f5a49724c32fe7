package gateway_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brasserie/api-gateway/internal/gateway"
	"brasserie/api-gateway/internal/mocks"
	"brasserie/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGateway(t *testing.T, role config.Role, client gateway.HTTPClient) http.Handler {
	t.Helper()
	gw := gateway.NewGateway(gateway.Config{
		RestaurantSvcURL: "http://restaurant-svc:8081",
		AnalyticsSvcURL:  "http://analytics-svc:8083",
		FrontendURL:      "http://frontend:3000/",
		SocketHost:       "salle.local",
		Profile:          config.ProfileFor(role),
	}, client, zap.NewNop().Sugar())
	return gw.SetupRoutes()
}

func okResponse(body string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func upstream(host, path string) interface{} {
	return mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Host == host && req.URL.Path == path
	})
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestHealthCheck(t *testing.T) {
	h := newGateway(t, config.RoleBar, nil)

	rr := serve(h, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "bar", body["role"])
}

func TestRoleInfo(t *testing.T) {
	h := newGateway(t, config.RoleWaiter, nil)

	rr := serve(h, http.MethodGet, "/api/role")
	require.Equal(t, http.StatusOK, rr.Code)

	var body gateway.RoleResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, config.RoleWaiter, body.Role)
	assert.Equal(t, []string{"/tables", "/orders", "/payment"}, body.Routes)
	assert.Equal(t, "http://salle.local:3001", body.SocketURL)
}

func TestRouteAPI(t *testing.T) {
	cases := []struct {
		path string
		host string
	}{
		{"/api/orders", "restaurant-svc:8081"},
		{"/api/orders/12/payment", "restaurant-svc:8081"},
		{"/api/restaurants/1", "restaurant-svc:8081"},
		{"/api/analytics/top-today", "analytics-svc:8083"},
		{"/api/restaurants/1/analytics", "analytics-svc:8083"},
		{"/api/restaurants/1/cash-register", "analytics-svc:8083"},
		{"/api/restaurants/1/peak-hours", "analytics-svc:8083"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			client := mocks.NewHTTPClient(t)
			client.On("Do", upstream(tc.host, tc.path)).Return(okResponse(`{"ok":true}`), nil).Once()

			rr := serve(newGateway(t, config.RoleManager, client), http.MethodGet, tc.path)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
		})
	}
}

func TestRouteAPI_ForwardsQueryAndRequestID(t *testing.T) {
	client := mocks.NewHTTPClient(t)
	client.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.RawQuery == "restaurantId=1" && req.Header.Get("X-Request-ID") == "req-42"
	})).Return(okResponse(`{}`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/top-alltime?restaurantId=1", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rr := httptest.NewRecorder()
	newGateway(t, config.RoleManager, client).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouteAPI_UpstreamDown(t *testing.T) {
	client := mocks.NewHTTPClient(t)
	client.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	rr := serve(newGateway(t, config.RoleWaiter, client), http.MethodPost, "/api/orders")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Upstream service unavailable")
}

func TestRoutePage_RedirectsOutsideRole(t *testing.T) {
	cases := []struct {
		role     config.Role
		path     string
		location string
	}{
		{config.RoleKitchen, "/", "/kitchen"},
		{config.RoleKitchen, "/bar", "/kitchen"},
		{config.RoleWaiter, "/analytics", "/tables"},
		{config.RoleManager, "/kitchen", "/"},
		{config.RoleBar, "/barista", "/bar"},
	}
	for _, tc := range cases {
		rr := serve(newGateway(t, tc.role, nil), http.MethodGet, tc.path)
		assert.Equal(t, http.StatusTemporaryRedirect, rr.Code, tc.path)
		assert.Equal(t, tc.location, rr.Header().Get("Location"), tc.path)
	}
}

func TestRoutePage_UnknownRoleOnlyReachesRoot(t *testing.T) {
	client := mocks.NewHTTPClient(t)
	client.On("Do", upstream("frontend:3000", "/")).Return(okResponse("<html>"), nil).Once()

	h := newGateway(t, config.Role("chef"), client)

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/").Code)
	for _, path := range []string{"/analytics", "/staff", "/kitchen"} {
		rr := serve(h, http.MethodGet, path)
		assert.Equal(t, http.StatusTemporaryRedirect, rr.Code, path)
		assert.Equal(t, "/", rr.Header().Get("Location"), path)
	}
}

func TestRoutePage_ProxiesAllowedAndAssets(t *testing.T) {
	client := mocks.NewHTTPClient(t)
	client.On("Do", upstream("frontend:3000", "/orders/12")).Return(okResponse("<html>"), nil).Once()
	client.On("Do", upstream("frontend:3000", "/_next/static/app.js")).Return(okResponse("js"), nil).Once()

	h := newGateway(t, config.RoleWaiter, client)

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/orders/12").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/_next/static/app.js").Code)
}

func TestProxyRequest_AgainstRealUpstream(t *testing.T) {
	var gotPath, gotBody string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Connection", "close")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer backend.Close()

	gw := gateway.NewGateway(gateway.Config{
		RestaurantSvcURL: backend.URL,
		Profile:          config.ProfileFor(config.RoleWaiter),
	}, backend.Client(), zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"tableId":4}`))
	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/api/orders", gotPath)
	assert.Equal(t, `{"tableId":4}`, gotBody)
	assert.JSONEq(t, `{"id":7}`, rr.Body.String())
	assert.Empty(t, rr.Header().Get("Connection"))
}
