package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"brasserie/config"
	"brasserie/internal/httplog"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	RestaurantSvcURL string
	AnalyticsSvcURL  string
	FrontendURL      string
	SocketHost       string
	Profile          config.RoleProfile
	ProxyTimeout     time.Duration
}

type Gateway struct {
	config Config
	client HTTPClient
	logger *zap.SugaredLogger
}

func NewGateway(cfg Config, client HTTPClient, logger *zap.SugaredLogger) *Gateway {
	if cfg.ProxyTimeout <= 0 {
		cfg.ProxyTimeout = 30 * time.Second
	}
	return &Gateway{config: cfg, client: client, logger: logger}
}

// Asset prefixes are served to every role.
var assetPrefixes = []string{"/_next/", "/static/", "/favicon.ico"}

var restaurantAnalytics = regexp.MustCompile(`^/api/restaurants/[^/]+/(analytics|cash-register|peak-hours)(/|$)`)

func isAnalyticsPath(path string) bool {
	return strings.HasPrefix(path, "/api/analytics/") || restaurantAnalytics.MatchString(path)
}

// hopHeaders are dropped in both directions.
var hopHeaders = []string{
	"Connection", "Keep-Alive", "Proxy-Authenticate", "Proxy-Authorization",
	"Te", "Trailer", "Transfer-Encoding", "Upgrade",
}

func copyHeaders(dst, src http.Header) {
	for k, v := range src {
		dst[k] = append([]string(nil), v...)
	}
	for _, h := range hopHeaders {
		dst.Del(h)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
		"role":    string(g.config.Profile.Role),
	})
}

type RoleResponse struct {
	Role      config.Role `json:"role"`
	Routes    []string    `json:"routes"`
	SocketURL string      `json:"socketUrl"`
}

func (g *Gateway) RoleInfo(w http.ResponseWriter, r *http.Request) {
	p := g.config.Profile
	writeJSON(w, http.StatusOK, RoleResponse{
		Role:      p.Role,
		Routes:    p.Routes,
		SocketURL: p.SocketURL(g.config.SocketHost),
	})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := strings.TrimRight(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	ctx, cancel := context.WithTimeout(r.Context(), g.config.ProxyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, r.Method, url, r.Body)
	if err != nil {
		g.logger.Errorw("failed to build upstream request", "url", url, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	copyHeaders(req.Header, r.Header)
	req.Header.Set("X-Request-ID", httplog.RequestID(r))
	req.Header.Set("X-Forwarded-Host", r.Host)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warnw("upstream unreachable", "upstream", targetURL, "path", r.URL.Path,
			"request_id", httplog.RequestID(r), "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Upstream service unavailable"})
		return
	}
	defer resp.Body.Close()

	copyHeaders(w.Header(), resp.Header)
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Warnw("failed to copy upstream response", "upstream", targetURL, "error", err)
	}
}

// RouteAPI sends analytics reads to analytics-svc and everything else to
// restaurant-svc.
func (g *Gateway) RouteAPI(w http.ResponseWriter, r *http.Request) {
	if isAnalyticsPath(r.URL.Path) {
		g.ProxyRequest(w, r, g.config.AnalyticsSvcURL)
		return
	}
	g.ProxyRequest(w, r, g.config.RestaurantSvcURL)
}

// RoutePage serves the role's screens from the frontend and bounces every
// other page to the role's home screen.
func (g *Gateway) RoutePage(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	for _, prefix := range assetPrefixes {
		if strings.HasPrefix(path, prefix) {
			g.ProxyRequest(w, r, g.config.FrontendURL)
			return
		}
	}

	if !g.config.Profile.Allows(path) {
		http.Redirect(w, r, g.config.Profile.Home(), http.StatusTemporaryRedirect)
		return
	}
	g.ProxyRequest(w, r, g.config.FrontendURL)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(httplog.Middleware(g.logger))
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.HandleFunc("/api/role", g.RoleInfo).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteAPI)
	r.PathPrefix("/").HandlerFunc(g.RoutePage)
	return r
}
