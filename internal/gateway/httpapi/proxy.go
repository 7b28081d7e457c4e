package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/andreasstove999/shop-system/internal/gateway/middleware"
	"github.com/andreasstove999/shop-system/internal/httpx"
)

// Proxy forwards requests for one upstream service.
type Proxy struct {
	name   string
	base   *url.URL
	client *http.Client
}

func NewProxy(name, baseURL string, client *http.Client) *Proxy {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid %s base url %q: %v", name, baseURL, err))
	}
	return &Proxy{name: name, base: u, client: client}
}

// Rewrite forwards the request with the route prefix swapped, e.g.
// /api/users/42 -> /users/42 on the upstream.
func (p *Proxy) Rewrite(stripPrefix, withPrefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := withPrefix + strings.TrimPrefix(r.URL.Path, stripPrefix)
		p.forward(w, r, path)
	}
}

func (p *Proxy) forward(w http.ResponseWriter, r *http.Request, path string) {
	u := p.base.ResolveReference(&url.URL{Path: path, RawQuery: r.URL.RawQuery})

	req, err := http.NewRequestWithContext(r.Context(), r.Method, u.String(), r.Body)
	if err != nil {
		writeUpstreamError(w, http.StatusBadGateway, p.name+" request failed: "+err.Error())
		return
	}

	copyHeaders(req.Header, r.Header)

	// Ensure correlation id propagated downstream
	if cid := middleware.GetCorrelationID(r.Context()); cid != "" {
		req.Header.Set(middleware.HeaderCorrelationID, cid)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		writeUpstreamError(w, http.StatusBadGateway, p.name+" request failed: "+err.Error())
		return
	}
	defer resp.Body.Close()

	copyUpstreamResponse(w, resp)
}

// Health probes the upstream's /health endpoint.
func (p *Proxy) Health(ctx context.Context) error {
	u := p.base.ResolveReference(&url.URL{Path: "/health"})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s unreachable: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s health returned status %d", p.name, resp.StatusCode)
	}
	return nil
}

func copyUpstreamResponse(w http.ResponseWriter, resp *http.Response) {
	// Copy headers (avoid hop-by-hop)
	for k, vv := range resp.Header {
		if isHopByHopHeader(k) {
			continue
		}
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func writeUpstreamError(w http.ResponseWriter, status int, msg string) {
	httpx.WriteError(w, status, msg)
}

func copyHeaders(dst, src http.Header) {
	for k, vv := range src {
		if isHopByHopHeader(k) {
			continue
		}
		// Host is not a header key here (it's req.Host), but keep this rule anyway
		if strings.EqualFold(k, "Host") {
			continue
		}
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}

// Hop-by-hop headers (RFC 7230)
func isHopByHopHeader(k string) bool {
	switch http.CanonicalHeaderKey(k) {
	case "Connection", "Proxy-Connection", "Keep-Alive",
		"Proxy-Authenticate", "Proxy-Authorization",
		"Te", "Trailer", "Transfer-Encoding", "Upgrade":
		return true
	default:
		return false
	}
}
