package security

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
)

var suspiciousPatterns = []string{
	"../", "..\\", ".env", ".git", "wp-admin", "phpmyadmin",
	"<script", "javascript:", "union select", "etc/passwd",
}

var suspiciousAgents = []string{"sqlmap", "nikto", "gobuster", "dirb", "nmap"}

// Detector flags probing requests and resolves the client address used for
// rate limiting.
type Detector struct {
	suspicious     int64
	trustedProxies []*net.IPNet
}

func NewDetector() *Detector {
	d := &Detector{}
	for _, cidr := range []string{"127.0.0.0/8", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16", "::1/128"} {
		if err := d.AddTrustedProxy(cidr); err != nil {
			panic(err)
		}
	}
	return d
}

// DetectSuspiciousRequest reports whether the request looks like a scan.
func (d *Detector) DetectSuspiciousRequest(r *http.Request) bool {
	target := r.URL.Path + "?" + r.URL.RawQuery
	if unescaped, err := url.QueryUnescape(target); err == nil {
		target = unescaped
	}
	target = strings.ToLower(target)
	agent := strings.ToLower(r.Header.Get("User-Agent"))

	suspicious := len(target) > 2048 || r.Method == http.MethodTrace || r.Method == http.MethodConnect
	for _, p := range suspiciousPatterns {
		if strings.Contains(target, p) {
			suspicious = true
		}
	}
	for _, a := range suspiciousAgents {
		if strings.Contains(agent, a) {
			suspicious = true
		}
	}

	if suspicious {
		atomic.AddInt64(&d.suspicious, 1)
	}
	return suspicious
}

// Middleware logs nothing itself; it rejects suspicious requests with 400
// and calls onSuspicious so the caller can log with its own logger.
func (d *Detector) Middleware(onSuspicious func(*http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d.DetectSuspiciousRequest(r) {
				if onSuspicious != nil {
					onSuspicious(r)
				}
				http.Error(w, "Bad request", http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ExtractClientIP returns the peer address, or the first X-Forwarded-For /
// X-Real-IP entry when the peer is a trusted proxy.
func (d *Detector) ExtractClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}

	parsed := net.ParseIP(directIP)
	if parsed == nil || !d.isTrustedProxy(parsed) {
		return directIP
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}
	return directIP
}

func (d *Detector) isTrustedProxy(ip net.IP) bool {
	for _, network := range d.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// SuspiciousRequests returns how many requests were flagged
func (d *Detector) SuspiciousRequests() int64 {
	return atomic.LoadInt64(&d.suspicious)
}

// AddTrustedProxy adds a trusted proxy network
func (d *Detector) AddTrustedProxy(cidr string) error {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return fmt.Errorf("invalid CIDR %s: %w", cidr, err)
	}
	d.trustedProxies = append(d.trustedProxies, network)
	return nil
}
