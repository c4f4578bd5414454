package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	fetchTimeout      = 30 * time.Second
	dialTimeout       = 10 * time.Second
	maxFetchRedirects = 5
)

// errBlockedAddress reports a contract URL whose host resolves to an
// address the server may not reach.
var errBlockedAddress = errors.New("contract host resolves to a blocked address")

func blockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsMulticast()
}

// addressGuard resolves contract hosts and rejects blocked addresses.
type addressGuard struct {
	resolver *net.Resolver
}

// check returns the addresses of host, or errBlockedAddress when any of
// them is blocked. IP literals are checked without a lookup.
func (g addressGuard) check(ctx context.Context, host string) ([]net.IP, error) {
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		addrs, err := g.resolver.LookupIPAddr(ctx, host)
		if err != nil {
			return nil, fmt.Errorf("resolving contract host %s: %w", host, err)
		}
		for _, a := range addrs {
			ips = append(ips, a.IP)
		}
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("contract host %s has no addresses", host)
	}
	for _, ip := range ips {
		if blockedIP(ip) {
			return nil, fmt.Errorf("%w: %s (%s)", errBlockedAddress, host, ip)
		}
	}
	return ips, nil
}

// dialContext connects only to addresses that passed check, trying them in
// order.
func (g addressGuard) dialContext(dialer *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		ips, err := g.check(ctx, host)
		if err != nil {
			return nil, err
		}
		var lastErr error
		for _, ip := range ips {
			conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip.String(), port))
			if err == nil {
				return conn, nil
			}
			lastErr = err
		}
		return nil, lastErr
	}
}

// newFetchClient returns the client contract URLs are fetched with. Unless
// allowPrivate is set, hosts resolving to private, loopback or link-local
// addresses are refused, on redirects too.
func newFetchClient(allowPrivate bool) *http.Client {
	guard := addressGuard{resolver: net.DefaultResolver}
	client := &http.Client{
		Timeout: fetchTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxFetchRedirects {
				return fmt.Errorf("contract fetch stopped after %d redirects", maxFetchRedirects)
			}
			if allowPrivate {
				return nil
			}
			_, err := guard.check(req.Context(), req.URL.Hostname())
			return err
		},
	}
	if !allowPrivate {
		client.Transport = &http.Transport{
			DialContext:         guard.dialContext(&net.Dialer{Timeout: dialTimeout}),
			TLSHandshakeTimeout: dialTimeout,
		}
	}
	return client
}
