package mcpserver

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockedIP(t *testing.T) {
	tests := []struct {
		ip      string
		blocked bool
	}{
		{"127.0.0.1", true},
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"192.168.1.1", true},
		{"169.254.169.254", true}, // cloud metadata
		{"::1", true},
		{"0.0.0.0", true},
		{"::", true},
		{"fe80::1", true},
		{"fd00::1", true},
		{"224.0.0.1", true},
		{"ff02::1", true},
		{"8.8.8.8", false},
		{"93.184.216.34", false},
		{"2606:4700::1111", false},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			require.NotNil(t, ip)
			assert.Equal(t, tt.blocked, blockedIP(ip))
		})
	}
}

func TestAddressGuardCheck(t *testing.T) {
	g := addressGuard{resolver: net.DefaultResolver}
	ctx := context.Background()

	ips, err := g.check(ctx, "93.184.216.34")
	require.NoError(t, err)
	assert.Equal(t, []net.IP{net.ParseIP("93.184.216.34")}, ips)

	_, err = g.check(ctx, "169.254.169.254")
	assert.ErrorIs(t, err, errBlockedAddress)
	assert.ErrorContains(t, err, "169.254.169.254")

	_, err = g.check(ctx, "::1")
	assert.ErrorIs(t, err, errBlockedAddress)
}

func TestAddressGuardDialRefusesBlocked(t *testing.T) {
	dial := addressGuard{resolver: net.DefaultResolver}.dialContext(&net.Dialer{Timeout: dialTimeout})

	conn, err := dial(context.Background(), "tcp", "127.0.0.1:80")
	assert.Nil(t, conn)
	assert.ErrorIs(t, err, errBlockedAddress)

	_, err = dial(context.Background(), "tcp", "no-port")
	assert.Error(t, err)
}

func TestNewFetchClient(t *testing.T) {
	redirect := func(t *testing.T, target string) *http.Request {
		t.Helper()
		req, err := http.NewRequest(http.MethodGet, target, nil)
		require.NoError(t, err)
		return req
	}
	via := func(n int) []*http.Request { return make([]*http.Request, n) }

	t.Run("guarded", func(t *testing.T) {
		c := newFetchClient(false)
		assert.Equal(t, fetchTimeout, c.Timeout)
		require.NotNil(t, c.Transport)

		assert.NoError(t, c.CheckRedirect(redirect(t, "https://93.184.216.34/nasa.yaml"), via(1)))
		assert.ErrorIs(t, c.CheckRedirect(redirect(t, "http://127.0.0.1/nasa.yaml"), via(1)), errBlockedAddress)
		assert.ErrorContains(t, c.CheckRedirect(redirect(t, "https://93.184.216.34/nasa.yaml"), via(maxFetchRedirects)), "redirects")
	})

	t.Run("private allowed", func(t *testing.T) {
		c := newFetchClient(true)
		assert.Nil(t, c.Transport)
		assert.NoError(t, c.CheckRedirect(redirect(t, "http://127.0.0.1/nasa.yaml"), via(1)))
		assert.Error(t, c.CheckRedirect(redirect(t, "http://127.0.0.1/nasa.yaml"), via(maxFetchRedirects)))
	})
}
