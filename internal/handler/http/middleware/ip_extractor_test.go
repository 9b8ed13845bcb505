package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteAddrExtractor_ExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       string
		wantErr    bool
	}{
		{"IPv4 with port", "192.168.1.1:54321", "", "192.168.1.1", false},
		{"IPv6 with port", "[2001:db8::1]:443", "", "2001:db8::1", false},
		{"no port", "192.168.1.9", "", "192.168.1.9", false},
		{"ignores X-Forwarded-For", "203.0.113.9:1234", "10.0.0.1", "203.0.113.9", false},
		{"garbage", "not-an-ip", "", "", true},
	}

	extractor := &RemoteAddrExtractor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}

			got, err := extractor.ExtractIP(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrustedProxyExtractor_ExtractIP(t *testing.T) {
	cfg := TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	}

	tests := []struct {
		name       string
		config     TrustedProxyConfig
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"trusted proxy uses first XFF entry", cfg, "10.1.2.3:80", "203.0.113.195, 70.41.3.18", "", "203.0.113.195"},
		{"trusted proxy falls back to X-Real-IP", cfg, "10.1.2.3:80", "", "198.51.100.7", "198.51.100.7"},
		{"trusted proxy with invalid XFF", cfg, "10.1.2.3:80", "garbage", "", "10.1.2.3"},
		{"trusted proxy without headers", cfg, "10.1.2.3:80", "", "", "10.1.2.3"},
		{"untrusted peer ignores XFF", cfg, "203.0.113.9:1234", "10.0.0.1", "", "203.0.113.9"},
		{"untrusted peer ignores X-Real-IP", cfg, "203.0.113.9:1234", "", "10.0.0.1", "203.0.113.9"},
		{"disabled ignores headers", TrustedProxyConfig{}, "10.1.2.3:80", "203.0.113.195", "", "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}

			got, err := NewTrustedProxyExtractor(tt.config).ExtractIP(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadTrustedProxyConfig(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("TRUST_PROXY", "")
		cfg, err := LoadTrustedProxyConfig()
		require.NoError(t, err)
		assert.False(t, cfg.Enabled)
		assert.IsType(t, &RemoteAddrExtractor{}, NewIPExtractor(cfg))
	})

	t.Run("parses IPs and CIDRs", func(t *testing.T) {
		t.Setenv("TRUST_PROXY", "true")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12,2001:db8::1")
		cfg, err := LoadTrustedProxyConfig()
		require.NoError(t, err)
		assert.Equal(t, []netip.Prefix{
			netip.MustParsePrefix("10.0.0.1/32"),
			netip.MustParsePrefix("172.16.0.0/12"),
			netip.MustParsePrefix("2001:db8::1/128"),
		}, cfg.AllowedCIDRs)
		assert.True(t, cfg.IsTrusted("172.20.1.1:443"))
		assert.False(t, cfg.IsTrusted("10.0.0.2:443"))
		assert.IsType(t, &TrustedProxyExtractor{}, NewIPExtractor(cfg))
	})

	t.Run("enabled without proxies", func(t *testing.T) {
		t.Setenv("TRUST_PROXY", "true")
		t.Setenv("TRUSTED_PROXIES", " , ")
		_, err := LoadTrustedProxyConfig()
		assert.Error(t, err)
	})

	t.Run("invalid entry", func(t *testing.T) {
		t.Setenv("TRUST_PROXY", "true")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,proxy.local")
		_, err := LoadTrustedProxyConfig()
		assert.ErrorContains(t, err, "proxy.local")
	})
}
