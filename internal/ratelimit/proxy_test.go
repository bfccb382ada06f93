package ratelimit_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletgraph/walletgraph/internal/config"
	"github.com/walletgraph/walletgraph/internal/logger"
	"github.com/walletgraph/walletgraph/internal/ratelimit"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func testConfig() config.RateLimiterConfig {
	return config.RateLimiterConfig{
		MaxWorkers:   4,
		MaxQueueSize: 16,
		Providers: map[string]config.RateLimitConfig{
			"test-provider": {
				RequestsPerSecond: 100,
				Burst:             100,
				MaxQueueTime:      time.Minute,
			},
		},
	}
}

func TestNewProxy_Success(t *testing.T) {
	proxy, err := ratelimit.NewProxy(testConfig())
	require.NoError(t, err)
	require.NotNil(t, proxy)
	assert.NoError(t, proxy.Close())
}

func TestNewProxy_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.RateLimiterConfig
	}{
		{
			name: "no providers",
			cfg:  config.RateLimiterConfig{MaxWorkers: 4},
		},
		{
			name: "non-positive requests per second",
			cfg: config.RateLimiterConfig{
				Providers: map[string]config.RateLimitConfig{
					"bad": {RequestsPerSecond: 0},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ratelimit.NewProxy(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestProxy_Request(t *testing.T) {
	proxy, err := ratelimit.NewProxy(testConfig())
	require.NoError(t, err)
	defer proxy.Close() //nolint:errcheck

	result, err := proxy.Request(context.Background(), "test-provider", func(ctx context.Context) (interface{}, error) {
		return "payload", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "payload", result)
}

func TestProxy_Request_PropagatesError(t *testing.T) {
	proxy, err := ratelimit.NewProxy(testConfig())
	require.NoError(t, err)
	defer proxy.Close() //nolint:errcheck

	wantErr := errors.New("upstream failed")
	_, err = proxy.Request(context.Background(), "test-provider", func(ctx context.Context) (interface{}, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestProxy_Request_UnknownProvider(t *testing.T) {
	proxy, err := ratelimit.NewProxy(testConfig())
	require.NoError(t, err)
	defer proxy.Close() //nolint:errcheck

	_, err = proxy.Request(context.Background(), "unknown", func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	assert.ErrorContains(t, err, "not configured")
}

func TestProxy_Request_AfterClose(t *testing.T) {
	proxy, err := ratelimit.NewProxy(testConfig())
	require.NoError(t, err)
	require.NoError(t, proxy.Close())

	_, err = proxy.Request(context.Background(), "test-provider", func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	assert.ErrorContains(t, err, "closed")
}

func TestProxy_Request_EnforcesRate(t *testing.T) {
	cfg := config.RateLimiterConfig{
		MaxWorkers:   4,
		MaxQueueSize: 16,
		Providers: map[string]config.RateLimitConfig{
			"slow": {
				RequestsPerSecond: 10,
				Burst:             1,
				MaxQueueTime:      time.Minute,
			},
		},
	}
	proxy, err := ratelimit.NewProxy(cfg)
	require.NoError(t, err)
	defer proxy.Close() //nolint:errcheck

	start := time.Now()
	for range 3 {
		_, err := proxy.Request(context.Background(), "slow", func(ctx context.Context) (interface{}, error) {
			return nil, nil
		})
		require.NoError(t, err)
	}

	// Burst of 1 at 10 rps: the second and third calls wait ~100ms each
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestRequest_Generic(t *testing.T) {
	proxy, err := ratelimit.NewProxy(testConfig())
	require.NoError(t, err)
	defer proxy.Close() //nolint:errcheck

	value, err := ratelimit.Request(context.Background(), proxy, "test-provider", func(ctx context.Context) ([]byte, error) {
		return []byte("typed"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("typed"), value)
}

func TestRequest_Generic_NilProxyCallsDirectly(t *testing.T) {
	called := false
	value, err := ratelimit.Request(context.Background(), nil, "any", func(ctx context.Context) (int, error) {
		called = true
		return 42, nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 42, value)
}

func TestProxy_Close_Idempotent(t *testing.T) {
	proxy, err := ratelimit.NewProxy(testConfig())
	require.NoError(t, err)
	assert.NoError(t, proxy.Close())
	assert.NoError(t, proxy.Close())
}
