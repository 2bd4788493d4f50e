package app

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/usersapi/internal/config"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func freePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())
	return port
}

func TestRunServesAndShutsDown(t *testing.T) {
	cfg, err := config.New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)
	cfg.RunAddr = fmt.Sprintf("127.0.0.1:%d", freePort(t))
	cfg.ShutdownTimeout = 2 * time.Second

	stdout := &syncBuffer{}
	a, err := New(WithConfig(cfg), WithStdout(stdout))
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- a.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "Server is running on")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "Server is running on http://"+cfg.RunAddr+"\n", stdout.String())

	resp, err := resty.New().R().Get("http://" + cfg.RunAddr + "/api/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, `{"users":[]}`, string(resp.Body()))

	cancel()
	select {
	case err := <-runErrCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("the server did not shut down in time")
	}
}

func TestRunFailsOnBusyPort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	cfg, err := config.New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)
	cfg.RunAddr = listener.Addr().String()

	a, err := New(WithConfig(cfg), WithStdout(&syncBuffer{}))
	require.NoError(t, err)
	defer a.Close()

	assert.Error(t, a.Run(context.Background()))
}
