// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package http

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/z5labs/apidocs/app"
	"github.com/z5labs/apidocs/config"

	"github.com/stretchr/testify/require"
)

func TestTCPListener_Read(t *testing.T) {
	t.Run("will bind to the configured address", func(t *testing.T) {
		val, err := NewTCPListener(Addr(config.ReaderOf("127.0.0.1:0"))).Read(context.Background())
		require.NoError(t, err)

		ln, ok := val.Value()
		require.True(t, ok)
		defer ln.Close()

		require.Contains(t, ln.Addr().String(), "127.0.0.1:")
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the address is invalid", func(t *testing.T) {
			_, err := NewTCPListener(Addr(config.ReaderOf("not-an-address"))).Read(context.Background())
			require.Error(t, err)
		})
	})
}

func TestTLSListener(t *testing.T) {
	t.Run("will wrap the base listener", func(t *testing.T) {
		base, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer base.Close()

		val, err := TLSListener(
			config.ReaderOf(base),
			config.ReaderOf(&tls.Config{MinVersion: tls.VersionTLS12}),
		).Read(context.Background())
		require.NoError(t, err)

		ln, ok := val.Value()
		require.True(t, ok)
		require.Equal(t, base.Addr(), ln.Addr())
	})
}

func TestBuild(t *testing.T) {
	t.Run("will apply defaults", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		builder := Build(
			NewServer(config.ReaderOf(ln)),
			app.BuilderFunc[http.Handler](func(ctx context.Context) (http.Handler, error) {
				return http.NotFoundHandler(), nil
			}),
		)

		a, err := builder.Build(context.Background())
		require.NoError(t, err)
		require.Equal(t, 5*time.Second, a.srv.ReadTimeout)
		require.Equal(t, 2*time.Second, a.srv.ReadHeaderTimeout)
		require.Equal(t, 10*time.Second, a.srv.WriteTimeout)
		require.Equal(t, 120*time.Second, a.srv.IdleTimeout)
		require.Equal(t, 1<<20, a.srv.MaxHeaderBytes)
	})

	t.Run("will read timeouts from the environment", func(t *testing.T) {
		t.Setenv("APIDOCS_HTTP_READ_TIMEOUT", "1s")
		t.Setenv("APIDOCS_HTTP_WRITE_TIMEOUT", "3s")

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		builder := Build(
			NewServer(config.ReaderOf(ln), TimeoutsFromEnv()),
			app.BuilderFunc[http.Handler](func(ctx context.Context) (http.Handler, error) {
				return http.NotFoundHandler(), nil
			}),
		)

		a, err := builder.Build(context.Background())
		require.NoError(t, err)
		require.Equal(t, time.Second, a.srv.ReadTimeout)
		require.Equal(t, 2*time.Second, a.srv.ReadHeaderTimeout)
		require.Equal(t, 3*time.Second, a.srv.WriteTimeout)
	})
}

func TestApp_Run(t *testing.T) {
	t.Run("will serve requests until the context is cancelled", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		builder := Build(
			NewServer(config.ReaderOf(ln)),
			app.BuilderFunc[http.Handler](func(ctx context.Context) (http.Handler, error) {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					io.WriteString(w, "ok")
				}), nil
			}),
		)

		a, err := builder.Build(context.Background())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- a.Run(ctx)
		}()

		resp, err := http.Get("http://" + a.Addr().String() + "/")
		require.NoError(t, err)
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "ok", string(b))

		cancel()
		require.NoError(t, <-errCh)
	})
}
