// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package http runs the documentation host as an HTTP server.
package http

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/z5labs/apidocs/app"
	"github.com/z5labs/apidocs/config"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultAddr is used when no listen address is configured.
const DefaultAddr = ":8080"

// TCPListener reads a TCP [net.Listener] bound to Addr.
type TCPListener struct {
	Addr config.Reader[string]
}

// TCPListenerOption configures a [TCPListener].
type TCPListenerOption func(*TCPListener)

// Addr sets the "host:port" the listener binds to.
func Addr(addr config.Reader[string]) TCPListenerOption {
	return func(ln *TCPListener) {
		ln.Addr = addr
	}
}

// AddrFromEnv reads the listen address from APIDOCS_HTTP_ADDR.
func AddrFromEnv() config.Reader[string] {
	return config.Env("APIDOCS_HTTP_ADDR")
}

// NewTCPListener returns a [TCPListener] which defaults to [DefaultAddr].
func NewTCPListener(opts ...TCPListenerOption) TCPListener {
	ln := TCPListener{
		Addr: config.EmptyReader[string](),
	}
	for _, opt := range opts {
		opt(&ln)
	}
	return ln
}

// Read implements the [config.Reader] interface.
func (tcpLn TCPListener) Read(ctx context.Context) (config.Value[net.Listener], error) {
	addr := config.MustOr(ctx, DefaultAddr, tcpLn.Addr)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return config.Value[net.Listener]{}, err
	}
	return config.ValueOf(ln), nil
}

// TLSListener serves TLS on top of the listener produced by ln.
func TLSListener(ln config.Reader[net.Listener], tlsConfig config.Reader[*tls.Config]) config.Reader[net.Listener] {
	return config.ReaderFunc[net.Listener](func(ctx context.Context) (config.Value[net.Listener], error) {
		base := config.Must(ctx, ln)
		cfg := config.Must(ctx, tlsConfig)

		return config.ValueOf(tls.NewListener(base, cfg)), nil
	})
}

// Server collects the [http.Server] settings.
type Server struct {
	Listener          config.Reader[net.Listener]
	ReadTimeout       config.Reader[time.Duration]
	ReadHeaderTimeout config.Reader[time.Duration]
	WriteTimeout      config.Reader[time.Duration]
	IdleTimeout       config.Reader[time.Duration]
	MaxHeaderBytes    config.Reader[int]
	OperationName     config.Reader[string]
}

// ServerOption configures a [Server].
type ServerOption func(*Server)

// ReadTimeout bounds reading an entire request. Defaults to 5s.
func ReadTimeout(d config.Reader[time.Duration]) ServerOption {
	return func(s *Server) {
		s.ReadTimeout = d
	}
}

// ReadHeaderTimeout bounds reading request headers. Defaults to 2s.
func ReadHeaderTimeout(d config.Reader[time.Duration]) ServerOption {
	return func(s *Server) {
		s.ReadHeaderTimeout = d
	}
}

// WriteTimeout bounds writing a response. Defaults to 10s.
func WriteTimeout(d config.Reader[time.Duration]) ServerOption {
	return func(s *Server) {
		s.WriteTimeout = d
	}
}

// IdleTimeout bounds keep-alive idle time. Defaults to 120s.
func IdleTimeout(d config.Reader[time.Duration]) ServerOption {
	return func(s *Server) {
		s.IdleTimeout = d
	}
}

// MaxHeaderBytes caps request header size. Defaults to 1MB.
func MaxHeaderBytes(n config.Reader[int]) ServerOption {
	return func(s *Server) {
		s.MaxHeaderBytes = n
	}
}

// OperationName names the server span created for every request.
// Defaults to "apidocs".
func OperationName(name config.Reader[string]) ServerOption {
	return func(s *Server) {
		s.OperationName = name
	}
}

// TimeoutsFromEnv reads every timeout from APIDOCS_HTTP_*_TIMEOUT variables.
func TimeoutsFromEnv() ServerOption {
	return func(s *Server) {
		s.ReadTimeout = config.DurationFromString(config.Env("APIDOCS_HTTP_READ_TIMEOUT"))
		s.ReadHeaderTimeout = config.DurationFromString(config.Env("APIDOCS_HTTP_READ_HEADER_TIMEOUT"))
		s.WriteTimeout = config.DurationFromString(config.Env("APIDOCS_HTTP_WRITE_TIMEOUT"))
		s.IdleTimeout = config.DurationFromString(config.Env("APIDOCS_HTTP_IDLE_TIMEOUT"))
	}
}

// NewServer returns a [Server] serving on listener.
func NewServer(listener config.Reader[net.Listener], opts ...ServerOption) Server {
	s := Server{
		Listener:          listener,
		ReadTimeout:       config.EmptyReader[time.Duration](),
		ReadHeaderTimeout: config.EmptyReader[time.Duration](),
		WriteTimeout:      config.EmptyReader[time.Duration](),
		IdleTimeout:       config.EmptyReader[time.Duration](),
		MaxHeaderBytes:    config.EmptyReader[int](),
		OperationName:     config.EmptyReader[string](),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// App is a runnable HTTP server.
type App struct {
	ls  net.Listener
	srv *http.Server
}

// Addr is the address the server is listening on.
func (a App) Addr() net.Addr {
	return a.ls.Addr()
}

// Run serves until ctx is cancelled and then shuts the server down.
func (a App) Run(ctx context.Context) error {
	p := pool.New().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		return a.srv.Serve(a.ls)
	})

	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return a.srv.Shutdown(context.Background())
	})

	err := p.Wait()
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Build serves the handler produced by b with the settings of srv.
// Every request is traced and measured with otelhttp.
func Build(srv Server, b app.Builder[http.Handler]) app.Builder[App] {
	return app.Bind(b, func(h http.Handler) app.Builder[App] {
		return app.BuilderFunc[App](func(ctx context.Context) (App, error) {
			ln := config.Must(ctx, srv.Listener)
			operation := config.MustOr(ctx, "apidocs", srv.OperationName)

			httpServer := &http.Server{
				Handler:           otelhttp.NewHandler(h, operation),
				ReadTimeout:       config.MustOr(ctx, 5*time.Second, srv.ReadTimeout),
				ReadHeaderTimeout: config.MustOr(ctx, 2*time.Second, srv.ReadHeaderTimeout),
				WriteTimeout:      config.MustOr(ctx, 10*time.Second, srv.WriteTimeout),
				IdleTimeout:       config.MustOr(ctx, 120*time.Second, srv.IdleTimeout),
				MaxHeaderBytes:    config.MustOr(ctx, 1<<20, srv.MaxHeaderBytes),
			}

			return App{
				ls:  ln,
				srv: httpServer,
			}, nil
		})
	})
}
