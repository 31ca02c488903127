package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/b24docs/internal/logger"
	"github.com/custodia-labs/b24docs/internal/metrics"
)

const (
	// HeaderRequestID carries the request id on every response.
	HeaderRequestID = "X-Request-ID"

	// HeaderSessionID is the MCP session header exposed to browsers.
	HeaderSessionID = "Mcp-Session-Id"

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 10 * time.Second
)

// JSON-RPC error codes used by the HTTP transport.
const (
	codeMethodNotAllowed = -32000
	codeInternalError    = -32603
)

const internalErrorMessage = "Internal server error"

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcErrorEnvelope struct {
	JSONRPC string   `json:"jsonrpc"`
	Error   rpcError `json:"error"`
	ID      any      `json:"id"`
}

// HTTPHandler returns the router serving MCP on POST path. Every other
// method on path is answered with a JSON-RPC "Method not allowed" error.
func (s *Server) HTTPHandler(path string) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{HeaderSessionID, HeaderRequestID},
	}))
	if s.opts.Metrics {
		r.Use(metrics.Middleware())
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	// Stateless: every request gets a fresh protocol server.
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.MCPServer()
	}, &mcp.StreamableHTTPOptions{Stateless: true})

	r.Method(http.MethodPost, path, handler)
	r.MethodNotAllowed(methodNotAllowed)

	return r
}

// RunHTTP listens on addr and serves MCP on path until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr, path string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, path)
}

// Serve serves MCP on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener, path string) error {
	httpServer := &http.Server{
		Handler:           s.HTTPHandler(path),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Bitrix24 docs MCP server (HTTP) listening on %s, path %s, backend %s, %d resources",
			ln.Addr(), path, s.backend(), s.resourceCount())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		logger.Info("Shutting down HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// requestID tags the request with a uuid, echoes it in X-Request-ID and
// puts a request-scoped logger in the context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)

		l := logger.L().With(zap.String("request_id", id))
		next.ServeHTTP(w, r.WithContext(logger.ContextWithLogger(r.Context(), l)))
	})
}

// recoverer turns a panic into a JSON-RPC internal error.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
				panic(rec)
			}
			logger.FromContext(r.Context()).Error("panic while handling MCP request",
				zap.Any("panic", rec),
				zap.String("path", r.URL.Path),
			)
			writeRPCError(w, http.StatusInternalServerError, codeInternalError, internalErrorMessage)
		}()
		next.ServeHTTP(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeRPCError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed")
}

func writeRPCError(w http.ResponseWriter, status, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(rpcErrorEnvelope{
		JSONRPC: "2.0",
		Error:   rpcError{Code: code, Message: message},
		ID:      nil,
	})
}
