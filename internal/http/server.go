package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

type Server struct {
	opts *Options
}

func NewServer(funcs ...OptionFunc) *Server {
	return &Server{
		opts: NewOptions(funcs...),
	}
}

// Run serves the mounted handlers until the given context is canceled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	baseURL := strings.TrimSuffix(s.opts.BaseURL, "/")

	for prefix, handler := range s.opts.Mounts {
		mount(mux, baseURL+prefix, handler)
	}

	var handler http.Handler = mux

	handler = cors.New(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}).Handler(handler)

	handler = sloghttp.New(slog.Default())(handler)

	server := &http.Server{
		Addr:    s.opts.Address,
		Handler: handler,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "could not shutdown server", slog.Any("error", errors.WithStack(err)))
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func mount(mux *http.ServeMux, prefix string, handler http.Handler) {
	trimmed := strings.TrimSuffix(prefix, "/")

	if len(trimmed) > 0 {
		mux.Handle(prefix, http.StripPrefix(trimmed, handler))
	} else {
		mux.Handle(prefix, handler)
	}
}
