package httpserver

import (
	"net/http"
	"time"

	"finance-app-go/internal/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = time.Minute
	maxHeaderBytes    = 64 << 10
)

// New builds the API server. Read and write deadlines extend past the
// request timeout so the timeout middleware answers before the connection
// is cut.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.RequestTimeout + readHeaderTimeout,
		WriteTimeout:      cfg.RequestTimeout + readHeaderTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}
}
