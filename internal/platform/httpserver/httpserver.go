package httpserver

import (
	"net/http"
	"time"
)

const writeGrace = 5 * time.Second

// New builds an HTTP server for small JSON payloads. The write timeout
// outlasts requestTimeout so a timed-out handler can still write its error.
func New(addr string, handler http.Handler, requestTimeout time.Duration) *http.Server {
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + writeGrace,
		IdleTimeout:       60 * time.Second,
	}
}
