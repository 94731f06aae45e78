// Package server exposes the viewer over HTTP: the embedded frontend page
// and the WebSocket state stream.
package server

import (
	"context"
	"log"
	"net/http"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/soar/gcinput/internal/hub"
)

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	switcher    hub.ChannelSwitcher
	frontend    []byte
	addr        string
	httpServer  *http.Server
}

// New builds a Server. The frontend page is minified once up front.
func New(h *hub.Hub, b *hub.Broadcaster, switcher hub.ChannelSwitcher, frontend []byte, addr string) *Server {
	return &Server{
		hub:         h,
		broadcaster: b,
		switcher:    switcher,
		frontend:    minifyFrontend(frontend),
		addr:        addr,
	}
}

func minifyFrontend(page []byte) []byte {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)

	out, err := m.Bytes("text/html", page)
	if err != nil {
		log.Printf("Frontend minification failed, serving unminified: %v", err)
		return page
	}
	return out
}

func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.switcher))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(s.frontend)
	})

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	log.Printf("HTTP server listening on %s", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		log.Println("Shutting down HTTP server...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
