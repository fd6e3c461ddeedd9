// Package server implements the TCP listener that exposes rtdb's
// statement surface over the wire protocol: one goroutine per connection,
// looping { read framed statement, parse, execute, write framed response }
// until the peer closes the socket.
package server

import (
	"net"

	"github.com/Serdnad/rtdb/internal/log"
	"github.com/Serdnad/rtdb/query"
)

// Config configures a Server.
type Config struct {
	Addr    string
	DataDir string
}

// Server accepts TCP connections and services each with a Connection.
type Server struct {
	cfg    Config
	engine *query.Engine
}

// New creates a Server rooted at cfg.DataDir, serving on cfg.Addr.
func New(cfg Config) *Server {
	return &Server{
		cfg:    cfg,
		engine: query.NewEngine(cfg.DataDir),
	}
}

// ListenAndServe binds cfg.Addr and services each accepted connection in
// its own goroutine. It blocks until Listen or Accept fails and returns
// that error.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	log.Info("listening on " + s.cfg.Addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}

		c := &Connection{conn: conn, engine: s.engine}
		go c.Serve()
	}
}
