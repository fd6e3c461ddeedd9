package server

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serdnad/rtdb/wire"
)

func startTestServer(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(Config{DataDir: t.TempDir()})

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}

			c := &Connection{conn: conn, engine: s.engine}
			go c.Serve()
		}
	}()

	t.Cleanup(func() { ln.Close() })

	return ln.Addr().String()
}

func TestServerInsertAndSelectRoundTrip(t *testing.T) {
	addr := startTestServer(t)

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, wire.WriteStatement(conn, []byte("insert metrics,value1=1.5 100")))
	kind, _, ir, err := wire.ReadResponse(conn)
	require.NoError(t, err)
	assert.Equal(t, wire.KindInsertResult, kind)
	assert.True(t, ir.Success)

	require.NoError(t, wire.WriteStatement(conn, []byte("select metrics[value1]")))
	kind, qr, _, err := wire.ReadResponse(conn)
	require.NoError(t, err)
	assert.Equal(t, wire.KindQueryResult, kind)
	require.Len(t, qr.Rows, 1)
	assert.Equal(t, int64(100), qr.Rows[0].Time)
	assert.Equal(t, 1.5, qr.Rows[0].Values[0].Float)
}

func TestServerBadStatementClosesConnectionGracefully(t *testing.T) {
	addr := startTestServer(t)

	conn, err := net.DialTimeout("tcp", addr, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, wire.WriteStatement(conn, []byte("delete metrics")))
	_, _, _, err = wire.ReadResponse(conn)
	assert.Error(t, err)
}
