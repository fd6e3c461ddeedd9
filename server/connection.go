package server

import (
	"errors"
	"io"
	"net"

	"github.com/Serdnad/rtdb/internal/log"
	"github.com/Serdnad/rtdb/lang"
	"github.com/Serdnad/rtdb/query"
	"github.com/Serdnad/rtdb/wire"
)

// Connection services one client socket: parse → execute → serialize,
// strictly sequential within the connection, repeated until the peer closes
// it or reading, parsing, executing or writing a statement fails.
type Connection struct {
	conn   net.Conn
	engine *query.Engine
}

// Serve runs the read-execute-write loop until the connection closes. It
// always closes conn before returning.
func (c *Connection) Serve() {
	defer c.conn.Close()

	for {
		stmt, err := wire.ReadStatement(c.conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Error("reading statement", err)
			}

			return
		}

		if err := c.handle(stmt); err != nil {
			log.Error("handling statement", err)

			return
		}
	}
}

func (c *Connection) handle(stmt []byte) error {
	action, err := lang.Parse(stmt)
	if err != nil {
		return err
	}

	result, err := c.engine.Execute(action)
	if err != nil {
		return err
	}

	switch result.Kind {
	case query.ResultQuery:
		return wire.WriteQueryResponse(c.conn, wire.FromRecordCollection(result.Query.Records))
	case query.ResultInsert:
		return wire.WriteInsertResponse(c.conn, wire.InsertResponse{Success: result.Insert.Success})
	default:
		return nil
	}
}
