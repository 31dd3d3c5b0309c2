package proxyprotocol

import (
	"bufio"
	"net"
	"time"

	proxyproto "github.com/pires/go-proxyproto"
)

// Conn is a net.Conn compatible struct that handles PROXY header checking.
type Conn struct {
	rd  *bufio.Reader
	c   net.Conn
	r   net.Addr
	l   net.Addr
	hdr *proxyproto.Header
}

// NewConn returns a connection that parses PROXY protocol headers from the
// start of the stream and supplies a net.Conn compatible interface.
func NewConn(nc net.Conn) (net.Conn, error) {
	c := &Conn{
		c:  nc,
		rd: bufio.NewReader(nc),
	}
	if err := c.proxyInit(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Conn) proxyInit() error {
	pc, err := proxyproto.Read(c.rd)
	switch err {
	case
		proxyproto.ErrNoProxyProtocol,
		proxyproto.ErrInvalidLength:
		// Not a PROXY protocol connection, just keep going with the
		// connection as-is.
		return nil
	case nil:
		c.hdr = pc
		c.l = NewProxyAddr(c.hdr.TransportProtocol, c.hdr.DestinationAddress, c.hdr.DestinationPort)
		c.r = NewProxyAddr(c.hdr.TransportProtocol, c.hdr.SourceAddress, c.hdr.SourcePort)
		return nil
	default:
		return err
	}
}

// Read reads data from the connection.
func (c *Conn) Read(b []byte) (n int, err error) {
	return c.rd.Read(b)
}

// Write writes data to the connection.
func (c *Conn) Write(b []byte) (n int, err error) {
	return c.c.Write(b)
}

// Close closes the connection.
// Any blocked Read or Write operations will be unblocked and return errors.
func (c *Conn) Close() error {
	return c.c.Close()
}

// LocalAddr returns the local network address. If a PROXY header was present
// this is the destination address it carried.
func (c *Conn) LocalAddr() net.Addr {
	if c.hdr == nil || c.l == nil {
		return c.c.LocalAddr()
	}
	return c.l
}

// RemoteAddr returns the remote network address. If a PROXY header was
// present this is the source address it carried, which is the address of the
// original client rather than the load-balancer.
func (c *Conn) RemoteAddr() net.Addr {
	if c.hdr == nil || c.r == nil {
		return c.c.RemoteAddr()
	}
	return c.r
}

// SetDeadline sets the read and write deadlines associated with the
// connection.
func (c *Conn) SetDeadline(t time.Time) error {
	return c.c.SetDeadline(t)
}

// SetReadDeadline sets the deadline for future Read calls and any
// currently-blocked Read call.
func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.c.SetReadDeadline(t)
}

// SetWriteDeadline sets the deadline for future Write calls and any
// currently-blocked Write call.
func (c *Conn) SetWriteDeadline(t time.Time) error {
	return c.c.SetWriteDeadline(t)
}
