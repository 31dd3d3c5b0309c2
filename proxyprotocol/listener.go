package proxyprotocol

import "net"

// Listener wraps a net.Listener so that accepted connections have any PROXY
// protocol header consumed before the connection is handed to the server.
type Listener struct {
	l net.Listener
}

// NewListener returns a net.Listener that wraps accepted connections with
// PROXY protocol header handling.
func NewListener(l net.Listener) net.Listener {
	return &Listener{
		l: l,
	}
}

// Accept waits for and returns the next connection to the listener.
func (l *Listener) Accept() (net.Conn, error) {
	c, err := l.l.Accept()
	if err != nil {
		return c, err
	}

	return NewConn(c)
}

// Close closes the listener.
// Any blocked Accept operations will be unblocked and return errors.
func (l *Listener) Close() error {
	return l.l.Close()
}

// Addr returns the listener's network address.
func (l *Listener) Addr() net.Addr {
	return l.l.Addr()
}
