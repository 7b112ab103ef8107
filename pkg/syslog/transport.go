package syslog

import (
	"fmt"
	"net"
	"strconv"
	"sync"
)

// Transport delivers one syslog envelope.
type Transport interface {
	Send(envelope []byte) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(envelope []byte) error

func (f TransportFunc) Send(envelope []byte) error {
	return f(envelope)
}

// UDPTransport writes each envelope as a single datagram. The socket is
// opened on first use and reopened on the next send after a write error.
// Failed messages are not retried.
type UDPTransport struct {
	addr string

	mu   sync.Mutex
	conn net.Conn
}

func NewUDPTransport(address string, port int) *UDPTransport {
	return &UDPTransport{
		addr: net.JoinHostPort(address, strconv.Itoa(port)),
	}
}

// Addr is the host:port datagrams are sent to.
func (t *UDPTransport) Addr() string {
	return t.addr
}

func (t *UDPTransport) Send(envelope []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		conn, err := net.Dial("udp", t.addr)
		if err != nil {
			return fmt.Errorf("dial %s: %w", t.addr, err)
		}
		t.conn = conn
	}

	if _, err := t.conn.Write(envelope); err != nil {
		t.conn.Close()
		t.conn = nil
		return fmt.Errorf("write to %s: %w", t.addr, err)
	}

	return nil
}

func (t *UDPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
