package led_test

import (
	"bytes"
	"errors"
	"net"
	"time"
)

// bufferPort is a serial port stand-in that records writes.
type bufferPort struct {
	bytes.Buffer
	closed bool
}

func (b *bufferPort) Close() error {
	b.closed = true

	return nil
}

// packetConn records every UDP write as one packet.
type packetConn struct {
	packets [][]byte
	closed  bool
}

func (c *packetConn) Write(p []byte) (int, error) {
	c.packets = append(c.packets, bytes.Clone(p))

	return len(p), nil
}

func (c *packetConn) Read(_ []byte) (int, error) { return 0, errors.New("not readable") }

func (c *packetConn) Close() error {
	c.closed = true

	return nil
}

func (c *packetConn) LocalAddr() net.Addr { return &net.UDPAddr{} }

func (c *packetConn) RemoteAddr() net.Addr { return &net.UDPAddr{} }

func (c *packetConn) SetDeadline(_ time.Time) error { return nil }

func (c *packetConn) SetReadDeadline(_ time.Time) error { return nil }

func (c *packetConn) SetWriteDeadline(_ time.Time) error { return nil }
