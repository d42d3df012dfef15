package led

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/dasdy/holdlight/model"
)

const (
	artNetPort          = 6454
	artNetHeaderSize    = 18
	pixelsPerUniverse   = 170
	artNetOpDmx         = 0x5000
	artNetProtocolLevel = 14
)

// ArtDmxPacket builds one ArtDmx packet. data is padded to an even length as
// the protocol requires.
func ArtDmxPacket(universe int, sequence uint8, data []byte) []byte {
	length := len(data)
	if length%2 == 1 {
		length++
	}

	packet := make([]byte, artNetHeaderSize+length)
	copy(packet[0:8], "Art-Net\x00")
	binary.LittleEndian.PutUint16(packet[8:10], artNetOpDmx)
	binary.BigEndian.PutUint16(packet[10:12], artNetProtocolLevel)
	packet[12] = sequence
	packet[13] = 0
	binary.LittleEndian.PutUint16(packet[14:16], uint16(universe))
	binary.BigEndian.PutUint16(packet[16:18], uint16(length))
	copy(packet[artNetHeaderSize:], data)

	return packet
}

// ArtNet sends frames to an Art-Net node, 170 pixels per universe starting at
// the configured universe.
type ArtNet struct {
	conn     net.Conn
	universe int
	sequence uint8
}

// DialArtNet connects to host (port 6454 when none is given).
func DialArtNet(host string, universe int) (*ArtNet, error) {
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, fmt.Sprint(artNetPort))
	}

	conn, err := net.Dial("udp", host)
	if err != nil {
		return nil, fmt.Errorf("could not dial art-net node %s: %w", host, err)
	}

	return NewArtNet(conn, universe), nil
}

func NewArtNet(conn net.Conn, universe int) *ArtNet {
	return &ArtNet{conn: conn, universe: universe}
}

func (a *ArtNet) Show(pixels []model.RGB) error {
	// sequence 0 disables reordering on the receiver, so skip it
	a.sequence++
	if a.sequence == 0 {
		a.sequence = 1
	}

	for start, u := 0, a.universe; start < len(pixels); start, u = start+pixelsPerUniverse, u+1 {
		end := min(start+pixelsPerUniverse, len(pixels))

		data := make([]byte, 0, 3*(end-start))
		for _, p := range pixels[start:end] {
			data = append(data, p.R, p.G, p.B)
		}

		if _, err := a.conn.Write(ArtDmxPacket(u, a.sequence, data)); err != nil {
			return fmt.Errorf("could not send universe %d: %w", u, err)
		}
	}

	return nil
}

func (a *ArtNet) Close() error {
	return a.conn.Close()
}
