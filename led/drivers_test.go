package led_test

import (
	"testing"

	"github.com/dasdy/holdlight/led"
	"github.com/dasdy/holdlight/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdalightFrame(t *testing.T) {
	pixels := []model.RGB{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}}

	frame := led.AdalightFrame(nil, pixels)

	assert.Equal(t, []byte{'A', 'd', 'a', 0x00, 0x01, 0x54, 1, 2, 3, 4, 5, 6}, frame)
}

func TestAdalightFrameLargeCount(t *testing.T) {
	pixels := make([]model.RGB, 300)

	frame := led.AdalightFrame(nil, pixels)

	require.Len(t, frame, 6+900)
	// 299 = 0x012b
	assert.Equal(t, []byte{0x01, 0x2b, 0x01 ^ 0x2b ^ 0x55}, frame[3:6])
}

func TestAdalightShow(t *testing.T) {
	port := &bufferPort{}
	driver := led.NewAdalight(port)

	require.NoError(t, driver.Show([]model.RGB{{R: 9}}))
	require.NoError(t, driver.Show(nil))
	require.NoError(t, driver.Close())

	assert.Equal(t, []byte{'A', 'd', 'a', 0, 0, 0x55, 9, 0, 0}, port.Bytes())
	assert.True(t, port.closed)
}

func TestArtDmxPacket(t *testing.T) {
	packet := led.ArtDmxPacket(0x0102, 7, []byte{10, 20, 30})

	require.Len(t, packet, 18+4)
	assert.Equal(t, []byte("Art-Net\x00"), packet[0:8])
	assert.Equal(t, []byte{0x00, 0x50}, packet[8:10], "OpDmx is little endian")
	assert.Equal(t, []byte{0x00, 14}, packet[10:12])
	assert.Equal(t, byte(7), packet[12])
	assert.Equal(t, []byte{0x02, 0x01}, packet[14:16])
	assert.Equal(t, []byte{0x00, 0x04}, packet[16:18], "length is padded to even")
	assert.Equal(t, []byte{10, 20, 30, 0}, packet[18:])
}

func TestArtNetSplitsUniverses(t *testing.T) {
	conn := &packetConn{}
	driver := led.NewArtNet(conn, 3)

	pixels := make([]model.RGB, 200)
	pixels[170] = model.RGB{R: 42}

	require.NoError(t, driver.Show(pixels))
	require.Len(t, conn.packets, 2)

	first, second := conn.packets[0], conn.packets[1]
	assert.Len(t, first, 18+510)
	assert.Len(t, second, 18+90)
	assert.Equal(t, byte(3), first[14])
	assert.Equal(t, byte(4), second[14])
	assert.Equal(t, byte(42), second[18])

	require.NoError(t, driver.Close())
	assert.True(t, conn.closed)
}

func TestLooksLikeController(t *testing.T) {
	testCases := []struct {
		path     string
		expected bool
	}{
		{"/dev/tty.usbmodem12301", true},
		{"/dev/ttyUSB0", true},
		{"/dev/ttyACM1", true},
		{"/dev/ttyp1", false},
		{"/dev/ttyS0", false},
		{"/home/user/ttyUSB0", false},
	}

	for _, v := range testCases {
		t.Run(v.path, func(t *testing.T) {
			assert.Equal(t, v.expected, led.LooksLikeController(v.path))
		})
	}
}

func TestOpenMemory(t *testing.T) {
	driver, err := led.Open(led.DriverConfig{Kind: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &led.Memory{}, driver)

	_, err = led.Open(led.DriverConfig{Kind: "laser"})
	assert.Error(t, err)
}
