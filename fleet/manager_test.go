package fleet

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-slmp/slmp/protocol"
	"github.com/go-slmp/slmp/session"
)

func appendU16(b []byte, v uint16) []byte { return append(b, byte(v), byte(v>>8)) }

// serveRandomReadEcho accepts one connection and answers every request
// with a fixed 2-byte RandomRead reply, echoing the caller's frame
// fields, until the connection is closed.
func serveRandomReadEcho(t *testing.T, ln net.Listener, value uint16) {
	t.Helper()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			req := make([]byte, 1024)
			n, err := conn.Read(req)
			if err != nil || n < 15 {
				return
			}
			resp := make([]byte, 0, 17)
			resp = appendU16(resp, protocol.ResponseCode)
			resp = append(resp, req[2], req[3]) // echo SerialID
			resp = append(resp, 0x00, 0x00)
			resp = append(resp, req[6], req[7]) // echo NetworkID, PcID
			resp = append(resp, req[8], req[9]) // echo IoID
			resp = append(resp, req[10])        // echo AreaID
			resp = appendU16(resp, 4)           // DataLen: EndCode(2)+payload(2)
			resp = appendU16(resp, 0x0000)      // EndCode OK
			resp = appendU16(resp, value)
			if _, err := conn.Write(resp); err != nil {
				return
			}
		}
	}()
}

func TestConnectionManagerConnectAndPoll(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	serveRandomReadEcho(t, ln, 0x002A)

	addr := ln.Addr().(*net.TCPAddr)
	props := session.ConnectionProps{IP: "127.0.0.1", Port: addr.Port, CPU: protocol.CPUQ, SerialID: 1, PcID: 0xFF, IoID: 0x03FF}

	results := make(chan []PLCData, 8)
	cm := NewConnectionManager(session.DefaultConfig())
	require.NoError(t, cm.Connect(props, func(data []PLCData) error {
		results <- data
		return nil
	}))
	defer cm.Clear()

	require.NoError(t, cm.RegisterMonitorTargets(props, []MonitorTarget{
		{Device: protocol.TypedDevice{Device: protocol.Device{Type: protocol.DeviceD, Address: 0}, DataType: protocol.U16}, Interval: Fast},
	}))

	select {
	case data := <-results:
		require.Len(t, data, 1)
		assert.Equal(t, props.Endpoint(), data[0].Endpoint)
		assert.Equal(t, uint16(0x002A), data[0].Data.Value.U16())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a poll tick")
	}

	statuses := cm.GetConnectionsWithElapsedTime()
	require.Len(t, statuses, 1)
	assert.Equal(t, props.Endpoint(), statuses[0].Endpoint)
}

func TestConnectionManagerDisconnect(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	serveRandomReadEcho(t, ln, 0)

	addr := ln.Addr().(*net.TCPAddr)
	props := session.ConnectionProps{IP: "127.0.0.1", Port: addr.Port, CPU: protocol.CPUQ, PcID: 0xFF, IoID: 0x03FF}

	cm := NewConnectionManager(session.DefaultConfig())
	require.NoError(t, cm.Connect(props, func([]PLCData) error { return nil }))

	assert.True(t, cm.Disconnect(props))
	assert.False(t, cm.Disconnect(props), "second disconnect finds nothing to remove")
}

func TestConnectionManagerOperateWorkerUnknownEndpoint(t *testing.T) {
	cm := NewConnectionManager(session.DefaultConfig())
	err := cm.OperateWorker(session.ConnectionProps{IP: "127.0.0.1", Port: 1}, func(*session.Session) error { return nil })
	require.Error(t, err)
	var nc *NotConnectedError
	require.ErrorAs(t, err, &nc)
}
