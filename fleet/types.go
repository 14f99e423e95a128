package fleet

import "github.com/go-slmp/slmp/protocol"

// MonitorTarget is one device this fleet should keep fresh, tagged with
// the refresh bucket it belongs to (spec §4.6).
type MonitorTarget struct {
	Device   protocol.TypedDevice
	Interval PollingInterval
}

// PLCData wraps one poll result with the endpoint it came from, so a
// callback serving many connections can tell results apart (spec §4.6).
type PLCData struct {
	Endpoint string
	Data     protocol.DeviceData
}

// Callback receives one tick's worth of results across every bucket that
// fired this tick. Its error is logged and counted, never fatal to the
// poller (spec §4.6 "the poller never dies on a callback fault").
type Callback func([]PLCData) error
