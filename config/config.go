// Package config loads a fleet of SLMP connection descriptions from an
// env-file (KEY=VALUE per line) using github.com/hashicorp/go-envparse,
// so a deployment can describe which PLCs to dial without a bespoke
// parser.
package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-envparse"

	"github.com/go-slmp/slmp/protocol"
	"github.com/go-slmp/slmp/session"
)

// Entry is one fleet member: its connection identity plus the
// SLMP_<N>_POLL value as given (default "Fast"). DefaultInterval is kept
// as a string; this package neither checks it against the PollingInterval
// names nor applies it to any monitor target.
type Entry struct {
	Name            string
	Props           session.ConnectionProps
	DefaultInterval string
}

// Parse reads an env-file from r and returns one Entry per name listed in
// SLMP_NAMES, in list order; a name listed twice yields two entries.
// Expected keys per name N:
//
//	SLMP_NAMES=N1,N2,...
//	SLMP_<N>_IP=192.168.0.1
//	SLMP_<N>_PORT=5007            (optional, default session.DefaultPort)
//	SLMP_<N>_CPU=Q|L|R            (optional, default Q)
//	SLMP_<N>_SERIAL_ID=1
//	SLMP_<N>_NETWORK_ID=0
//	SLMP_<N>_PC_ID=255
//	SLMP_<N>_IO_ID=1023
//	SLMP_<N>_AREA_ID=0
//	SLMP_<N>_CPU_TIMER=4
//	SLMP_<N>_POLL=Fast|Medium|Slow|Watch  (optional, default Fast)
func Parse(r io.Reader) ([]Entry, error) {
	m, err := envparse.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("config: parse env file: %w", err)
	}

	names := splitCSV(m["SLMP_NAMES"])
	if len(names) == 0 {
		return nil, fmt.Errorf("config: SLMP_NAMES is required and must list at least one entry")
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		e, err := parseEntry(m, name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseEntry(m map[string]string, name string) (Entry, error) {
	prefix := "SLMP_" + name + "_"

	ip := m[prefix+"IP"]
	if ip == "" {
		return Entry{}, fmt.Errorf("config: %s: %sIP is required", name, prefix)
	}

	port := session.DefaultPort
	if v, ok := m[prefix+"PORT"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Entry{}, fmt.Errorf("config: %s: %sPORT: %w", name, prefix, err)
		}
		port = n
	}

	cpu := protocol.CPUQ
	if v, ok := m[prefix+"CPU"]; ok {
		switch strings.ToUpper(v) {
		case "Q":
			cpu = protocol.CPUQ
		case "L":
			cpu = protocol.CPUL
		case "R":
			cpu = protocol.CPUR
		default:
			return Entry{}, fmt.Errorf("config: %s: %sCPU: unknown CPU variant %q", name, prefix, v)
		}
	}

	serialID, err := optUint16(m, prefix+"SERIAL_ID", 1)
	if err != nil {
		return Entry{}, err
	}
	networkID, err := optByte(m, prefix+"NETWORK_ID", 0)
	if err != nil {
		return Entry{}, err
	}
	pcID, err := optByte(m, prefix+"PC_ID", 0xFF)
	if err != nil {
		return Entry{}, err
	}
	ioID, err := optUint16(m, prefix+"IO_ID", 0x03FF)
	if err != nil {
		return Entry{}, err
	}
	areaID, err := optByte(m, prefix+"AREA_ID", 0)
	if err != nil {
		return Entry{}, err
	}
	cpuTimer, err := optUint16(m, prefix+"CPU_TIMER", 4)
	if err != nil {
		return Entry{}, err
	}

	poll := m[prefix+"POLL"]
	if poll == "" {
		poll = "Fast"
	}

	return Entry{
		Name: name,
		Props: session.ConnectionProps{
			IP:        ip,
			Port:      port,
			CPU:       cpu,
			SerialID:  serialID,
			NetworkID: networkID,
			PcID:      pcID,
			IoID:      ioID,
			AreaID:    areaID,
			CPUTimer:  cpuTimer,
		},
		DefaultInterval: poll,
	}, nil
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optUint16(m map[string]string, key string, def uint16) (uint16, error) {
	v, ok := m[key]
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return uint16(n), nil
}

func optByte(m map[string]string, key string, def byte) (byte, error) {
	v, ok := m[key]
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return byte(n), nil
}
