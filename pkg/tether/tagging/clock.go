// Package tagging mints and reads the persistent per-file identifiers that
// the rest of the tracker relies on. An identifier is a version-1-shaped
// UUID combining the host's MAC address with a monotonic timestamp
// sequence; it's written to (and read from) a platform-specific
// side-channel co-located with the tagged file.
package tagging

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tetherfs/tether/pkg/random"
)

// clock produces a strictly increasing int64 sequence value seeded once at
// first use with the wall-clock time in nanoseconds since the Unix epoch.
// Every call adds a fresh timestamp probe (whole seconds times 10⁹ plus
// subsecond nanoseconds, both since the Unix epoch) to that seed, and bumps
// the result to one past the previous value whenever it would not exceed it,
// guaranteeing monotonicity across the process's lifetime even if the probe
// resolves coarsely or the clock briefly stalls. newIdentifier keeps only
// the low 60 bits of each value.
type clock struct {
	mu   sync.Mutex
	seed int64
	last int64
}

// processClock is the process-wide clock singleton. It is seeded lazily on
// first use rather than at package init so that tests can construct their
// own clock instances without perturbing global state.
var processClock = &clock{}

// next returns the next value in the clock's monotonic sequence.
func (c *clock) next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seed == 0 {
		c.seed = time.Now().UnixNano()
	}

	now := time.Now()
	seconds := now.Unix()
	subsecNanos := int64(now.Nanosecond())
	value := c.seed + 1_000_000_000*seconds + subsecNanos

	// Guard against the (rare) case where two calls land on values that
	// collide or move backwards, e.g. if the wall clock is adjusted.
	if value <= c.last {
		value = c.last + 1
	}
	c.last = value

	return value
}

// hostNode caches the first usable hardware (MAC) address found on the host,
// used as the UUID node field. Acquiring it is not itself third-party: no
// library in the retrieval pack exposes MAC-address lookup, so this uses
// net.Interfaces directly (see DESIGN.md).
var (
	hostNodeOnce  sync.Once
	hostNode      [6]byte
	hostNodeError error
)

func node() ([6]byte, error) {
	hostNodeOnce.Do(func() {
		interfaces, err := net.Interfaces()
		if err != nil {
			hostNodeError = fmt.Errorf("unable to enumerate network interfaces: %w", err)
			return
		}
		for _, iface := range interfaces {
			if len(iface.HardwareAddr) == 6 {
				copy(hostNode[:], iface.HardwareAddr)
				return
			}
		}
		hostNodeError = fmt.Errorf("no usable hardware address found on host")
	})
	return hostNode, hostNodeError
}

// newIdentifier mints a fresh version-1-shaped UUID: the low 60 bits of the
// clock's next sequence value occupy the time fields (with the version
// nibble forced to 1), a cryptographically random clock sequence occupies
// the two clock-sequence bytes (with the variant bits forced to RFC 4122),
// and the host's MAC address occupies the node field.
func newIdentifier() (string, error) {
	mac, err := node()
	if err != nil {
		return "", fmt.Errorf("unable to determine host node identifier: %w", err)
	}

	sequence := uint64(processClock.next()) & ((1 << 60) - 1)

	clockSeqBytes, err := random.New(2)
	if err != nil {
		return "", fmt.Errorf("unable to generate clock sequence: %w", err)
	}

	var raw [16]byte

	timeLow := uint32(sequence & 0xFFFFFFFF)
	timeMid := uint16((sequence >> 32) & 0xFFFF)
	timeHiAndVersion := uint16((sequence>>48)&0x0FFF) | 0x1000

	raw[0] = byte(timeLow >> 24)
	raw[1] = byte(timeLow >> 16)
	raw[2] = byte(timeLow >> 8)
	raw[3] = byte(timeLow)
	raw[4] = byte(timeMid >> 8)
	raw[5] = byte(timeMid)
	raw[6] = byte(timeHiAndVersion >> 8)
	raw[7] = byte(timeHiAndVersion)

	raw[8] = (clockSeqBytes[0] & 0x3F) | 0x80
	raw[9] = clockSeqBytes[1]

	copy(raw[10:], mac[:])

	id, err := uuid.FromBytes(raw[:])
	if err != nil {
		return "", fmt.Errorf("unable to construct identifier: %w", err)
	}

	return id.String(), nil
}
