// Package types provides the basic type definitions shared across clawctl.
package types

// PortRange represents an inclusive TCP port range.
type PortRange struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Contains reports whether port falls inside the range.
func (r PortRange) Contains(port int) bool {
	return port >= r.Start && port <= r.End
}

// Well-known port boundaries used by the allocator.
var (
	// ValidPorts is the full usable TCP port space.
	ValidPorts = PortRange{Start: 1, End: 65535}
	// UnprivilegedPorts excludes the privileged range below 1024.
	UnprivilegedPorts = PortRange{Start: 1024, End: 65535}
	// EphemeralPorts is the dynamic/private range used for fallback draws.
	EphemeralPorts = PortRange{Start: 49152, End: 65535}
)

// ListenerInfo describes one process holding a TCP socket in LISTENING
// state. PID and process name are best-effort and may be zero/empty when
// the reverse lookup fails.
type ListenerInfo struct {
	Port        int    `json:"port"`
	PID         int    `json:"pid"`
	ProcessName string `json:"process_name"`
}

// PortProbeResult is the outcome of a single port probe. Created fresh on
// every probe and never persisted.
type PortProbeResult struct {
	Port             int    `json:"port"`
	InUse            bool   `json:"in_use"`
	OwnerProcessID   int    `json:"owner_process_id,omitempty"`
	OwnerProcessName string `json:"owner_process_name,omitempty"`
}

// PortAllocationOutcome is the result of one allocation attempt. The caller
// decides whether ResolvedPort gets persisted.
type PortAllocationOutcome struct {
	Success      bool   `json:"success"`
	ResolvedPort int    `json:"resolved_port"`
	OriginalPort int    `json:"original_port"`
	WasChanged   bool   `json:"was_changed"`
	ErrorMessage string `json:"error_message,omitempty"`
}
