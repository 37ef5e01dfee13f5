package scanner

import (
	"context"
	"os/exec"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/openclaw/clawctl/internal/errors"
	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/pkg/types"
)

// NetstatListenerTable reads the TCP listener table via netstat. On Windows
// `netstat -ano` already carries the owning pid; on Unix the pid is filled
// in per-port through lsof and the process name through ps, both
// best-effort.
type NetstatListenerTable struct {
	logger logger.Logger
	run    CommandRunner
}

// NewNetstatListenerTable creates a listener table backed by the real
// netstat binary.
func NewNetstatListenerTable(logger logger.Logger) *NetstatListenerTable {
	return &NetstatListenerTable{
		logger: logger,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// NewNetstatListenerTableWithRunner creates a table with an injected command
// runner, used by tests.
func NewNetstatListenerTableWithRunner(logger logger.Logger, run CommandRunner) *NetstatListenerTable {
	return &NetstatListenerTable{logger: logger, run: run}
}

// Matches the local-address column of a LISTEN line across the formats we
// care about:
//
//	Windows:  TCP    0.0.0.0:18789     0.0.0.0:0    LISTENING    1234
//	Linux:    tcp    0 0 0.0.0.0:18789 0.0.0.0:*    LISTEN
//	macOS:    tcp4   0 0 *.18789       *.*          LISTEN
var listenLineRe = regexp.MustCompile(`(?i)^\s*tcp\S*\s+.*?(?:\*|[0-9a-f:.\[\]]+)[.:](\d+)\s+\S+\s+LISTEN(?:ING)?(?:\s+(\d+))?\s*$`)

// Listeners returns every TCP listener on the machine. An execution failure
// or an output with no LISTEN entries at all is treated as a failed query;
// the caller is expected to fail closed.
func (t *NetstatListenerTable) Listeners(ctx context.Context) ([]types.ListenerInfo, error) {
	t.logger.Debug(ctx, "scanning TCP listener table")

	output, err := t.run(ctx, "netstat", netstatArgs()...)
	if err != nil {
		return nil, errors.NewPortCheckFailedError(0, err)
	}

	listeners := parseNetstatListeners(string(output))
	if len(listeners) == 0 {
		// A machine with zero TCP listeners is not a state this launcher
		// can encounter; treat it as a query failure.
		return nil, errors.NewPortCheckFailedError(0, nil).
			WithField("reason", "netstat produced no LISTEN entries")
	}

	sort.Slice(listeners, func(i, j int) bool { return listeners[i].Port < listeners[j].Port })

	t.logger.Debug(ctx, "listener scan complete",
		types.Field{Key: "listener_count", Value: len(listeners)})

	return listeners, nil
}

// ListenersOn returns the listeners occupying port, with owner lookup.
func (t *NetstatListenerTable) ListenersOn(ctx context.Context, port int) ([]types.ListenerInfo, error) {
	all, err := t.Listeners(ctx)
	if err != nil {
		return nil, err
	}

	var matches []types.ListenerInfo
	for _, l := range all {
		if l.Port == port {
			matches = append(matches, l)
		}
	}

	if runtime.GOOS != "windows" {
		t.fillUnixOwners(ctx, port, matches)
	}
	t.fillProcessNames(ctx, matches)

	return matches, nil
}

// EstablishedCount counts established connections on the given local port.
func (t *NetstatListenerTable) EstablishedCount(ctx context.Context, port int) (int, error) {
	output, err := t.run(ctx, "netstat", netstatArgs()...)
	if err != nil {
		return 0, errors.NewPortCheckFailedError(port, err)
	}

	want := strconv.Itoa(port)
	count := 0
	for _, line := range strings.Split(string(output), "\n") {
		if !strings.Contains(line, "ESTABLISHED") {
			continue
		}
		fields := strings.Fields(line)
		for _, f := range fields {
			// Local or remote address column ending in the port.
			if strings.HasSuffix(f, ":"+want) || strings.HasSuffix(f, "."+want) {
				count++
				break
			}
		}
	}
	return count, nil
}

func netstatArgs() []string {
	if runtime.GOOS == "windows" {
		return []string{"-ano"}
	}
	return []string{"-an"}
}

func parseNetstatListeners(output string) []types.ListenerInfo {
	seen := make(map[int]types.ListenerInfo)

	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "LISTEN") {
			continue
		}
		matches := listenLineRe.FindStringSubmatch(line)
		if len(matches) < 2 {
			continue
		}
		port, err := strconv.Atoi(matches[1])
		if err != nil {
			continue
		}
		info := types.ListenerInfo{Port: port}
		if len(matches) >= 3 && matches[2] != "" {
			if pid, err := strconv.Atoi(matches[2]); err == nil {
				info.PID = pid
			}
		}
		// Keep the entry with a pid when the same port shows up for both
		// IPv4 and IPv6.
		if existing, ok := seen[port]; !ok || (existing.PID == 0 && info.PID != 0) {
			seen[port] = info
		}
	}

	result := make([]types.ListenerInfo, 0, len(seen))
	for _, info := range seen {
		result = append(result, info)
	}
	return result
}

// fillUnixOwners resolves owning pids on Unix via lsof. Failure is
// non-fatal and leaves the pid at zero.
func (t *NetstatListenerTable) fillUnixOwners(ctx context.Context, port int, listeners []types.ListenerInfo) {
	if len(listeners) == 0 {
		return
	}

	output, err := t.run(ctx, "lsof", "-ti", "tcp:"+strconv.Itoa(port), "-sTCP:LISTEN")
	if err != nil {
		t.logger.Debug(ctx, "owner pid lookup failed",
			types.Field{Key: "port", Value: port},
			types.Field{Key: "error", Value: err.Error()})
		return
	}

	var pids []int
	for _, line := range strings.Fields(strings.TrimSpace(string(output))) {
		if pid, err := strconv.Atoi(line); err == nil && pid > 0 {
			pids = append(pids, pid)
		}
	}

	for i := range listeners {
		if i < len(pids) {
			listeners[i].PID = pids[i]
		} else if len(pids) > 0 {
			listeners[i].PID = pids[0]
		}
	}
}

// fillProcessNames resolves human-readable names, best-effort.
func (t *NetstatListenerTable) fillProcessNames(ctx context.Context, listeners []types.ListenerInfo) {
	for i := range listeners {
		if listeners[i].PID <= 0 || listeners[i].ProcessName != "" {
			continue
		}
		name, err := t.processName(ctx, listeners[i].PID)
		if err != nil {
			t.logger.Debug(ctx, "process name lookup failed",
				types.Field{Key: "pid", Value: listeners[i].PID},
				types.Field{Key: "error", Value: err.Error()})
			continue
		}
		listeners[i].ProcessName = name
	}
}

func (t *NetstatListenerTable) processName(ctx context.Context, pid int) (string, error) {
	if runtime.GOOS == "windows" {
		output, err := t.run(ctx, "tasklist", "/FI", "PID eq "+strconv.Itoa(pid), "/FO", "CSV", "/NH")
		if err != nil {
			return "", err
		}
		line := strings.TrimSpace(string(output))
		parts := strings.Split(line, ",")
		if len(parts) > 0 {
			return strings.Trim(parts[0], `"`), nil
		}
		return "", nil
	}

	output, err := t.run(ctx, "ps", "-p", strconv.Itoa(pid), "-o", "comm=")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
