package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawctl/internal/config"
	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/pkg/types"
)

// inUseProbe reports every probed port as occupied and records the ports.
type inUseProbe struct {
	ports []int
}

func (p *inUseProbe) Probe(ctx context.Context, port int) (types.PortProbeResult, error) {
	p.ports = append(p.ports, port)
	return types.PortProbeResult{Port: port, InUse: true, OwnerProcessID: 4312}, nil
}

func TestProbeStateSource_ReadsPortFromStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/settings/launcher.json"
	require.NoError(t, afero.WriteFile(fs, path,
		[]byte(`{"gateway": {"port": 18789}}`), 0o640))

	store, err := config.NewViperStore(fs, path)
	require.NoError(t, err)

	probe := &inUseProbe{}
	source := &probeStateSource{ctx: context.Background(), probe: probe, store: store}

	snapshot := source.StateSnapshot()
	assert.Equal(t, types.StatusRunning, snapshot.Status)
	assert.Equal(t, 18789, snapshot.ActivePort)

	require.NoError(t, afero.WriteFile(fs, path,
		[]byte(`{"gateway": {"port": 19100}}`), 0o640))
	require.NoError(t, store.Reload())

	snapshot = source.StateSnapshot()
	assert.Equal(t, 19100, snapshot.ActivePort)
	assert.Equal(t, []int{18789, 19100}, probe.ports)
}

func TestWatchStatus_FollowsExternalPortEdit(t *testing.T) {
	fs := afero.NewOsFs()
	path := filepath.Join(t.TempDir(), "launcher.json")
	require.NoError(t, afero.WriteFile(fs, path,
		[]byte(`{"gateway": {"port": 18789}}`), 0o640))

	store, err := config.NewViperStore(fs, path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	settingsWatch := config.NewFileWatcher(store, &logger.NopLogger{})
	require.NoError(t, settingsWatch.Watch(ctx, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))
	defer settingsWatch.Stop()

	probe := &inUseProbe{}
	source := &probeStateSource{ctx: ctx, probe: probe, store: store}
	require.Equal(t, 18789, source.StateSnapshot().ActivePort)

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, afero.WriteFile(fs, path,
		[]byte(`{"gateway": {"port": 19100}}`), 0o640))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("settings watch did not observe the edit")
	}

	assert.Equal(t, 19100, source.StateSnapshot().ActivePort)
}
