package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/openclaw/clawctl/internal/errors"
	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/pkg/types"
)

// fakeTable is a scripted ListenerTable. listenersErr applies to every
// query until failuresLeft reaches zero.
type fakeTable struct {
	listeners    map[int][]types.ListenerInfo
	queryErr     error
	failuresLeft int
	calls        int
}

func (f *fakeTable) Listeners(ctx context.Context) ([]types.ListenerInfo, error) {
	all := []types.ListenerInfo{}
	for _, ls := range f.listeners {
		all = append(all, ls...)
	}
	return all, nil
}

func (f *fakeTable) ListenersOn(ctx context.Context, port int) ([]types.ListenerInfo, error) {
	f.calls++
	if f.queryErr != nil && (f.failuresLeft == 0 || f.calls <= f.failuresLeft) {
		return nil, f.queryErr
	}
	return f.listeners[port], nil
}

func (f *fakeTable) EstablishedCount(ctx context.Context, port int) (int, error) {
	return 0, nil
}

func newTestProbe(table *fakeTable) *PortProbeImpl {
	probe := NewPortProbeImpl(table, apperrors.PortCheckRetry(), &logger.NopLogger{})
	probe.sleep = func(time.Duration) {}
	return probe
}

func TestProbe_FreePort(t *testing.T) {
	probe := newTestProbe(&fakeTable{listeners: map[int][]types.ListenerInfo{}})

	result, err := probe.Probe(context.Background(), 18789)
	require.NoError(t, err)
	assert.False(t, result.InUse)
	assert.Equal(t, 18789, result.Port)
}

func TestProbe_OccupiedPortCarriesOwner(t *testing.T) {
	probe := newTestProbe(&fakeTable{listeners: map[int][]types.ListenerInfo{
		18789: {{Port: 18789, PID: 4312, ProcessName: "node"}},
	}})

	result, err := probe.Probe(context.Background(), 18789)
	require.NoError(t, err)
	assert.True(t, result.InUse)
	assert.Equal(t, 4312, result.OwnerProcessID)
	assert.Equal(t, "node", result.OwnerProcessName)
}

func TestProbe_FailsClosedWhenTableUnreadable(t *testing.T) {
	table := &fakeTable{queryErr: errors.New("netstat exploded")}
	probe := newTestProbe(table)

	result, err := probe.Probe(context.Background(), 18789)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrPortCheckFailed, apperrors.CodeOf(err))
	assert.True(t, result.InUse, "an unanswerable probe must read as occupied")
	assert.Equal(t, apperrors.PortCheckRetry().MaxRetries, table.calls)
}

func TestProbe_RecoversAfterTransientFailure(t *testing.T) {
	table := &fakeTable{
		listeners:    map[int][]types.ListenerInfo{},
		queryErr:     errors.New("transient"),
		failuresLeft: 1,
	}
	probe := newTestProbe(table)

	result, err := probe.Probe(context.Background(), 18789)
	require.NoError(t, err)
	assert.False(t, result.InUse)
	assert.Equal(t, 2, table.calls)
}

func TestProbe_RejectsOutOfRangePort(t *testing.T) {
	probe := newTestProbe(&fakeTable{})

	result, err := probe.Probe(context.Background(), 70000)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrPortRangeInvalid, apperrors.CodeOf(err))
	assert.True(t, result.InUse)

	_, err = probe.Probe(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrPortRangeInvalid, apperrors.CodeOf(err))
}
