package cleanup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/openclaw/clawctl/internal/errors"
	"github.com/openclaw/clawctl/internal/logger"
	"github.com/openclaw/clawctl/pkg/types"
)

type fakeTable struct {
	listeners map[int][]types.ListenerInfo
	queryErr  error
}

func (f *fakeTable) Listeners(ctx context.Context) ([]types.ListenerInfo, error) {
	return nil, nil
}

func (f *fakeTable) ListenersOn(ctx context.Context, port int) ([]types.ListenerInfo, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.listeners[port], nil
}

func (f *fakeTable) EstablishedCount(ctx context.Context, port int) (int, error) {
	return 0, nil
}

func TestReapListeners_TerminatesEveryListener(t *testing.T) {
	table := &fakeTable{listeners: map[int][]types.ListenerInfo{
		18789: {
			{Port: 18789, PID: 111, ProcessName: "node"},
			{Port: 18789, PID: 222, ProcessName: "node"},
		},
	}}

	var killed []int
	reaper := NewListenerReaperWithKiller(table, &logger.NopLogger{}, func(pid int) error {
		killed = append(killed, pid)
		return nil
	})

	count, err := reaper.ReapListeners(context.Background(), 18789, 999)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []int{111, 222}, killed)
}

func TestReapListeners_NeverKillsSelf(t *testing.T) {
	self := 4242
	table := &fakeTable{listeners: map[int][]types.ListenerInfo{
		18789: {
			{Port: 18789, PID: self, ProcessName: "clawctl"},
			{Port: 18789, PID: 111, ProcessName: "node"},
		},
	}}

	var killed []int
	reaper := NewListenerReaperWithKiller(table, &logger.NopLogger{}, func(pid int) error {
		killed = append(killed, pid)
		return nil
	})

	count, err := reaper.ReapListeners(context.Background(), 18789, self)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotContains(t, killed, self)
}

func TestReapListeners_SkipsUnknownPids(t *testing.T) {
	table := &fakeTable{listeners: map[int][]types.ListenerInfo{
		18789: {
			{Port: 18789, PID: 0},
			{Port: 18789, PID: -1},
		},
	}}

	var killed []int
	reaper := NewListenerReaperWithKiller(table, &logger.NopLogger{}, func(pid int) error {
		killed = append(killed, pid)
		return nil
	})

	count, err := reaper.ReapListeners(context.Background(), 18789, 999)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, killed)
}

func TestReapListeners_PartialFailure(t *testing.T) {
	table := &fakeTable{listeners: map[int][]types.ListenerInfo{
		18789: {
			{Port: 18789, PID: 111, ProcessName: "node"},
			{Port: 18789, PID: 222, ProcessName: "node"},
		},
	}}

	reaper := NewListenerReaperWithKiller(table, &logger.NopLogger{}, func(pid int) error {
		if pid == 222 {
			return errors.New("operation not permitted")
		}
		return nil
	})

	count, err := reaper.ReapListeners(context.Background(), 18789, 999)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrProcessReapPartial, apperrors.CodeOf(err))
	assert.Equal(t, 1, count, "successful terminations still count")
}

func TestReapListeners_EnumerationFailure(t *testing.T) {
	table := &fakeTable{queryErr: errors.New("netstat unavailable")}

	called := false
	reaper := NewListenerReaperWithKiller(table, &logger.NopLogger{}, func(pid int) error {
		called = true
		return nil
	})

	count, err := reaper.ReapListeners(context.Background(), 18789, 999)
	require.Error(t, err)
	assert.Equal(t, 0, count)
	assert.False(t, called, "nothing enumerable, nothing killed")
}

func TestReapListeners_EmptyPortIsANoop(t *testing.T) {
	table := &fakeTable{listeners: map[int][]types.ListenerInfo{}}

	reaper := NewListenerReaperWithKiller(table, &logger.NopLogger{}, func(pid int) error {
		t.Fatal("kill must not be called")
		return nil
	})

	count, err := reaper.ReapListeners(context.Background(), 18789, 999)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
