package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawctl/internal/logger"
)

func TestFileWatcher_ReloadsOnExternalEdit(t *testing.T) {
	fs := afero.NewOsFs()
	path := filepath.Join(t.TempDir(), "launcher.json")
	require.NoError(t, afero.WriteFile(fs, path,
		[]byte(`{"gateway": {"port": 18789}}`), 0o640))

	store, err := NewViperStore(fs, path)
	require.NoError(t, err)
	require.Equal(t, 18789, store.GatewayPort())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	watcher := NewFileWatcher(store, &logger.NopLogger{})
	require.NoError(t, watcher.Watch(ctx, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))
	defer watcher.Stop()

	// fsnotify needs a moment to register the directory watch.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, afero.WriteFile(fs, path,
		[]byte(`{"gateway": {"port": 19100}}`), 0o640))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not observe the settings edit")
	}
	assert.Equal(t, 19100, store.GatewayPort())
}

func TestFileWatcher_IgnoresSiblingFiles(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()
	path := filepath.Join(dir, "launcher.json")
	require.NoError(t, afero.WriteFile(fs, path,
		[]byte(`{"gateway": {"port": 18789}}`), 0o640))

	store, err := NewViperStore(fs, path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	watcher := NewFileWatcher(store, &logger.NopLogger{})
	require.NoError(t, watcher.Watch(ctx, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))
	defer watcher.Stop()

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "other.json"),
		[]byte(`{}`), 0o640))

	select {
	case <-changed:
		t.Fatal("watcher reacted to an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
	assert.Equal(t, 18789, store.GatewayPort())
}
