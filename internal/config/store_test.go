package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsPath = "/home/test/.config/openclaw/launcher.json"

func TestViperStore_DefaultsWhenFileMissing(t *testing.T) {
	fs := afero.NewMemMapFs()

	store, err := NewViperStore(fs, settingsPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultGatewayPort, store.GatewayPort())
	assert.Equal(t, "info", store.LogLevel())
	assert.Equal(t, "dark", store.ThemePreference())
	assert.False(t, store.AutoStart())
	assert.NotEmpty(t, store.ProjectPath())
	assert.Equal(t, settingsPath, store.Path())
}

func TestViperStore_SaveRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	store, err := NewViperStore(fs, settingsPath)
	require.NoError(t, err)

	store.SetGatewayPort(18788)
	require.NoError(t, store.Save())

	exists, err := afero.Exists(fs, settingsPath)
	require.NoError(t, err)
	assert.True(t, exists)

	reopened, err := NewViperStore(fs, settingsPath)
	require.NoError(t, err)
	assert.Equal(t, 18788, reopened.GatewayPort())
}

func TestViperStore_LoadsExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := []byte(`{
  "project": {"path": "/work/openclaw"},
  "gateway": {"port": 19000},
  "log": {"file": "/var/log/gateway.log", "level": "debug"},
  "theme": "light",
  "autostart": true
}`)
	require.NoError(t, afero.WriteFile(fs, settingsPath, content, 0o640))

	store, err := NewViperStore(fs, settingsPath)
	require.NoError(t, err)

	assert.Equal(t, "/work/openclaw", store.ProjectPath())
	assert.Equal(t, 19000, store.GatewayPort())
	assert.Equal(t, "/var/log/gateway.log", store.LogFilePath())
	assert.Equal(t, "debug", store.LogLevel())
	assert.Equal(t, "light", store.ThemePreference())
	assert.True(t, store.AutoStart())
}

func TestViperStore_PartialFileKeepsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := []byte(`{"gateway": {"port": 19000}}`)
	require.NoError(t, afero.WriteFile(fs, settingsPath, content, 0o640))

	store, err := NewViperStore(fs, settingsPath)
	require.NoError(t, err)

	assert.Equal(t, 19000, store.GatewayPort())
	assert.Equal(t, "info", store.LogLevel())
	assert.Equal(t, "dark", store.ThemePreference())
}

func TestViperStore_ReloadPicksUpExternalEdit(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath,
		[]byte(`{"gateway": {"port": 18789}}`), 0o640))

	store, err := NewViperStore(fs, settingsPath)
	require.NoError(t, err)
	require.Equal(t, 18789, store.GatewayPort())

	require.NoError(t, afero.WriteFile(fs, settingsPath,
		[]byte(`{"gateway": {"port": 19100}}`), 0o640))

	require.NoError(t, store.Reload())
	assert.Equal(t, 19100, store.GatewayPort())
}

func TestViperStore_MalformedFileIsAnError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(`{not json`), 0o640))

	_, err := NewViperStore(fs, settingsPath)
	require.Error(t, err)
}
