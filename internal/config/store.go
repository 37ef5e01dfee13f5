package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	apperrors "github.com/openclaw/clawctl/internal/errors"
)

// ViperStore is the viper-backed Store implementation persisting launcher
// settings as JSON. Access is serialized: the controller's auto-resolution
// write can race the settings surface and the metrics sampler otherwise.
type ViperStore struct {
	mu   sync.RWMutex
	v    *viper.Viper
	fs   afero.Fs
	path string
}

// NewViperStore loads (or initializes) the settings file at path. A missing
// file is not an error; defaults apply until the first Save.
func NewViperStore(fs afero.Fs, path string) (*ViperStore, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault(KeyProjectPath, DefaultProjectPath())
	v.SetDefault(KeyGatewayPort, DefaultGatewayPort)
	v.SetDefault(KeyLogFile, DefaultLogFilePath())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTheme, "dark")
	v.SetDefault(KeyAutoStart, false)

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, (&apperrors.AppError{
				Code:    apperrors.ErrConfigLoadFailed,
				Message: "failed to read launcher settings",
				Cause:   err,
			}).WithField("path", path)
		}
	}

	return &ViperStore{v: v, fs: fs, path: path}, nil
}

// ProjectPath returns the configured OpenClaw project directory.
func (s *ViperStore) ProjectPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetString(KeyProjectPath)
}

// GatewayPort returns the configured gateway port.
func (s *ViperStore) GatewayPort() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetInt(KeyGatewayPort)
}

// SetGatewayPort records a new gateway port in memory. Save flushes it.
func (s *ViperStore) SetGatewayPort(port int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(KeyGatewayPort, port)
}

// LogFilePath returns the gateway log file location.
func (s *ViperStore) LogFilePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetString(KeyLogFile)
}

// LogLevel returns the configured log level.
func (s *ViperStore) LogLevel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetString(KeyLogLevel)
}

// ThemePreference returns the UI theme token. Read by the presentation
// layer only.
func (s *ViperStore) ThemePreference() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetString(KeyTheme)
}

// AutoStart reports whether the gateway starts with the launcher.
func (s *ViperStore) AutoStart() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetBool(KeyAutoStart)
}

// Save flushes the in-memory settings to the settings file.
func (s *ViperStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return (&apperrors.AppError{
			Code:    apperrors.ErrConfigSaveFailed,
			Message: "failed to create settings directory",
			Cause:   err,
		}).WithField("path", s.path)
	}

	if err := s.v.WriteConfigAs(s.path); err != nil {
		return (&apperrors.AppError{
			Code:    apperrors.ErrConfigSaveFailed,
			Message: "failed to write launcher settings",
			Cause:   err,
		}).WithField("path", s.path)
	}
	return nil
}

// Path returns the settings file location.
func (s *ViperStore) Path() string {
	return s.path
}

// Reload re-reads the settings file, discarding unsaved in-memory edits.
// Used by the file watcher after an external change.
func (s *ViperStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.v.ReadInConfig(); err != nil {
		return (&apperrors.AppError{
			Code:    apperrors.ErrConfigLoadFailed,
			Message: "failed to reload launcher settings",
			Cause:   err,
		}).WithField("path", s.path)
	}
	return nil
}
