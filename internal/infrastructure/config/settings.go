// Package config resolves the credential record and runtime settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrConfigLoad = errors.New("config load failed")

const (
	AppName = "freee-timecard"

	EnvConfigPath     = "FREEE_TIMECARD_CONFIG"
	EnvEmail          = "FREEE_TIMECARD_EMAIL"
	EnvPassword       = "FREEE_TIMECARD_PASSWORD"
	EnvTimeout        = "FREEE_TIMECARD_TIMEOUT"
	EnvSlowMotion     = "FREEE_TIMECARD_SLOW_MOTION"
	EnvNoSandbox      = "FREEE_TIMECARD_NO_SANDBOX"
	EnvLogLevel       = "FREEE_TIMECARD_LOG_LEVEL"
	EnvDiagnosticsDir = "FREEE_TIMECARD_DIAGNOSTICS_DIR"

	defaultTimeout  = 30 * time.Second
	defaultFileName = "default-config.yml"
)

// Settings is built once at startup and passed down explicitly.
type Settings struct {
	CredentialPath string
	Timeout        time.Duration
	SlowMotion     time.Duration
	NoSandbox      bool
	LogLevel       string
	DiagnosticsDir string
}

func LoadSettings(env *EnvService) (*Settings, error) {
	timeout, err := env.GetDuration(EnvTimeout, defaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive", ErrConfigLoad, EnvTimeout)
	}

	slowMotion, err := env.GetDuration(EnvSlowMotion, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}

	noSandbox, err := env.GetBool(EnvNoSandbox, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoad, err)
	}

	credPath, err := CredentialPath(env)
	if err != nil {
		return nil, err
	}

	diagDir := env.Get(EnvDiagnosticsDir)
	if diagDir != "" {
		diagDir = filepath.Clean(expandHomePath(diagDir))
	}

	return &Settings{
		CredentialPath: credPath,
		Timeout:        timeout,
		SlowMotion:     slowMotion,
		NoSandbox:      noSandbox,
		LogLevel:       env.GetWithDefault(EnvLogLevel, "info"),
		DiagnosticsDir: diagDir,
	}, nil
}

// CredentialPath returns $FREEE_TIMECARD_CONFIG or the per-user default
// under os.UserConfigDir.
func CredentialPath(env *EnvService) (string, error) {
	if p := strings.TrimSpace(env.Get(EnvConfigPath)); p != "" {
		return filepath.Clean(expandHomePath(p)), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: resolve user config dir: %w", ErrConfigLoad, err)
	}
	return filepath.Join(dir, AppName, defaultFileName), nil
}

func expandHomePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil || strings.TrimSpace(home) == "" {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/"))
	}
	return path
}
