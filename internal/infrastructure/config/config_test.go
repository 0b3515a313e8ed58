package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"freee-timecard/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapEnv(values map[string]string) *EnvService {
	return NewEnvService(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFileCredentialStore_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default-config.yml")
	writeFile(t, path, "email: taro@example.com\npassword: \"p@ss: word\"\n")

	cred, err := NewFileCredentialStore(path, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Credential{Email: "taro@example.com", Password: "p@ss: word"}, cred)
}

func TestFileCredentialStore_MissingFileDefaultsToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "default-config.yml")

	cred, err := NewFileCredentialStore(path, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Credential{}, cred)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "loading must not create the file")
}

func TestFileCredentialStore_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default-config.yml")
	writeFile(t, path, "email: taro@example.com\n")

	cred, err := NewFileCredentialStore(path, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "taro@example.com", cred.Email)
	assert.Empty(t, cred.Password)
}

func TestFileCredentialStore_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default-config.yml")
	writeFile(t, path, "email: [unterminated\n")

	_, err := NewFileCredentialStore(path, nil).Load(context.Background())
	assert.ErrorIs(t, err, ErrConfigLoad)
}

func TestFileCredentialStore_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default-config.yml")
	writeFile(t, path, "email: file@example.com\npassword: file\n")
	env := mapEnv(map[string]string{EnvPassword: "from-env"})

	cred, err := NewFileCredentialStore(path, env).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file@example.com", cred.Email)
	assert.Equal(t, "from-env", cred.Password)
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(mapEnv(nil))
	require.NoError(t, err)

	userDir, err := os.UserConfigDir()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Zero(t, s.SlowMotion)
	assert.False(t, s.NoSandbox)
	assert.Equal(t, "info", s.LogLevel)
	assert.Empty(t, s.DiagnosticsDir)
	assert.Equal(t, filepath.Join(userDir, AppName, "default-config.yml"), s.CredentialPath)
}

func TestLoadSettings_FromEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := LoadSettings(mapEnv(map[string]string{
		EnvConfigPath:     "~/creds.yml",
		EnvTimeout:        "45s",
		EnvSlowMotion:     "250ms",
		EnvNoSandbox:      "true",
		EnvLogLevel:       "debug",
		EnvDiagnosticsDir: "~/diag",
	}))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "creds.yml"), s.CredentialPath)
	assert.Equal(t, 45*time.Second, s.Timeout)
	assert.Equal(t, 250*time.Millisecond, s.SlowMotion)
	assert.True(t, s.NoSandbox)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, filepath.Join(home, "diag"), s.DiagnosticsDir)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad timeout", map[string]string{EnvTimeout: "soon"}},
		{"zero timeout", map[string]string{EnvTimeout: "0s"}},
		{"bad slow motion", map[string]string{EnvSlowMotion: "slow"}},
		{"bad sandbox", map[string]string{EnvNoSandbox: "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(mapEnv(tt.env))
			assert.ErrorIs(t, err, ErrConfigLoad)
		})
	}
}

func TestLoadEnv_LayersDotenvFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "FREEE_TIMECARD_EMAIL=base@example.com\nFREEE_TIMECARD_LOG_LEVEL=warn\n")
	writeFile(t, filepath.Join(dir, ".env.test"), "FREEE_TIMECARD_LOG_LEVEL=debug\n")
	t.Setenv("APP_ENV", "test")
	// Registered so t.Setenv restores them after godotenv sets them.
	t.Setenv(EnvEmail, "")
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvEmail)
	os.Unsetenv(EnvLogLevel)

	env, err := LoadEnv(dir)
	require.NoError(t, err)

	assert.Equal(t, "base@example.com", env.Get(EnvEmail))
	assert.Equal(t, "debug", env.Get(EnvLogLevel))
}

func TestLoadEnv_NoFiles(t *testing.T) {
	t.Setenv("APP_ENV", "")

	_, err := LoadEnv(t.TempDir())
	assert.NoError(t, err)
}

func TestEnvService_GetWithDefault(t *testing.T) {
	env := mapEnv(map[string]string{"SET": "v", "EMPTY": ""})

	assert.Equal(t, "v", env.GetWithDefault("SET", "d"))
	assert.Equal(t, "d", env.GetWithDefault("EMPTY", "d"))
	assert.Equal(t, "d", env.GetWithDefault("MISSING", "d"))
}
