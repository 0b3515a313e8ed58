package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"freee-timecard/internal/application/port/output"
	"freee-timecard/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

var _ output.CredentialStore = (*FileCredentialStore)(nil)

// FileCredentialStore reads the credential record from a YAML file.
// A missing file yields the zero credential. The file is never written.
type FileCredentialStore struct {
	path string
	env  *EnvService
}

func NewFileCredentialStore(path string, env *EnvService) *FileCredentialStore {
	return &FileCredentialStore{path: path, env: env}
}

func (s *FileCredentialStore) Path() string {
	return s.path
}

func (s *FileCredentialStore) Load(ctx context.Context) (entity.Credential, error) {
	var cred entity.Credential
	if err := ctx.Err(); err != nil {
		return cred, err
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cred, fmt.Errorf("%w: read %s: %w", ErrConfigLoad, s.path, err)
	default:
		if err := yaml.Unmarshal(data, &cred); err != nil {
			return entity.Credential{}, fmt.Errorf("%w: parse %s: %w", ErrConfigLoad, s.path, err)
		}
	}

	if s.env != nil {
		if v, ok := s.env.Lookup(EnvEmail); ok {
			cred.Email = v
		}
		if v, ok := s.env.Lookup(EnvPassword); ok {
			cred.Password = v
		}
	}
	return cred, nil
}
