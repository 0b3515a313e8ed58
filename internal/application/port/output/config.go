package output

import (
	"context"

	"freee-timecard/internal/domain/entity"
)

type CredentialStore interface {
	Load(ctx context.Context) (entity.Credential, error)
}
