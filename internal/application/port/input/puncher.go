package input

import (
	"context"

	"freee-timecard/internal/domain/entity"
)

type PunchResult struct {
	Action   entity.Action
	FinalURL string
}

type Puncher interface {
	Execute(ctx context.Context, action entity.Action) (*PunchResult, error)
}
