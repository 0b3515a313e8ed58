package output

import "context"

type UserInteractionPort interface {
	ShowStage(ctx context.Context, stage, detail string)
	ShowSuccess(ctx context.Context, message string)
	ShowError(ctx context.Context, err error)
}
