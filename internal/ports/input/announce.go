package input

import (
	"context"
	"time"
)

// AnnouncementUseCase announces posts that became visible since the last run.
type AnnouncementUseCase interface {
	AnnounceDue(ctx context.Context, now time.Time) (int, error)
}
