package output

import (
	"context"

	"shikkha/internal/domain/entities"
)

// Announcer publishes a notice about a newly visible post to an external channel.
type Announcer interface {
	Announce(ctx context.Context, post *entities.Post) error
}
