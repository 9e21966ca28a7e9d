package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"shikkha/internal/ports/input"
	"shikkha/internal/ports/output"
)

var _ input.AnnouncementUseCase = (*AnnouncementService)(nil)

type AnnouncementService struct {
	postRepo  output.PostRepository
	announcer output.Announcer
}

func NewAnnouncementService(postRepo output.PostRepository, announcer output.Announcer) *AnnouncementService {
	return &AnnouncementService{postRepo: postRepo, announcer: announcer}
}

// AnnounceDue announces every published post whose date has passed and that
// was never announced. A post is marked only after its announcement went
// out, so a failed send is retried on the next run.
func (s *AnnouncementService) AnnounceDue(ctx context.Context, now time.Time) (int, error) {
	posts, err := s.postRepo.FindDueForAnnouncement(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("find due posts: %w", err)
	}
	sent := 0
	for i := range posts {
		post := &posts[i]
		if err := s.announcer.Announce(ctx, post); err != nil {
			log.Printf("⚠️ announce post %d (%s/%s): %v", post.ID, post.Locale, post.Slug, err)
			continue
		}
		if err := s.postRepo.MarkAnnounced(ctx, post.ID, now); err != nil {
			return sent, fmt.Errorf("mark post %d announced: %w", post.ID, err)
		}
		sent++
	}
	return sent, nil
}
