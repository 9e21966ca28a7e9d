package discord

import (
	"context"
	"log"
	"time"

	"shikkha/internal/ports/input"
)

// RunScheduledAnnouncements announces due posts right away and then on every
// tick of interval, until ctx is cancelled. A nil use case or a non-positive
// interval disables the loop.
func RunScheduledAnnouncements(ctx context.Context, uc input.AnnouncementUseCase, interval time.Duration) {
	if uc == nil || interval <= 0 {
		log.Println("ℹ️ Scheduled announcements disabled.")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		announceOnce(ctx, uc, time.Now())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func announceOnce(ctx context.Context, uc input.AnnouncementUseCase, now time.Time) {
	n, err := uc.AnnounceDue(ctx, now)
	if err != nil {
		log.Printf("⚠️ Scheduled announcements: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ Announced %d post(s)", n)
	}
}
