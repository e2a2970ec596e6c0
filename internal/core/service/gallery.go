package service

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bdu-steam/steam-cli/internal/core/domain"
	"github.com/bdu-steam/steam-cli/internal/telemetry/logger"
)

// GalleryOptions bounds the lesson lookups made while building a gallery.
type GalleryOptions struct {
	// Concurrency is the maximum number of lookups in flight.
	Concurrency int
	// RatePerSecond limits how fast lookups start.
	RatePerSecond float64
	// Progress, when set, is called after each lookup finishes.
	Progress func(done, total int)
}

// DefaultGalleryOptions returns the default lookup bounds.
func DefaultGalleryOptions() GalleryOptions {
	return GalleryOptions{Concurrency: 4, RatePerSecond: 10}
}

func (o GalleryOptions) withDefaults() GalleryOptions {
	d := DefaultGalleryOptions()
	if o.Concurrency <= 0 {
		o.Concurrency = d.Concurrency
	}
	if o.RatePerSecond <= 0 {
		o.RatePerSecond = d.RatePerSecond
	}
	return o
}

// GalleryEntry is a gallery with its lesson, when the lesson could be found.
type GalleryEntry struct {
	Gallery domain.LessonGallery `json:"gallery"`
	Lesson  *domain.Lesson       `json:"lesson,omitempty"`
}

// LessonName returns the resolved lesson name, or "" when unknown.
func (e GalleryEntry) LessonName() string {
	if e.Lesson == nil {
		return ""
	}
	return e.Lesson.Name
}

// Gallery returns the galleries matching f with their lessons resolved.
// Lessons are looked up concurrently; a failed lookup leaves the entry's
// Lesson nil and does not fail the call.
func (s *CatalogService) Gallery(ctx context.Context, f Filter) ([]GalleryEntry, error) {
	galleries, err := s.LessonGalleries(ctx, f)
	if err != nil {
		return nil, err
	}

	lessons := s.resolveLessons(ctx, lessonIDs(galleries))

	entries := make([]GalleryEntry, len(galleries))
	for i, g := range galleries {
		entries[i] = GalleryEntry{Gallery: g, Lesson: lessons[g.Lesson.String()]}
	}
	return entries, nil
}

// lessonIDs returns the distinct non-empty lesson ids in first-seen order.
func lessonIDs(galleries []domain.LessonGallery) []string {
	seen := make(map[string]bool, len(galleries))
	ids := make([]string, 0, len(galleries))
	for _, g := range galleries {
		id := g.Lesson.String()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func (s *CatalogService) resolveLessons(ctx context.Context, ids []string) map[string]*domain.Lesson {
	out := make(map[string]*domain.Lesson, len(ids))
	if len(ids) == 0 {
		return out
	}

	opts := s.gallery.withDefaults()
	limiter := rate.NewLimiter(rate.Limit(opts.RatePerSecond), opts.Concurrency)
	log := logger.L(ctx)

	var (
		mu   sync.Mutex
		done atomic.Int32
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, id := range ids {
		g.Go(func() error {
			defer func() {
				n := int(done.Add(1))
				if opts.Progress != nil {
					opts.Progress(n, len(ids))
				}
			}()

			if err := limiter.Wait(gctx); err != nil {
				return nil
			}
			lesson, err := s.Lesson(gctx, id)
			if err != nil {
				log.Debug("lesson lookup failed", "lesson", id, "error", err)
				return nil
			}

			mu.Lock()
			out[id] = lesson
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}
