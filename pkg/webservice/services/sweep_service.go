package services

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/imagestore"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/repositories"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ImageFiles is the part of the file store the sweep needs.
type ImageFiles interface {
	Bottles() ([]int64, error)
	Messages(bottleID int64) ([]imagestore.ImageFile, error)
	Remove(bottleID, messageID int64) error
}

const (
	defaultSweepWorkers = 4
	// DefaultSweepGrace keeps files of batches that may still be running.
	DefaultSweepGrace = 10 * time.Minute
)

// SweepService removes image files no message row points to. Such files are
// left behind when a write races with a concurrent insert of the same
// message, or when compensation failed.
type SweepService struct {
	repo    repositories.MessageRepository
	files   ImageFiles
	grace   time.Duration
	workers int64
	now     func() time.Time
}

func NewSweepService(repo repositories.MessageRepository, files ImageFiles, grace time.Duration) *SweepService {
	return &SweepService{
		repo:    repo,
		files:   files,
		grace:   grace,
		workers: defaultSweepWorkers,
		now:     time.Now,
	}
}

// Sweep walks every bottle directory and returns the number of removed files.
func (s *SweepService) Sweep(ctx context.Context) (int, error) {
	bottles, err := s.files.Bottles()
	if err != nil {
		return 0, err
	}

	var removed atomic.Int64
	sem := semaphore.NewWeighted(s.workers)
	g, ctx := errgroup.WithContext(ctx)

	for _, bottleID := range bottles {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			n, err := s.sweepBottle(ctx, bottleID)
			removed.Add(int64(n))
			return err
		})
	}

	err = g.Wait()
	log.Printf("[sweep] bottles=%d removed=%d", len(bottles), removed.Load())
	return int(removed.Load()), err
}

func (s *SweepService) sweepBottle(ctx context.Context, bottleID int64) (int, error) {
	files, err := s.files.Messages(bottleID)
	if err != nil || len(files) == 0 {
		return 0, err
	}

	flags, err := s.repo.ListImageFlags(ctx, bottleID)
	if err != nil {
		return 0, err
	}
	hasPicture := make(map[int64]bool, len(flags))
	for _, f := range flags {
		hasPicture[f.MessageID] = f.HasPicture
	}

	cutoff := s.now().Add(-s.grace)
	removed := 0
	for _, f := range files {
		if hasPicture[f.MessageID] || f.ModTime.After(cutoff) {
			continue
		}
		if err := s.files.Remove(bottleID, f.MessageID); err != nil {
			log.Printf("[sweep] remove bottle=%d message=%d: %v", bottleID, f.MessageID, err)
			continue
		}
		removed++
	}
	return removed, nil
}
