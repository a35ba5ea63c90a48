package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/imagestore"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/problem"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/repositories"
)

// ImageWriter stores the image of a message.
type ImageWriter interface {
	Write(bottleID, messageID int64, data []byte) (imagestore.UndoFunc, error)
}

// BatchService runs inserts and mark deleted calls all or nothing. Image
// files are written before their row and undone when the batch fails.
type BatchService struct {
	repo   repositories.MessageRepository
	images ImageWriter
}

func NewBatchService(repo repositories.MessageRepository, images ImageWriter) *BatchService {
	return &BatchService{repo: repo, images: images}
}

// InsertMessages stores every item or none and returns the number stored.
func (s *BatchService) InsertMessages(ctx context.Context, bottleID int64, items []models.MessageInput) (int, error) {
	if len(items) == 0 {
		return 0, problem.NewBadRequest("Invalid JSON array")
	}
	err := s.run(ctx, func(tx repositories.MessageRepository, comp *Compensations) error {
		for i, in := range items {
			if err := in.Validate(bottleID, nil); err != nil {
				return err
			}
			if err := s.insert(ctx, tx, in, comp); err != nil {
				log.Printf("[batch] bottle=%d item=%d aborted: %v", bottleID, i, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// InsertMessage stores a single message whose ids must match the URL.
func (s *BatchService) InsertMessage(ctx context.Context, bottleID, messageID int64, in models.MessageInput) error {
	if err := in.Validate(bottleID, &messageID); err != nil {
		return err
	}
	return s.run(ctx, func(tx repositories.MessageRepository, comp *Compensations) error {
		return s.insert(ctx, tx, in, comp)
	})
}

// MarkDeleted stamps date on the listed messages of bottleID that are
// flagged to be deleted. Ids that match no flagged row are skipped.
func (s *BatchService) MarkDeleted(ctx context.Context, bottleID int64, ids []int64, date string) error {
	if date == "" || len(ids) == 0 {
		return problem.NewBadRequest(fmt.Sprintf("invalid argument (date: %s, ids: (%v))", date, ids))
	}
	return s.run(ctx, func(tx repositories.MessageRepository, _ *Compensations) error {
		for _, id := range ids {
			if _, err := tx.MarkDeleted(ctx, bottleID, id, date); err != nil {
				return storeProblem(err, fmt.Sprintf("invalid argument (date: %s, ids: (%v))", date, ids))
			}
		}
		return nil
	})
}

// run executes fn in one transaction. When the transaction does not commit,
// the compensations fn registered are run before returning.
func (s *BatchService) run(ctx context.Context, fn func(tx repositories.MessageRepository, comp *Compensations) error) error {
	var comp Compensations
	err := s.repo.Transaction(ctx, func(tx repositories.MessageRepository) error {
		return fn(tx, &comp)
	})
	if err == nil {
		return nil
	}
	if comp.Len() > 0 {
		if cerr := comp.Run(); cerr != nil {
			log.Printf("[batch] compensation failed: %v", cerr)
		}
	}
	return storeProblem(err, "transaction failed")
}

func (s *BatchService) insert(ctx context.Context, tx repositories.MessageRepository, in models.MessageInput, comp *Compensations) error {
	bottleID, messageID := *in.BottleID, *in.MessageID

	hasPicture := false
	if in.Image != nil {
		data, err := base64.StdEncoding.DecodeString(*in.Image)
		if err != nil {
			return problem.NewBadRequest(fmt.Sprintf("img of message %d is not valid base64", messageID),
				problem.InvalidParam{Name: "img", Reason: err.Error()})
		}
		undo, err := s.images.Write(bottleID, messageID, data)
		if err != nil {
			// the row is still stored, without picture
			log.Printf("[batch] image write failed bottle=%d message=%d: %v", bottleID, messageID, err)
		} else {
			hasPicture = true
			comp.Add(undo)
		}
	}

	n, err := tx.InsertMessage(ctx, in.ToModel(hasPicture))
	if err != nil {
		return storeProblem(err, "statement execution failed due to invalid message data")
	}
	if n == 0 {
		return problem.NewBadRequest(fmt.Sprintf("a message with the ID %d in the selected bottle (ID = %d) already exists", messageID, bottleID))
	}
	return nil
}
