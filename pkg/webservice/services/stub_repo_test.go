package services_test

import (
	"context"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/repositories"
)

// stubRepo implements repositories.MessageRepository for testing. Nil
// function fields return zero values.
type stubRepo struct {
	getBottleInfo  func(ctx context.Context, bottleID int64) (*models.BottleInfo, error)
	listMessages   func(ctx context.Context, bottleID int64, params models.ListMessagesParams) ([]models.Message, error)
	getMessage     func(ctx context.Context, bottleID, messageID int64) (*models.Message, error)
	insertMessage  func(ctx context.Context, m *models.Message) (int64, error)
	markDeleted    func(ctx context.Context, bottleID, messageID int64, date string) (int64, error)
	listImageFlags func(ctx context.Context, bottleID int64) ([]models.ImageFlag, error)

	// commitErr is returned after fn succeeded, as a failed commit would.
	commitErr error
	ping      error
	calls     int
}

var _ repositories.MessageRepository = (*stubRepo)(nil)

func (s *stubRepo) GetBottleInfo(ctx context.Context, bottleID int64) (*models.BottleInfo, error) {
	s.calls++
	if s.getBottleInfo == nil {
		return nil, nil
	}
	return s.getBottleInfo(ctx, bottleID)
}

func (s *stubRepo) ListMessages(ctx context.Context, bottleID int64, params models.ListMessagesParams) ([]models.Message, error) {
	s.calls++
	if s.listMessages == nil {
		return nil, nil
	}
	return s.listMessages(ctx, bottleID, params)
}

func (s *stubRepo) GetMessage(ctx context.Context, bottleID, messageID int64) (*models.Message, error) {
	s.calls++
	if s.getMessage == nil {
		return nil, nil
	}
	return s.getMessage(ctx, bottleID, messageID)
}

func (s *stubRepo) InsertMessage(ctx context.Context, m *models.Message) (int64, error) {
	s.calls++
	if s.insertMessage == nil {
		return 1, nil
	}
	return s.insertMessage(ctx, m)
}

func (s *stubRepo) MarkDeleted(ctx context.Context, bottleID, messageID int64, date string) (int64, error) {
	s.calls++
	if s.markDeleted == nil {
		return 1, nil
	}
	return s.markDeleted(ctx, bottleID, messageID, date)
}

func (s *stubRepo) ListImageFlags(ctx context.Context, bottleID int64) ([]models.ImageFlag, error) {
	s.calls++
	if s.listImageFlags == nil {
		return nil, nil
	}
	return s.listImageFlags(ctx, bottleID)
}

func (s *stubRepo) Transaction(ctx context.Context, fn func(repo repositories.MessageRepository) error) error {
	s.calls++
	if err := fn(s); err != nil {
		return err
	}
	return s.commitErr
}

func (s *stubRepo) Ping(context.Context) error { return s.ping }
