package services

import (
	"context"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/util"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/repositories"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
)

// MessageService answers the read operations. A nil node with a nil error
// means there is nothing to return.
type MessageService struct {
	repo repositories.MessageRepository
}

func NewMessageService(repo repositories.MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

func (s *MessageService) BottleInfo(ctx context.Context, bottleID int64) (tree.Node, error) {
	info, err := s.repo.GetBottleInfo(ctx, bottleID)
	if err != nil {
		return nil, storeProblem(err, "statement execution failed due to an invalid bottle ID")
	}
	if info == nil {
		return nil, nil
	}
	return util.ToBottleTree(info), nil
}

func (s *MessageService) ListMessages(ctx context.Context, bottleID int64, params models.ListMessagesParams, urls util.URLBuilder) (tree.Node, error) {
	msgs, err := s.repo.ListMessages(ctx, bottleID, params)
	if err != nil {
		return nil, storeProblem(err, "statement execution failed due to an invalid bottle ID or limit/offset")
	}
	if len(msgs) == 0 {
		return nil, nil
	}
	return util.ToMessageList(msgs, urls, params.DeleteFilter()), nil
}

func (s *MessageService) Message(ctx context.Context, bottleID, messageID int64, urls util.URLBuilder) (tree.Node, error) {
	m, err := s.repo.GetMessage(ctx, bottleID, messageID)
	if err != nil {
		return nil, storeProblem(err, "statement execution failed due to an invalid bottle ID or message ID")
	}
	if m == nil {
		return nil, nil
	}
	return util.ToMessageTree(*m, urls, false), nil
}

// Health reports whether the store answers.
func (s *MessageService) Health(ctx context.Context) models.Health {
	if err := s.repo.Ping(ctx); err != nil {
		return models.Health{Status: "degraded", Database: err.Error()}
	}
	return models.Health{Status: "ok", Database: "ok"}
}
