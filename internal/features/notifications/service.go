package notifications

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/pkg/logger"
)

// Service writes notifications on behalf of other features. Failures
// are logged and swallowed; a missed notification never fails the
// operation that triggered it.
type Service struct {
	repo *Repository
	log  *logger.Logger
}

func NewService(repo *Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Notify records one notification, skipping self-notification
func (s *Service) Notify(ctx context.Context, recipient, actor primitive.ObjectID, notifType, message string, taskID, projectID *primitive.ObjectID) {
	if recipient == actor {
		return
	}

	err := s.repo.Create(ctx, &Notification{
		Recipient: recipient,
		Actor:     actor,
		Type:      notifType,
		Message:   message,
		TaskID:    taskID,
		ProjectID: projectID,
	})
	if err != nil {
		s.log.Warn("notifications: failed to notify user %s: %v", recipient.Hex(), err)
	}
}

// NotifyMany fans one message out to several recipients
func (s *Service) NotifyMany(ctx context.Context, recipients []primitive.ObjectID, actor primitive.ObjectID, notifType, message string, taskID, projectID *primitive.ObjectID) {
	batch := make([]Notification, 0, len(recipients))
	seen := make(map[primitive.ObjectID]bool, len(recipients))
	for _, recipient := range recipients {
		if recipient == actor || seen[recipient] {
			continue
		}
		seen[recipient] = true
		batch = append(batch, Notification{
			Recipient: recipient,
			Actor:     actor,
			Type:      notifType,
			Message:   message,
			TaskID:    taskID,
			ProjectID: projectID,
		})
	}

	if err := s.repo.CreateMany(ctx, batch); err != nil {
		s.log.Warn("notifications: failed to notify %d users: %v", len(batch), err)
	}
}
