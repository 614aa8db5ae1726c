package gamification

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskhive/taskhive/internal/pkg/logger"
)

// UserStore is the slice of the user repository the calculator needs.
// The auth feature owns the users collection; routes wiring provides an
// adapter to avoid an import cycle.
type UserStore interface {
	GetGamification(ctx context.Context, userID primitive.ObjectID) (*Gamification, error)
	SaveGamification(ctx context.Context, userID primitive.ObjectID, g *Gamification) error
}

type Service struct {
	users UserStore
	log   *logger.Logger
}

func NewService(users UserStore, log *logger.Logger) *Service {
	return &Service{users: users, log: log}
}

// AwardCreation grants the flat task-creation XP to the creator.
func (s *Service) AwardCreation(ctx context.Context, userID primitive.ObjectID) (Result, error) {
	return s.award(ctx, userID, CreationAward, false)
}

// AwardCompletion grants priority-based XP for a task that just
// transitioned into completed, and records streak activity.
func (s *Service) AwardCompletion(ctx context.Context, userID primitive.ObjectID, priority string) (Result, error) {
	return s.award(ctx, userID, CompletionAward(priority), true)
}

func (s *Service) award(ctx context.Context, userID primitive.ObjectID, points int, touchStreak bool) (Result, error) {
	g, err := s.users.GetGamification(ctx, userID)
	if err != nil {
		return Result{}, err
	}

	result := AddXP(g, points)
	if touchStreak {
		TouchStreak(g, time.Now())
	}

	if err := s.users.SaveGamification(ctx, userID, g); err != nil {
		return Result{}, err
	}

	if result.LevelUp {
		s.log.Info("user %s reached level %d", userID.Hex(), result.NewLevel)
	}

	return result, nil
}
