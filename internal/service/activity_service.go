package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/boticaplus/backend/internal/domain"
	"github.com/boticaplus/backend/internal/repository"
)

// ActivityService records and lists the append-only audit trail.
type ActivityService struct {
	repo repository.ActivityRepository
	now  func() time.Time
}

func NewActivityService(repo repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo, now: time.Now}
}

// Record appends an audit entry. Failures are logged but never propagated:
// an audit write must not fail the action it describes.
func (s *ActivityService) Record(ctx context.Context, actor, action, entity, detail string) {
	entry := domain.ActivityLog{
		ID:        uuid.NewString(),
		Actor:     actor,
		Action:    action,
		Entity:    entity,
		Detail:    detail,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.InsertActivity(ctx, entry); err != nil {
		log.Error().Err(err).
			Str("actor", actor).
			Str("action", action).
			Msg("failed to record activity")
	}
}

func (s *ActivityService) List(ctx context.Context, limit, offset int) ([]domain.ActivityLog, int, error) {
	return s.repo.ListActivity(ctx, limit, offset)
}
