package ports

import (
	"context"

	"github.com/bnema/slotctl/internal/domain"
)

type SessionRepository interface {
	GetByID(ctx context.Context, id domain.SessionID) (domain.SessionRecord, error)
	List(ctx context.Context) ([]domain.SessionRecord, error)
	Save(ctx context.Context, record domain.SessionRecord) error
}

type AutomationRepository interface {
	GetByID(ctx context.Context, id domain.AutomationID) (domain.Automation, error)
	List(ctx context.Context) ([]domain.Automation, error)
	Save(ctx context.Context, automation domain.Automation) error
	Delete(ctx context.Context, id domain.AutomationID) error
}
