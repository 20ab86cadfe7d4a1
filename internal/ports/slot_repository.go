package ports

import (
	"context"

	"github.com/bnema/slotctl/internal/domain"
)

type SlotStateRepository interface {
	Load(ctx context.Context) (domain.SlotState, error)
	Save(ctx context.Context, state domain.SlotState) error
}

type QueueRepository interface {
	List(ctx context.Context) ([]domain.QueuedSession, error)
	Upsert(ctx context.Context, entry domain.QueuedSession) error
	Remove(ctx context.Context, id domain.SessionID) error
}
