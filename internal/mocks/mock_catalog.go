package mocks

import (
	"context"

	"github.com/metinatakli/seat-inventory/internal/domain"
)

type MockCatalog struct {
	GetShowInventoryFunc func(ctx context.Context, showID string) (*domain.ShowInventory, error)
}

func (m *MockCatalog) GetShowInventory(ctx context.Context, showID string) (*domain.ShowInventory, error) {
	return m.GetShowInventoryFunc(ctx, showID)
}
