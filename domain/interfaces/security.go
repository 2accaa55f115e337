package interfaces

import (
	"context"

	"account_connector/domain/entities"
)

// ActionGuard decides whether a UI step may be performed
type ActionGuard interface {
	// Allow reports whether the step may run
	Allow(ctx context.Context, action entities.UIAction, selector entities.Selector) bool

	// RiskLevel returns "low", "medium" or "high"
	RiskLevel(action entities.UIAction, selector entities.Selector) string
}
