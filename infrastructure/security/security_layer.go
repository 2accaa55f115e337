package security

import (
	"context"
	"strings"

	"account_connector/domain/entities"
	"account_connector/domain/interfaces"

	"github.com/sirupsen/logrus"
)

type SecurityLayer struct {
	logger          *logrus.Logger
	allowDestroying bool
}

func NewSecurityLayer(logger *logrus.Logger, allowDestroying bool) *SecurityLayer {
	return &SecurityLayer{
		logger:          logger,
		allowDestroying: allowDestroying,
	}
}

var destructiveKeywords = []string{
	"delete", "remove", "supprimer", "suppression",
	"retirer", "clear", "effacer", "reset",
}

var credentialActions = map[entities.UIAction]bool{
	entities.UIEmailInput:    true,
	entities.UIPasswordInput: true,
}

func (s *SecurityLayer) Allow(ctx context.Context, action entities.UIAction, selector entities.Selector) bool {
	if !s.IsDestructiveAction(action, selector) {
		return true
	}

	fields := logrus.Fields{
		"action":   action,
		"selector": selector.String(),
	}
	if !s.allowDestroying {
		s.logger.WithFields(fields).Warn("Destructive action blocked")
		return false
	}

	s.logger.WithFields(fields).Info("Destructive action allowed")
	return true
}

func (s *SecurityLayer) IsDestructiveAction(action entities.UIAction, selector entities.Selector) bool {
	switch action {
	case entities.UIFirstAccountEntry, entities.UIConfirmDelete, entities.UIDeleteAccountLink:
		return true
	}

	lowerAction := strings.ToLower(string(action))
	lowerName := strings.ToLower(selector.Name)
	for _, keyword := range destructiveKeywords {
		if strings.Contains(lowerAction, keyword) || strings.Contains(lowerName, keyword) {
			return true
		}
	}

	return false
}

func (s *SecurityLayer) RiskLevel(action entities.UIAction, selector entities.Selector) string {
	if s.IsDestructiveAction(action, selector) {
		return "high"
	}

	if credentialActions[action] {
		// Typing credentials is medium risk
		return "medium"
	}

	return "low"
}

// Ensure SecurityLayer implements ActionGuard interface
var _ interfaces.ActionGuard = (*SecurityLayer)(nil)
