package connector

import (
	"context"

	"account_connector/domain/entities"
)

// deletionSteps are clicked in order to remove the first saved account
var deletionSteps = []entities.UIAction{
	entities.UIDeleteAccountLink,
	entities.UIFirstAccountEntry,
	entities.UIConfirmDelete,
}

// deleteAccount - removes the first saved account from the account chooser.
// The page stays open; the login attempt that owns it closes it.
func (c *Connector) deleteAccount(ctx context.Context, s *step) error {
	s.transition(entities.StateDeletingAccount)

	for _, action := range deletionSteps {
		if err := s.requireVisible(ctx, action); err != nil {
			return err
		}
		if err := s.clickAndWait(ctx, action); err != nil {
			return err
		}
	}

	s.log.Info("Stale account deleted")
	return nil
}
