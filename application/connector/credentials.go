package connector

import (
	"context"
	"errors"
	"fmt"

	"account_connector/domain/entities"
)

// maxPasswordAttempts bounds how often the password is submitted
const maxPasswordAttempts = 3

// enterCredentials - fills the email then submits the password until it is
// accepted or maxPasswordAttempts is reached.
func (c *Connector) enterCredentials(ctx context.Context, s *step) error {
	s.transition(entities.StateLoginAttempted)

	for _, action := range []entities.UIAction{entities.UIEmailInput, entities.UINextButton} {
		if err := s.requireVisible(ctx, action); err != nil {
			return err
		}
	}
	if c.opts.Credentials.Email == "" {
		return &entities.ActionRejectedError{Step: entities.UIEmailInput, Err: errors.New("no email configured")}
	}
	if c.opts.Credentials.Password == "" {
		return &entities.ActionRejectedError{Step: entities.UIPasswordInput, Err: errors.New("no password configured")}
	}

	if err := s.fill(ctx, entities.UIEmailInput, c.opts.Credentials.Email); err != nil {
		return err
	}
	if err := s.clickAndWait(ctx, entities.UINextButton); err != nil {
		return err
	}

	for attempt := 1; attempt <= maxPasswordAttempts; attempt++ {
		// a missing field ends the flow without counting as an attempt
		for _, action := range []entities.UIAction{entities.UIPasswordInput, entities.UINextButton} {
			if err := s.requireVisible(ctx, action); err != nil {
				return err
			}
		}

		if err := s.fill(ctx, entities.UIPasswordInput, c.opts.Credentials.Password); err != nil {
			return err
		}
		if err := s.clickAndWait(ctx, entities.UINextButton); err != nil {
			return err
		}

		rejected, err := s.visible(ctx, entities.UIInvalidPassword)
		if err != nil {
			return err
		}
		if !rejected {
			s.log.WithField("attempt", attempt).Info("Password accepted")
			return nil
		}
		s.log.WithField("attempt", attempt).Warn("Password rejected")
	}

	return fmt.Errorf("%w after %d attempts", entities.ErrInvalidPassword, maxPasswordAttempts)
}
