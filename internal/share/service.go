// Package share implements the abstract-sharing core: validate the request,
// render and dispatch the notification email, and record the attempt.
package share

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"scishare/internal/config"
	"scishare/internal/email"
	"scishare/internal/models"
	"scishare/internal/validation"
)

// Validation and delivery failures as values, so callers can tell "your
// input was rejected" apart from "your input was fine but the email failed".
var (
	ErrInvalidRecipient = errors.New("recipient email address is not valid")
	ErrMessageTooLong   = errors.New("message must be 1000 characters or fewer")
	ErrDeliveryFailed   = errors.New("failed to send email")
)

// Mailer is the outbound email capability. Implemented by email.Service;
// tests substitute a deterministic fake.
type Mailer interface {
	Send(to, subject, htmlBody, textBody string) error
}

// Store is the slice of the database layer the service needs: abstract
// lookup and append-only share recording.
type Store interface {
	GetAbstractByID(ctx context.Context, id uuid.UUID) (*models.Abstract, error)
	CreateSharedAbstract(ctx context.Context, share *models.SharedAbstract) error
}

// Service shares abstracts by email and records every attempt.
type Service struct {
	store     Store
	mailer    Mailer
	templates *email.Templates
}

// NewService creates a new share service.
func NewService(store Store, mailer Mailer, cfg *config.Config) *Service {
	return &Service{
		store:     store,
		mailer:    mailer,
		templates: email.NewTemplates(cfg),
	}
}

// Share validates the request, emails the abstract to the recipient, and
// records the attempt.
//
// The contract: once inputs are valid and the abstract exists, exactly one
// history row is written no matter what the email channel does. A failed
// send still returns the recorded attempt, alongside ErrDeliveryFailed.
// Validation and lookup failures happen before any side effect and write
// nothing.
func (s *Service) Share(ctx context.Context, user *models.User, abstractID uuid.UUID, recipientEmail, message string) (*models.SharedAbstract, error) {
	recipientEmail = validation.NormalizeEmail(recipientEmail)

	if !validation.ValidateEmail(recipientEmail) {
		return nil, ErrInvalidRecipient
	}
	if valid, _ := validation.ValidateShareMessage(message); !valid {
		return nil, ErrMessageTooLong
	}

	abstract, err := s.store.GetAbstractByID(ctx, abstractID)
	if err != nil {
		return nil, err
	}

	subject, htmlBody, textBody := s.templates.SharedAbstract(user.DisplayName(), abstract, message)

	sendErr := s.mailer.Send(recipientEmail, subject, htmlBody, textBody)
	if sendErr != nil {
		slog.Error("share email delivery failed",
			"abstract_id", abstractID, "user_id", user.ID, "error", sendErr)
	}

	record := &models.SharedAbstract{
		UserID:                user.ID,
		AbstractID:            abstract.ID,
		RecipientEmail:        recipientEmail,
		Message:               message,
		EmailSentSuccessfully: sendErr == nil,
	}
	if err := s.store.CreateSharedAbstract(ctx, record); err != nil {
		return nil, err
	}

	if sendErr != nil {
		return record, ErrDeliveryFailed
	}
	return record, nil
}
