package tombola

import (
	"context"
	"errors"
	"strings"

	"tombola/internal/metrics"
	"tombola/internal/models"
)

// RegisterInput carries the participation form.
type RegisterInput struct {
	QRCodeID    string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
}

func (in RegisterInput) normalize() RegisterInput {
	return RegisterInput{
		QRCodeID:    strings.TrimSpace(in.QRCodeID),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Email:       strings.TrimSpace(in.Email),
		PhoneNumber: trimPtr(in.PhoneNumber),
	}
}

// Register admits a participant through an unused QR code. The QR code check,
// the participant insert and the QR code update commit together or not at all.
func (s *Service) Register(ctx context.Context, in RegisterInput) (models.Participant, error) {
	p, err := s.register(ctx, in)
	metrics.Registrations.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return models.Participant{}, err
	}
	s.publish(EventParticipantRegistered, p)
	return p, nil
}

func (s *Service) register(ctx context.Context, in RegisterInput) (models.Participant, error) {
	in = in.normalize()
	if in.QRCodeID == "" || in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return models.Participant{}, newError(ErrValidation, CodeValidation,
			"firstName, lastName, email and qrCodeId are required")
	}

	var out models.Participant
	err := s.store.Tx(ctx, func(tx Store) error {
		qr, err := tx.LockQRCode(ctx, in.QRCodeID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return newError(ErrNotFound, CodeQRCodeNotFound, "invalid QR code")
			}
			return err
		}
		if qr.IsUsed || qr.Participant != nil {
			return alreadyUsed()
		}

		now := s.now()
		p := models.Participant{
			ID:          s.newID(),
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			Email:       in.Email,
			PhoneNumber: in.PhoneNumber,
			QRCodeID:    qr.ID,
			CreatedAt:   now,
		}
		if err := tx.CreateParticipant(ctx, &p); err != nil {
			if errors.Is(err, ErrConflict) {
				return alreadyUsed()
			}
			return err
		}
		if err := tx.MarkQRCodeUsed(ctx, qr.ID, now); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return models.Participant{}, err
	}
	return out, nil
}

func alreadyUsed() *Error {
	return newError(ErrConflict, CodeQRCodeAlreadyUsed, "this QR code has already been used")
}
