package tombola

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tombola/internal/models"
)

// MaxQRCodeBatch bounds CreateQRCodes.
const MaxQRCodeBatch = 500

// ParticipationURL is the page a printed QR code points to.
func ParticipationURL(publicURL, qrCodeID string) string {
	return strings.TrimRight(publicURL, "/") + "/tombola/participation/" + qrCodeID
}

// CreateQRCodes generates count fresh QR codes in one transaction.
func (s *Service) CreateQRCodes(ctx context.Context, count int) ([]models.QRCode, error) {
	if count < 1 || count > MaxQRCodeBatch {
		return nil, newError(ErrValidation, CodeValidation,
			fmt.Sprintf("count must be between 1 and %d", MaxQRCodeBatch))
	}

	out := make([]models.QRCode, 0, count)
	err := s.store.Tx(ctx, func(tx Store) error {
		for i := 0; i < count; i++ {
			qr := models.QRCode{ID: s.newID(), CreatedAt: s.now()}
			if err := tx.CreateQRCode(ctx, &qr); err != nil {
				return err
			}
			out = append(out, qr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateQRCode stores a QR code whose identifier was generated by the caller.
func (s *Service) CreateQRCode(ctx context.Context, id string) (models.QRCode, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.QRCode{}, newError(ErrValidation, CodeValidation, "QR code id is required")
	}
	if len(id) > 64 {
		return models.QRCode{}, newError(ErrValidation, CodeValidation, "QR code id must be at most 64 characters")
	}
	qr := models.QRCode{ID: id, CreatedAt: s.now()}
	if err := s.store.CreateQRCode(ctx, &qr); err != nil {
		if errors.Is(err, ErrConflict) {
			return models.QRCode{}, newError(ErrConflict, CodeQRCodeExists, "this QR code already exists")
		}
		return models.QRCode{}, err
	}
	return qr, nil
}

// GetQRCode returns a QR code with its participant, if any.
func (s *Service) GetQRCode(ctx context.Context, id string) (models.QRCode, error) {
	qr, err := s.store.GetQRCode(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.QRCode{}, qrCodeErr(err)
	}
	return qr, nil
}

func (s *Service) ListQRCodes(ctx context.Context) ([]models.QRCode, error) {
	return s.store.ListQRCodes(ctx)
}

// DeleteQRCode removes a QR code that no participant registered with.
func (s *Service) DeleteQRCode(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	return s.store.Tx(ctx, func(tx Store) error {
		qr, err := tx.LockQRCode(ctx, id)
		if err != nil {
			return qrCodeErr(err)
		}
		if qr.Participant != nil {
			return newError(ErrConflict, CodeQRCodeInUse, "a participant registered with this QR code")
		}
		return qrCodeErr(tx.DeleteQRCode(ctx, id))
	})
}

func qrCodeErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return newError(ErrNotFound, CodeQRCodeNotFound, "QR code not found")
	}
	return err
}
