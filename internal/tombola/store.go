package tombola

import (
	"context"
	"time"

	"tombola/internal/models"
)

// Store is the persistence boundary for raffle state.
//
// Missing rows are reported as ErrNotFound and unique-constraint violations
// as ErrConflict (both may be wrapped). List methods return rows newest first.
type Store interface {
	// Tx runs fn inside a single transaction. Returning an error from fn rolls
	// back every write made through tx.
	Tx(ctx context.Context, fn func(tx Store) error) error

	CreateQRCode(ctx context.Context, qr *models.QRCode) error
	// GetQRCode loads a QR code with its participant, if any.
	GetQRCode(ctx context.Context, id string) (models.QRCode, error)
	// LockQRCode is GetQRCode taking a row lock until the end of the transaction.
	LockQRCode(ctx context.Context, id string) (models.QRCode, error)
	ListQRCodes(ctx context.Context) ([]models.QRCode, error)
	MarkQRCodeUsed(ctx context.Context, id string, at time.Time) error
	DeleteQRCode(ctx context.Context, id string) error

	CreateParticipant(ctx context.Context, p *models.Participant) error
	GetParticipant(ctx context.Context, id string) (models.Participant, error)
	ListParticipants(ctx context.Context) ([]models.Participant, error)

	CreatePrize(ctx context.Context, p *models.Prize) error
	GetPrize(ctx context.Context, id string) (models.Prize, error)
	UpdatePrize(ctx context.Context, p *models.Prize) error
	DeletePrize(ctx context.Context, id string) error
	// ListPrizes returns every prize, or only those with quantity > 0 when availableOnly is set.
	ListPrizes(ctx context.Context, availableOnly bool) ([]models.Prize, error)

	CreateWinner(ctx context.Context, w *models.Winner) error
	// GetWinner loads a winner with its participant and prize.
	GetWinner(ctx context.Context, id string) (models.Winner, error)
	FindWinnerByParticipant(ctx context.Context, participantID string) (models.Winner, error)
	CountWinnersForPrize(ctx context.Context, prizeID string) (int64, error)
	// ListWinners returns winners with their participant and prize.
	ListWinners(ctx context.Context) ([]models.Winner, error)
	DeleteWinner(ctx context.Context, id string) error
}
