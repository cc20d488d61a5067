package storage

import (
	"context"
	"testing"

	"tombola/internal/models"
	"tombola/internal/tombola"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGormStore connects to TEST_DB_* and truncates the raffle tables.
func testGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, ok, err := ConnectTestingDatabase()
	if !ok {
		t.Skip("TEST_DB_HOST not set")
	}
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Exec("TRUNCATE winners, participants, prizes, qr_codes").Error)
	return NewGormStore(db)
}

func TestGormStoreRegistrationFlow(t *testing.T) {
	s := testGormStore(t)
	ctx := context.Background()

	qrID := uuid.NewString()
	require.NoError(t, s.CreateQRCode(ctx, &models.QRCode{ID: qrID}))
	assert.ErrorIs(t, s.CreateQRCode(ctx, &models.QRCode{ID: qrID}), tombola.ErrConflict)

	err := s.Tx(ctx, func(tx tombola.Store) error {
		qr, err := tx.LockQRCode(ctx, qrID)
		require.NoError(t, err)
		assert.Nil(t, qr.Participant)
		require.NoError(t, tx.CreateParticipant(ctx, &models.Participant{
			ID: uuid.NewString(), FirstName: "Ada", LastName: "L", Email: "ada@example.org", QRCodeID: qrID,
		}))
		return nil
	})
	require.NoError(t, err)

	qr, err := s.GetQRCode(ctx, qrID)
	require.NoError(t, err)
	require.NotNil(t, qr.Participant)

	err = s.CreateParticipant(ctx, &models.Participant{
		ID: uuid.NewString(), FirstName: "Bob", LastName: "B", Email: "bob@example.org", QRCodeID: qrID,
	})
	assert.ErrorIs(t, err, tombola.ErrConflict)
}

func TestGormStoreWinners(t *testing.T) {
	s := testGormStore(t)
	ctx := context.Background()

	qrID, pID, prizeID := uuid.NewString(), uuid.NewString(), uuid.NewString()
	require.NoError(t, s.CreateQRCode(ctx, &models.QRCode{ID: qrID}))
	require.NoError(t, s.CreateParticipant(ctx, &models.Participant{ID: pID, FirstName: "A", LastName: "B", Email: "a@b.c", QRCodeID: qrID}))
	require.NoError(t, s.CreatePrize(ctx, &models.Prize{ID: prizeID, Name: "Mug", Quantity: 1}))

	wID := uuid.NewString()
	require.NoError(t, s.CreateWinner(ctx, &models.Winner{ID: wID, ParticipantID: pID, PrizeID: prizeID}))
	err := s.CreateWinner(ctx, &models.Winner{ID: uuid.NewString(), ParticipantID: pID, PrizeID: prizeID})
	assert.ErrorIs(t, err, tombola.ErrConflict)

	w, err := s.GetWinner(ctx, wID)
	require.NoError(t, err)
	require.NotNil(t, w.Participant)
	require.NotNil(t, w.Prize)

	require.NoError(t, s.DeleteWinner(ctx, wID))
	assert.ErrorIs(t, s.DeleteWinner(ctx, wID), tombola.ErrNotFound)
}
