package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tombola/internal/models"
	"tombola/internal/tombola"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the Postgres implementation of tombola.Store.
type GormStore struct {
	db *gorm.DB
}

var _ tombola.Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Tx(ctx context.Context, fn func(tx tombola.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) CreateQRCode(ctx context.Context, qr *models.QRCode) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(qr).Error)
}

func (s *GormStore) GetQRCode(ctx context.Context, id string) (models.QRCode, error) {
	var qr models.QRCode
	err := s.db.WithContext(ctx).Preload("Participant").First(&qr, "id = ?", id).Error
	return qr, translate(err)
}

func (s *GormStore) LockQRCode(ctx context.Context, id string) (models.QRCode, error) {
	var qr models.QRCode
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Participant").
		First(&qr, "id = ?", id).Error
	return qr, translate(err)
}

func (s *GormStore) ListQRCodes(ctx context.Context) ([]models.QRCode, error) {
	var out []models.QRCode
	err := s.db.WithContext(ctx).Preload("Participant").Order("created_at desc, id desc").Find(&out).Error
	return out, translate(err)
}

func (s *GormStore) MarkQRCodeUsed(ctx context.Context, id string, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.QRCode{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_used": true, "used_at": at})
	return affected(res)
}

func (s *GormStore) DeleteQRCode(ctx context.Context, id string) error {
	return affected(s.db.WithContext(ctx).Delete(&models.QRCode{}, "id = ?", id))
}

func (s *GormStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *GormStore) GetParticipant(ctx context.Context, id string) (models.Participant, error) {
	var p models.Participant
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, translate(err)
}

func (s *GormStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	var out []models.Participant
	err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&out).Error
	return out, translate(err)
}

func (s *GormStore) CreatePrize(ctx context.Context, p *models.Prize) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *GormStore) GetPrize(ctx context.Context, id string) (models.Prize, error) {
	var p models.Prize
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, translate(err)
}

func (s *GormStore) UpdatePrize(ctx context.Context, p *models.Prize) error {
	res := s.db.WithContext(ctx).Model(&models.Prize{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"quantity":    p.Quantity,
			"updated_at":  p.UpdatedAt,
		})
	return affected(res)
}

func (s *GormStore) DeletePrize(ctx context.Context, id string) error {
	return affected(s.db.WithContext(ctx).Delete(&models.Prize{}, "id = ?", id))
}

func (s *GormStore) ListPrizes(ctx context.Context, availableOnly bool) ([]models.Prize, error) {
	q := s.db.WithContext(ctx)
	if availableOnly {
		q = q.Where("quantity > 0")
	}
	var out []models.Prize
	err := q.Order("created_at desc, id desc").Find(&out).Error
	return out, translate(err)
}

func (s *GormStore) CreateWinner(ctx context.Context, w *models.Winner) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(w).Error)
}

func (s *GormStore) GetWinner(ctx context.Context, id string) (models.Winner, error) {
	var w models.Winner
	err := s.db.WithContext(ctx).Preload("Participant").Preload("Prize").First(&w, "id = ?", id).Error
	return w, translate(err)
}

func (s *GormStore) FindWinnerByParticipant(ctx context.Context, participantID string) (models.Winner, error) {
	var w models.Winner
	err := s.db.WithContext(ctx).Where("participant_id = ?", participantID).First(&w).Error
	return w, translate(err)
}

func (s *GormStore) CountWinnersForPrize(ctx context.Context, prizeID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Winner{}).Where("prize_id = ?", prizeID).Count(&n).Error
	return n, translate(err)
}

func (s *GormStore) ListWinners(ctx context.Context) ([]models.Winner, error) {
	var out []models.Winner
	err := s.db.WithContext(ctx).Preload("Participant").Preload("Prize").
		Order("created_at desc, id desc").Find(&out).Error
	return out, translate(err)
}

func (s *GormStore) DeleteWinner(ctx context.Context, id string) error {
	return affected(s.db.WithContext(ctx).Delete(&models.Winner{}, "id = ?", id))
}

// translate maps gorm errors onto the tombola sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tombola.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", tombola.ErrConflict, err)
	}
	return fmt.Errorf("storage: %w", err)
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return tombola.ErrNotFound
	}
	return nil
}
