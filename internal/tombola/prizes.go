package tombola

import (
	"context"
	"errors"
	"strings"

	"tombola/internal/models"
)

// PrizeInput is the editable part of a prize. A nil or non-positive quantity
// is stored as 1.
type PrizeInput struct {
	Name        string
	Description *string
	Quantity    *int
}

func (in PrizeInput) validate() (name string, quantity int, err error) {
	name = strings.TrimSpace(in.Name)
	if name == "" {
		return "", 0, newError(ErrValidation, CodeValidation, "prize name is required")
	}
	quantity = 1
	if in.Quantity != nil && *in.Quantity > 0 {
		quantity = *in.Quantity
	}
	return name, quantity, nil
}

func (s *Service) CreatePrize(ctx context.Context, in PrizeInput) (models.Prize, error) {
	name, quantity, err := in.validate()
	if err != nil {
		return models.Prize{}, err
	}
	now := s.now()
	p := models.Prize{
		ID:          s.newID(),
		Name:        name,
		Description: trimPtr(in.Description),
		Quantity:    quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreatePrize(ctx, &p); err != nil {
		return models.Prize{}, err
	}
	return p, nil
}

func (s *Service) GetPrize(ctx context.Context, id string) (models.Prize, error) {
	p, err := s.store.GetPrize(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.Prize{}, prizeErr(err)
	}
	return p, nil
}

// UpdatePrize replaces name, description and quantity of an existing prize.
func (s *Service) UpdatePrize(ctx context.Context, id string, in PrizeInput) (models.Prize, error) {
	name, quantity, err := in.validate()
	if err != nil {
		return models.Prize{}, err
	}

	var out models.Prize
	err = s.store.Tx(ctx, func(tx Store) error {
		p, err := tx.GetPrize(ctx, strings.TrimSpace(id))
		if err != nil {
			return prizeErr(err)
		}
		p.Name = name
		p.Description = trimPtr(in.Description)
		p.Quantity = quantity
		p.UpdatedAt = s.now()
		if err := tx.UpdatePrize(ctx, &p); err != nil {
			return prizeErr(err)
		}
		out = p
		return nil
	})
	if err != nil {
		return models.Prize{}, err
	}
	return out, nil
}

// DeletePrize removes a prize nobody has won yet.
func (s *Service) DeletePrize(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	return s.store.Tx(ctx, func(tx Store) error {
		if _, err := tx.GetPrize(ctx, id); err != nil {
			return prizeErr(err)
		}
		n, err := tx.CountWinnersForPrize(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return newError(ErrConflict, CodePrizeHasWinners, "this prize has already been won; cancel the draws first")
		}
		return prizeErr(tx.DeletePrize(ctx, id))
	})
}

// ListPrizes returns prizes that can still be drawn (quantity > 0), newest first.
func (s *Service) ListPrizes(ctx context.Context) ([]models.Prize, error) {
	return s.store.ListPrizes(ctx, true)
}

func prizeErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return newError(ErrNotFound, CodePrizeNotFound, "prize not found")
	}
	return err
}
