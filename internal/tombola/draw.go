package tombola

import (
	"context"
	"errors"
	"strings"

	"tombola/internal/metrics"
	"tombola/internal/models"
)

// DrawInput selects the prize to award. DrawnBy is the authenticated admin.
type DrawInput struct {
	PrizeID string
	DrawnBy string
}

// Draw picks one participant without a prize, uniformly at random, and
// records them as the winner of the given prize. The prize quantity is left
// untouched.
func (s *Service) Draw(ctx context.Context, in DrawInput) (models.Winner, error) {
	w, err := s.draw(ctx, in)
	metrics.Draws.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return models.Winner{}, err
	}
	s.publish(EventWinnerDrawn, w)
	return w, nil
}

func (s *Service) draw(ctx context.Context, in DrawInput) (models.Winner, error) {
	prizeID := strings.TrimSpace(in.PrizeID)
	if prizeID == "" {
		return models.Winner{}, newError(ErrValidation, CodeValidation, "prizeId is required")
	}

	var out models.Winner
	err := s.store.Tx(ctx, func(tx Store) error {
		eligible, err := eligibleParticipants(ctx, tx)
		if err != nil {
			return err
		}
		metrics.EligiblePool.Set(float64(len(eligible)))
		if len(eligible) == 0 {
			return newError(ErrNoEligibleParticipants, CodeNoEligibleParticipants,
				"every participant has already won a prize")
		}

		picked := eligible[s.picker.IntN(len(eligible))]

		participant, err := tx.GetParticipant(ctx, picked.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return newError(ErrNotFound, CodeParticipantNotFound, "participant not found")
			}
			return err
		}
		prize, err := tx.GetPrize(ctx, prizeID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return newError(ErrNotFound, CodePrizeNotFound, "prize not found")
			}
			return err
		}

		// The eligible set came from a snapshot; re-check before the insert.
		_, err = tx.FindWinnerByParticipant(ctx, participant.ID)
		switch {
		case err == nil:
			return alreadyWon()
		case !errors.Is(err, ErrNotFound):
			return err
		}

		w := models.Winner{
			ID:            s.newID(),
			ParticipantID: participant.ID,
			PrizeID:       prize.ID,
			DrawnBy:       strings.TrimSpace(in.DrawnBy),
			CreatedAt:     s.now(),
		}
		if err := tx.CreateWinner(ctx, &w); err != nil {
			if errors.Is(err, ErrConflict) {
				return alreadyWon()
			}
			return err
		}
		w.Participant = &participant
		w.Prize = &prize
		out = w
		return nil
	})
	if err != nil {
		return models.Winner{}, err
	}
	return out, nil
}

// CancelDraw deletes a winner record, which puts the participant back into
// the eligible pool.
func (s *Service) CancelDraw(ctx context.Context, winnerID string) error {
	winnerID = strings.TrimSpace(winnerID)
	if winnerID == "" {
		return newError(ErrValidation, CodeValidation, "winner id is required")
	}
	if err := s.store.DeleteWinner(ctx, winnerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return newError(ErrNotFound, CodeWinnerNotFound, "winner not found")
		}
		return err
	}
	metrics.CancelledDraws.Inc()
	s.publish(EventDrawCancelled, map[string]string{"id": winnerID})
	return nil
}

// GetWinner returns a winner with its participant and prize.
func (s *Service) GetWinner(ctx context.Context, id string) (models.Winner, error) {
	w, err := s.store.GetWinner(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Winner{}, newError(ErrNotFound, CodeWinnerNotFound, "winner not found")
		}
		return models.Winner{}, err
	}
	return w, nil
}

// ListWinners returns all winners, newest first.
func (s *Service) ListWinners(ctx context.Context) ([]models.Winner, error) {
	return s.store.ListWinners(ctx)
}

// ListParticipants returns all participants, newest first.
func (s *Service) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	return s.store.ListParticipants(ctx)
}

// eligibleParticipants is the set difference participants \ winners, in the
// store's enumeration order.
func eligibleParticipants(ctx context.Context, st Store) ([]models.Participant, error) {
	participants, err := st.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	winners, err := st.ListWinners(ctx)
	if err != nil {
		return nil, err
	}
	return withoutWinners(participants, winners), nil
}

// withoutWinners keeps the participants that have no winner record.
func withoutWinners(participants []models.Participant, winners []models.Winner) []models.Participant {
	won := make(map[string]struct{}, len(winners))
	for _, w := range winners {
		won[w.ParticipantID] = struct{}{}
	}

	eligible := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if _, ok := won[p.ID]; !ok {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

func alreadyWon() *Error {
	return newError(ErrConflict, CodeAlreadyWon, "this participant has already won a prize")
}
