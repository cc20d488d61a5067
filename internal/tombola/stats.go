package tombola

import (
	"context"

	"tombola/internal/metrics"
)

// Stats summarizes the raffle.
type Stats struct {
	QRCodes         int `json:"qrCodes"`
	UsedQRCodes     int `json:"usedQrCodes"`
	Participants    int `json:"participants"`
	Winners         int `json:"winners"`
	Eligible        int `json:"eligible"`
	AvailablePrizes int `json:"availablePrizes"`
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.store.Tx(ctx, func(tx Store) error {
		qrs, err := tx.ListQRCodes(ctx)
		if err != nil {
			return err
		}
		st.QRCodes = len(qrs)
		for _, qr := range qrs {
			if qr.IsUsed {
				st.UsedQRCodes++
			}
		}

		participants, err := tx.ListParticipants(ctx)
		if err != nil {
			return err
		}
		winners, err := tx.ListWinners(ctx)
		if err != nil {
			return err
		}
		st.Participants = len(participants)
		st.Winners = len(winners)
		st.Eligible = len(withoutWinners(participants, winners))

		prizes, err := tx.ListPrizes(ctx, true)
		if err != nil {
			return err
		}
		st.AvailablePrizes = len(prizes)
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	metrics.EligiblePool.Set(float64(st.Eligible))
	return st, nil
}

// PublishStats computes Stats and sends them to the notifier.
func (s *Service) PublishStats(ctx context.Context) (Stats, error) {
	st, err := s.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	s.publish(EventStats, st)
	return st, nil
}
