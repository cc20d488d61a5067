package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"tombola/internal/models"
	"tombola/internal/tombola"
)

type memData struct {
	qrCodes      map[string]models.QRCode
	participants map[string]models.Participant
	prizes       map[string]models.Prize
	winners      map[string]models.Winner
}

func newMemData() *memData {
	return &memData{
		qrCodes:      make(map[string]models.QRCode),
		participants: make(map[string]models.Participant),
		prizes:       make(map[string]models.Prize),
		winners:      make(map[string]models.Winner),
	}
}

func (d *memData) clone() memData {
	c := memData{
		qrCodes:      make(map[string]models.QRCode, len(d.qrCodes)),
		participants: make(map[string]models.Participant, len(d.participants)),
		prizes:       make(map[string]models.Prize, len(d.prizes)),
		winners:      make(map[string]models.Winner, len(d.winners)),
	}
	for k, v := range d.qrCodes {
		c.qrCodes[k] = v
	}
	for k, v := range d.participants {
		c.participants[k] = v
	}
	for k, v := range d.prizes {
		c.prizes[k] = v
	}
	for k, v := range d.winners {
		c.winners[k] = v
	}
	return c
}

// MemoryStore is an in-process tombola.Store. Transactions are serialized
// and roll back by restoring a snapshot.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memData
	inTx bool
}

var _ tombola.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mu: &sync.Mutex{}, data: newMemData()}
}

// lock is a no-op inside Tx, which already holds the mutex.
func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) Tx(ctx context.Context, fn func(tx tombola.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.data.clone()
	tx := &MemoryStore{mu: s.mu, data: s.data, inTx: true}
	if err := fn(tx); err != nil {
		*s.data = snapshot
		return err
	}
	return nil
}

func (s *MemoryStore) CreateQRCode(_ context.Context, qr *models.QRCode) error {
	defer s.lock()()
	if _, ok := s.data.qrCodes[qr.ID]; ok {
		return tombola.ErrConflict
	}
	stored := *qr
	stored.Participant = nil
	s.data.qrCodes[qr.ID] = stored
	return nil
}

func (s *MemoryStore) GetQRCode(_ context.Context, id string) (models.QRCode, error) {
	defer s.lock()()
	return s.qrCode(id)
}

func (s *MemoryStore) LockQRCode(ctx context.Context, id string) (models.QRCode, error) {
	return s.GetQRCode(ctx, id)
}

func (s *MemoryStore) qrCode(id string) (models.QRCode, error) {
	qr, ok := s.data.qrCodes[id]
	if !ok {
		return models.QRCode{}, tombola.ErrNotFound
	}
	for _, p := range s.data.participants {
		if p.QRCodeID == id {
			p := p
			qr.Participant = &p
			break
		}
	}
	return qr, nil
}

func (s *MemoryStore) ListQRCodes(_ context.Context) ([]models.QRCode, error) {
	defer s.lock()()
	out := make([]models.QRCode, 0, len(s.data.qrCodes))
	for id := range s.data.qrCodes {
		qr, _ := s.qrCode(id)
		out = append(out, qr)
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

func (s *MemoryStore) MarkQRCodeUsed(_ context.Context, id string, at time.Time) error {
	defer s.lock()()
	qr, ok := s.data.qrCodes[id]
	if !ok {
		return tombola.ErrNotFound
	}
	qr.IsUsed = true
	qr.UsedAt = &at
	s.data.qrCodes[id] = qr
	return nil
}

func (s *MemoryStore) DeleteQRCode(_ context.Context, id string) error {
	defer s.lock()()
	if _, ok := s.data.qrCodes[id]; !ok {
		return tombola.ErrNotFound
	}
	for _, p := range s.data.participants {
		if p.QRCodeID == id {
			return tombola.ErrConflict
		}
	}
	delete(s.data.qrCodes, id)
	return nil
}

func (s *MemoryStore) CreateParticipant(_ context.Context, p *models.Participant) error {
	defer s.lock()()
	if _, ok := s.data.participants[p.ID]; ok {
		return tombola.ErrConflict
	}
	if _, ok := s.data.qrCodes[p.QRCodeID]; !ok {
		return tombola.ErrConflict
	}
	for _, other := range s.data.participants {
		if other.QRCodeID == p.QRCodeID {
			return tombola.ErrConflict
		}
	}
	s.data.participants[p.ID] = *p
	return nil
}

func (s *MemoryStore) GetParticipant(_ context.Context, id string) (models.Participant, error) {
	defer s.lock()()
	p, ok := s.data.participants[id]
	if !ok {
		return models.Participant{}, tombola.ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) ListParticipants(_ context.Context) ([]models.Participant, error) {
	defer s.lock()()
	out := make([]models.Participant, 0, len(s.data.participants))
	for _, p := range s.data.participants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

func (s *MemoryStore) CreatePrize(_ context.Context, p *models.Prize) error {
	defer s.lock()()
	if _, ok := s.data.prizes[p.ID]; ok {
		return tombola.ErrConflict
	}
	s.data.prizes[p.ID] = *p
	return nil
}

func (s *MemoryStore) GetPrize(_ context.Context, id string) (models.Prize, error) {
	defer s.lock()()
	p, ok := s.data.prizes[id]
	if !ok {
		return models.Prize{}, tombola.ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) UpdatePrize(_ context.Context, p *models.Prize) error {
	defer s.lock()()
	if _, ok := s.data.prizes[p.ID]; !ok {
		return tombola.ErrNotFound
	}
	s.data.prizes[p.ID] = *p
	return nil
}

func (s *MemoryStore) DeletePrize(_ context.Context, id string) error {
	defer s.lock()()
	if _, ok := s.data.prizes[id]; !ok {
		return tombola.ErrNotFound
	}
	for _, w := range s.data.winners {
		if w.PrizeID == id {
			return tombola.ErrConflict
		}
	}
	delete(s.data.prizes, id)
	return nil
}

func (s *MemoryStore) ListPrizes(_ context.Context, availableOnly bool) ([]models.Prize, error) {
	defer s.lock()()
	out := make([]models.Prize, 0, len(s.data.prizes))
	for _, p := range s.data.prizes {
		if availableOnly && p.Quantity <= 0 {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

func (s *MemoryStore) CreateWinner(_ context.Context, w *models.Winner) error {
	defer s.lock()()
	if _, ok := s.data.winners[w.ID]; ok {
		return tombola.ErrConflict
	}
	if _, ok := s.data.participants[w.ParticipantID]; !ok {
		return tombola.ErrConflict
	}
	if _, ok := s.data.prizes[w.PrizeID]; !ok {
		return tombola.ErrConflict
	}
	for _, other := range s.data.winners {
		if other.ParticipantID == w.ParticipantID {
			return tombola.ErrConflict
		}
	}
	stored := *w
	stored.Participant = nil
	stored.Prize = nil
	s.data.winners[w.ID] = stored
	return nil
}

func (s *MemoryStore) GetWinner(_ context.Context, id string) (models.Winner, error) {
	defer s.lock()()
	w, ok := s.data.winners[id]
	if !ok {
		return models.Winner{}, tombola.ErrNotFound
	}
	return s.withRelations(w), nil
}

func (s *MemoryStore) FindWinnerByParticipant(_ context.Context, participantID string) (models.Winner, error) {
	defer s.lock()()
	for _, w := range s.data.winners {
		if w.ParticipantID == participantID {
			return w, nil
		}
	}
	return models.Winner{}, tombola.ErrNotFound
}

func (s *MemoryStore) CountWinnersForPrize(_ context.Context, prizeID string) (int64, error) {
	defer s.lock()()
	var n int64
	for _, w := range s.data.winners {
		if w.PrizeID == prizeID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) ListWinners(_ context.Context) ([]models.Winner, error) {
	defer s.lock()()
	out := make([]models.Winner, 0, len(s.data.winners))
	for _, w := range s.data.winners {
		out = append(out, s.withRelations(w))
	}
	sort.Slice(out, func(i, j int) bool { return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

func (s *MemoryStore) DeleteWinner(_ context.Context, id string) error {
	defer s.lock()()
	if _, ok := s.data.winners[id]; !ok {
		return tombola.ErrNotFound
	}
	delete(s.data.winners, id)
	return nil
}

func (s *MemoryStore) withRelations(w models.Winner) models.Winner {
	if p, ok := s.data.participants[w.ParticipantID]; ok {
		w.Participant = &p
	}
	if pr, ok := s.data.prizes[w.PrizeID]; ok {
		w.Prize = &pr
	}
	return w
}

func newerFirst(a, b time.Time, aID, bID string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return aID > bID
}
