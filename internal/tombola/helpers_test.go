package tombola_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"tombola/internal/models"
	"tombola/internal/storage"
	"tombola/internal/tombola"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []tombola.Event
}

func (r *recorder) Notify(e tombola.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	svc    *tombola.Service
	store  *storage.MemoryStore
	events *recorder
}

// newFixture builds a Service over a memory store with a ticking clock,
// sequential ids and a seeded random source.
func newFixture(t *testing.T, opts ...tombola.Option) *fixture {
	t.Helper()
	var (
		mu    sync.Mutex
		clock = time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC)
		seq   int
	)
	f := &fixture{store: storage.NewMemoryStore(), events: &recorder{}}
	base := []tombola.Option{
		tombola.WithClock(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			clock = clock.Add(time.Second)
			return clock
		}),
		tombola.WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return fmt.Sprintf("id-%04d", seq)
		}),
		tombola.WithPicker(rand.New(rand.NewPCG(1, 2))),
		tombola.WithNotifier(f.events),
	}
	svc, err := tombola.NewService(f.store, append(base, opts...)...)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *fixture) qrCode(t *testing.T) string {
	t.Helper()
	qrs, err := f.svc.CreateQRCodes(context.Background(), 1)
	require.NoError(t, err)
	return qrs[0].ID
}

func (f *fixture) participant(t *testing.T, first string) models.Participant {
	t.Helper()
	p, err := f.svc.Register(context.Background(), tombola.RegisterInput{
		QRCodeID:  f.qrCode(t),
		FirstName: first,
		LastName:  "Doe",
		Email:     first + "@example.org",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) prize(t *testing.T, name string) models.Prize {
	t.Helper()
	p, err := f.svc.CreatePrize(context.Background(), tombola.PrizeInput{Name: name})
	require.NoError(t, err)
	return p
}

// requireCode asserts err is a *tombola.Error of the given kind and code.
func requireCode(t *testing.T, err error, kind error, code string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	var te *tombola.Error
	require.True(t, errors.As(err, &te), "expected *tombola.Error, got %T", err)
	require.Equal(t, code, te.Code)
}

// looseStore runs Tx bodies without holding the store mutex, so concurrent
// transactions interleave the way separate database connections do.
type looseStore struct {
	*storage.MemoryStore
}

func (s looseStore) Tx(_ context.Context, fn func(tx tombola.Store) error) error {
	return fn(s)
}

// staleWinnersStore reports no winners from ListWinners, as a snapshot taken
// before a concurrent draw committed would. With hideWinner set the per
// participant lookup misses too, leaving only the store's unique constraint.
type staleWinnersStore struct {
	tombola.Store
	hideWinner bool
}

func (s staleWinnersStore) Tx(ctx context.Context, fn func(tx tombola.Store) error) error {
	return s.Store.Tx(ctx, func(tx tombola.Store) error {
		return fn(staleWinnersStore{Store: tx, hideWinner: s.hideWinner})
	})
}

func (staleWinnersStore) ListWinners(context.Context) ([]models.Winner, error) {
	return nil, nil
}

func (s staleWinnersStore) FindWinnerByParticipant(ctx context.Context, participantID string) (models.Winner, error) {
	if s.hideWinner {
		return models.Winner{}, tombola.ErrNotFound
	}
	return s.Store.FindWinnerByParticipant(ctx, participantID)
}

// countingStore counts the list queries issued through it.
type countingStore struct {
	tombola.Store
	mu    *sync.Mutex
	calls map[string]int
}

func newCountingStore(inner tombola.Store) countingStore {
	return countingStore{Store: inner, mu: &sync.Mutex{}, calls: map[string]int{}}
}

func (s countingStore) count(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name]++
}

func (s countingStore) Tx(ctx context.Context, fn func(tx tombola.Store) error) error {
	return s.Store.Tx(ctx, func(tx tombola.Store) error {
		return fn(countingStore{Store: tx, mu: s.mu, calls: s.calls})
	})
}

func (s countingStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	s.count("ListParticipants")
	return s.Store.ListParticipants(ctx)
}

func (s countingStore) ListWinners(ctx context.Context) ([]models.Winner, error) {
	s.count("ListWinners")
	return s.Store.ListWinners(ctx)
}
