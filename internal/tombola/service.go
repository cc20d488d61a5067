package tombola

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"tombola/internal/metrics"

	"github.com/google/uuid"
)

// Picker draws a uniformly distributed integer in [0, n).
// *rand.Rand from math/rand/v2 satisfies it, which lets tests use a seeded source.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// lockedPicker serializes a Picker that is not safe for concurrent use,
// such as a seeded *rand.Rand.
type lockedPicker struct {
	mu sync.Mutex
	p  Picker
}

func (l *lockedPicker) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.IntN(n)
}

// Service implements the admission gate, the prize ledger and the draw engine
// on top of a Store.
type Service struct {
	store    Store
	picker   Picker
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

// Option configures the Service.
type Option func(*Service)

// WithPicker sets the random source used by Draw. Draws may run
// concurrently, so p is called under a mutex.
func WithPicker(p Picker) Option {
	return func(s *Service) {
		if p != nil {
			s.picker = &lockedPicker{p: p}
		}
	}
}

// WithNotifier sets the receiver of committed state changes.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the uuid v4 generator used for new rows.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewService constructs a Service.
func NewService(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("tombola: nil store")
	}
	s := &Service{
		store:    store,
		picker:   globalPicker{},
		notifier: nopNotifier{},
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *Service) publish(eventType string, data interface{}) {
	s.notifier.Notify(Event{Type: eventType, Data: data, At: s.now()})
}

// outcome maps an error to a metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrValidation):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, ErrNoEligibleParticipants):
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeError
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
