package matcher

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/noelops/secret-santa/internal/logger"
	"github.com/noelops/secret-santa/internal/models"
)

// DefaultMaxAttempts bounds the retry loop. Dead ends get rarer as
// the participant count grows, so 20 attempts makes practical
// failure vanishingly unlikely for any reasonable group.
const DefaultMaxAttempts = 20

// ErrExhausted is returned when every attempt within the bound hit a
// dead end. The caller should abort the run; there is no partial
// result to fall back on.
var ErrExhausted = errors.New("failed to find a valid pairing")

// Driver retries the solver until it produces a pairing or the
// attempt budget runs out.
type Driver struct {
	rng         Rand
	maxAttempts int
	log         *logger.Logger
}

// NewDriver creates a driver. maxAttempts <= 0 falls back to
// DefaultMaxAttempts.
func NewDriver(rng Rand, maxAttempts int, log *logger.Logger) *Driver {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if log == nil {
		log = logger.Get()
	}
	return &Driver{
		rng:         rng,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Run produces a complete pairing for participants, retrying dead-end
// attempts from scratch (fresh shuffle, nothing carried over) up to
// the configured bound.
func (d *Driver) Run(participants []models.Participant) (models.Pairing, error) {
	runID := uuid.New()

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		pairing, err := Solve(d.rng, participants)
		if err == nil {
			d.log.Debug().
				Str("run_id", runID.String()).
				Int("attempt", attempt).
				Int("pairs", len(pairing)).
				Msg("pairing solved")
			return pairing, nil
		}

		if !errors.Is(err, ErrDeadEnd) {
			return nil, err
		}

		d.log.Debug().
			Str("run_id", runID.String()).
			Int("attempt", attempt).
			Msg("dead end, retrying with a fresh shuffle")
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrExhausted, d.maxAttempts)
}
