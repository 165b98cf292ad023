// Package matcher assigns secret santa giver/receiver pairs.
//
// A single solve attempt walks the giver list in order and draws
// receivers at random from a shrinking pool. The random path can
// paint itself into a corner (the only receiver left is the giver),
// so attempts are expected to fail occasionally; the Driver retries
// a bounded number of times.
package matcher

import (
	"errors"
	"fmt"

	"github.com/noelops/secret-santa/internal/models"
)

// ErrDeadEnd is returned when the current random path cannot be
// completed: the last receiver in the pool is the current giver.
var ErrDeadEnd = errors.New("hit a dead end while solving")

// Rand is the subset of *math/rand.Rand the solver consumes.
// Tests inject scripted implementations to pin down the draws.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Solve generates one candidate pairing for participants.
//
// The caller must supply at least 2 participants with unique names;
// smaller inputs have no valid self-avoiding pairing and are a
// precondition violation, not a handled case.
//
// The input slice is never mutated. On a dead end the attempt is
// discarded wholesale; no partial pairing is ever returned.
func Solve(rng Rand, participants []models.Participant) (models.Pairing, error) {
	receivers := make([]models.Participant, len(participants))
	copy(receivers, participants)
	rng.Shuffle(len(receivers), func(i, j int) {
		receivers[i], receivers[j] = receivers[j], receivers[i]
	})

	pairs := make(models.Pairing, 0, len(participants))

	for _, giver := range participants {
		for {
			idx := rng.Intn(len(receivers))
			candidate := receivers[idx]

			if candidate.Name == giver.Name {
				if len(receivers) == 1 {
					// Nobody left but the giver themselves. This
					// permutation cannot work; the whole attempt
					// must be redone with a fresh shuffle.
					return nil, ErrDeadEnd
				}
				continue
			}

			pairs = append(pairs, models.Pair{Giver: giver, Receiver: candidate})

			// swap-remove keeps every draw uniform over the live pool
			receivers[idx] = receivers[len(receivers)-1]
			receivers = receivers[:len(receivers)-1]
			break
		}
	}

	// paranoia check: everyone gives once and receives once.
	// A failure here is a bug in the algorithm, not a retryable event.
	if err := pairs.Verify(participants); err != nil {
		panic(fmt.Sprintf("matcher: produced an invalid pairing: %v", err))
	}

	return pairs, nil
}
