package matcher

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noelops/secret-santa/internal/models"
)

// scriptedRand replays a fixed sequence of draw indexes and performs
// an identity shuffle, so tests control the solver path exactly.
// Draw values are taken modulo n; the sequence cycles if exhausted.
type scriptedRand struct {
	draws    []int
	pos      int
	shuffles int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.draws[r.pos%len(r.draws)]
	r.pos++
	return v % n
}

func (r *scriptedRand) Shuffle(n int, swap func(i, j int)) {
	r.shuffles++
}

func people(names ...string) []models.Participant {
	out := make([]models.Participant, 0, len(names))
	for _, n := range names {
		out = append(out, models.Participant{Name: n, Email: n + "@example.com"})
	}
	return out
}

func TestSolve_EveryoneGivesAndReceivesOnce(t *testing.T) {
	ps := people("alice", "bob", "carol", "dave", "erin")

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))

		pairing, err := Solve(rng, ps)
		if err != nil {
			// dead ends are a legitimate outcome of some seeds
			assert.ErrorIs(t, err, ErrDeadEnd)
			continue
		}

		require.NoError(t, pairing.Verify(ps), "seed %d", seed)
		for _, pair := range pairing {
			assert.NotEqual(t, pair.Giver.Name, pair.Receiver.Name)
		}
	}
}

func TestSolve_DeterministicUnderFixedSeed(t *testing.T) {
	ps := people("alice", "bob", "carol", "dave")

	first, err1 := Solve(rand.New(rand.NewSource(7)), ps)
	second, err2 := Solve(rand.New(rand.NewSource(7)), ps)

	require.Equal(t, err1, err2)
	assert.Equal(t, first, second)
}

func TestSolve_DoesNotMutateInput(t *testing.T) {
	ps := people("alice", "bob", "carol")
	orig := make([]models.Participant, len(ps))
	copy(orig, ps)

	_, _ = Solve(rand.New(rand.NewSource(3)), ps)

	assert.Equal(t, orig, ps)
}

func TestSolve_TwoParticipants(t *testing.T) {
	// With two people the only valid pairing is the swap. A self-draw
	// for the first giver still has another receiver to fall back on,
	// and the second giver's last receiver is never themselves, so
	// two participants can never dead-end.
	ps := people("alice", "bob")

	for seed := int64(0); seed < 50; seed++ {
		pairing, err := Solve(rand.New(rand.NewSource(seed)), ps)
		require.NoError(t, err, "seed %d", seed)
		require.Len(t, pairing, 2)

		assert.Equal(t, "bob", byGiver(pairing, "alice").Receiver.Name)
		assert.Equal(t, "alice", byGiver(pairing, "bob").Receiver.Name)
	}
}

func TestSolve_DeadEndWhenLastReceiverIsGiver(t *testing.T) {
	// Identity shuffle leaves the pool as [alice bob carol].
	// alice draws bob, bob draws alice, and carol is left staring at
	// themselves: the attempt is unsalvageable.
	ps := people("alice", "bob", "carol")
	rng := &scriptedRand{draws: []int{1, 0, 0}}

	pairing, err := Solve(rng, ps)

	assert.ErrorIs(t, err, ErrDeadEnd)
	assert.Nil(t, pairing, "no partial pairing on a dead end")
}

func TestSolve_RedrawsOnSelfMatch(t *testing.T) {
	// alice draws herself first (pool not exhausted, so just redraw),
	// then carol. bob draws bob, redraws alice. carol gets bob.
	ps := people("alice", "bob", "carol")
	rng := &scriptedRand{draws: []int{0, 2, 1, 0, 0}}

	pairing, err := Solve(rng, ps)

	require.NoError(t, err)
	assert.Equal(t, "carol", byGiver(pairing, "alice").Receiver.Name)
	assert.Equal(t, "alice", byGiver(pairing, "bob").Receiver.Name)
	assert.Equal(t, "bob", byGiver(pairing, "carol").Receiver.Name)
}

func byGiver(pairing models.Pairing, name string) models.Pair {
	for _, pair := range pairing {
		if pair.Giver.Name == name {
			return pair
		}
	}
	return models.Pair{}
}
