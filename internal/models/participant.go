package models

import "fmt"

// Participant is one person in the gift exchange.
// Identity is by Name, which must be unique within a run.
type Participant struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	Email string `yaml:"email" json:"email" validate:"required,email"`
}

// Pair assigns a giver to a receiver.
type Pair struct {
	Giver    Participant `json:"giver"`
	Receiver Participant `json:"receiver"`
}

// Pairing is a complete set of giver/receiver assignments over a
// participant list. It is never mutated after construction.
type Pairing []Pair

// Verify checks that every participant gives exactly once and
// receives exactly once, and that nobody is paired with themselves.
// A failure here means the pairing was built wrong, not that the
// input was bad.
func (p Pairing) Verify(participants []Participant) error {
	if len(p) != len(participants) {
		return fmt.Errorf("pairing has %d pairs for %d participants", len(p), len(participants))
	}

	gives := make(map[string]int, len(participants))
	receives := make(map[string]int, len(participants))

	for _, pair := range p {
		if pair.Giver.Name == pair.Receiver.Name {
			return fmt.Errorf("%s is paired with themselves", pair.Giver.Name)
		}
		gives[pair.Giver.Name]++
		receives[pair.Receiver.Name]++
	}

	for _, person := range participants {
		if n := gives[person.Name]; n != 1 {
			return fmt.Errorf("%s gives %d times, expected exactly once", person.Name, n)
		}
		if n := receives[person.Name]; n != 1 {
			return fmt.Errorf("%s receives %d times, expected exactly once", person.Name, n)
		}
	}

	return nil
}
