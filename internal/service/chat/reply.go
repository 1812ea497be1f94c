package chat

import "math/rand/v2"

// RandomSource yields integers in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// DefaultRandom draws from the process-wide math/rand/v2 source.
var DefaultRandom RandomSource = globalRandom{}

// PickReply selects one response uniformly at random. It returns "" for an empty list.
func PickReply(responses []string, rnd RandomSource) string {
	if len(responses) == 0 {
		return ""
	}
	if rnd == nil {
		rnd = DefaultRandom
	}
	return responses[rnd.IntN(len(responses))]
}
