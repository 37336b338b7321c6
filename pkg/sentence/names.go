package sentence

import "math/rand"

// alphabet is the fixed charset random sentence names are drawn from.
// No third-party ID-generation library in the retrieved example pack
// supports a custom, non-UUID alphabet at these specific lengths, so
// this is a deliberate stdlib use documented in the design ledger
// rather than an adopted ecosystem dependency.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// anonymousLength is used for a sentence with no specifier at all.
const anonymousLength = 30

// classifiedLength is used for a sentence with a recognized but
// unnamed specifier (if/while/for).
const classifiedLength = 32

// NameGenerator produces the random alphanumeric identifiers assigned
// to sentences that don't carry an explicit `fn <name>`. It wraps a
// *rand.Rand so a fixed seed can pin output names in
// tests without weakening production randomness (seed 0 gives a private
// source seeded from the process-global one).
type NameGenerator struct {
	rng *rand.Rand
}

// NewNameGenerator returns a NameGenerator. A nonzero seed makes its
// output deterministic; a seed of 0 seeds from the default global
// source.
func NewNameGenerator(seed int64) *NameGenerator {
	if seed == 0 {
		return &NameGenerator{rng: rand.New(rand.NewSource(rand.Int63()))}
	}
	return &NameGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *NameGenerator) random(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[g.rng.Intn(len(alphabet))]
	}
	return string(out)
}

// Anonymous returns a 30-character name for a specifier-less block.
func (g *NameGenerator) Anonymous() string { return g.random(anonymousLength) }

// Classified returns a 32-character name for a block whose specifier
// was recognized (if/while/for) but carries no explicit name.
func (g *NameGenerator) Classified() string { return g.random(classifiedLength) }
