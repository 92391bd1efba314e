package harness

import (
	"hash/fnv"
	"math/rand/v2"
)

// NewRand returns a deterministic source for the given run seed and stream
// name. Every group setup and every case draws from its own stream, so a
// case sees the same random inputs whether it runs alone or inside the full
// matrix.
func NewRand(seed uint64, stream string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(stream))
	return rand.New(rand.NewPCG(seed, h.Sum64()))
}

// RandomSeed returns a fresh run seed for runs without a configured one.
func RandomSeed() uint64 {
	return rand.Uint64()
}

func groupStream(group string) string { return "group:" + group }

func caseStream(c Case) string { return "case:" + c.ID() }
