package genetic

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"
)

// NewRNG returns a generator for the operators. An empty seed draws from
// the OS entropy pool; any other seed gives a reproducible stream.
func NewRNG(seed string) *frand.RNG {
	if seed == "" {
		return frand.New()
	}
	// stretch the seed to the 32 bytes the generator needs
	key := make([]byte, 32)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], xxhash.Sum64String(string(rune('0'+i))+seed))
	}
	return frand.NewCustom(key, 1024, 12)
}
