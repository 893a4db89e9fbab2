// Package mathx provides fast deterministic hashing for seeds and
// coordinates. Everything here must stay portable and stable across
// versions: persisted worlds depend on these exact mixes.
package mathx

// Hash64 mixes a 64-bit input into a well-distributed 64-bit output
// (splitmix64 finalizer).
func Hash64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Hash2 returns a stable hash for 2D integer coordinates plus a seed.
// Large odd constants decorrelate the axes.
func Hash2(seed int64, x, y int) uint64 {
	h := uint64(seed)
	h ^= uint64(int64(x)) * 0x9e3779b97f4a7c15
	h ^= uint64(int64(y)) * 0xc2b2ae3d27d4eb4f
	return Hash64(h)
}

// SeedFor derives an independent sub-generator seed from the world seed, a
// role tag, and a coordinate pair. Every generator call in the engine seeds
// from here so that no two concerns ever share a random stream.
func SeedFor(worldSeed int64, role string, x, y int) int64 {
	h := uint64(worldSeed)
	for i := 0; i < len(role); i++ {
		h = (h ^ uint64(role[i])) * 0x100000001b3
	}
	h ^= uint64(int64(x)) * 0x9e3779b97f4a7c15
	h ^= uint64(int64(y)) * 0xc2b2ae3d27d4eb4f
	return int64(Hash64(h))
}

// Unit maps a hash to a float64 in [0, 1) using the top 53 bits.
func Unit(h uint64) float64 {
	return float64(h>>11) / float64(1<<53)
}

// FloorDiv returns a / b rounded towards negative infinity, so that
// coordinate-to-region mapping behaves the same in every quadrant.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns the remainder of FloorDiv, always in [0, b).
func FloorMod(a, b int) int {
	return a - FloorDiv(a, b)*b
}
