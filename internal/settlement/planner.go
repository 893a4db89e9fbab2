package settlement

import (
	"fmt"
	"math/rand"
)

const (
	// placementAttempts bounds the randomized tries per limb before the
	// limb is dropped from the plan.
	placementAttempts = 10
	maxLimbs          = 2
)

// Placement locates a module inside a chunk by its top-left corner in
// local tile coordinates.
type Placement struct {
	Module ModuleDef
	X, Y   int
}

// Door returns the placement's door tile in local chunk coordinates.
func (p Placement) Door() (int, int, bool) {
	dx, dy, ok := p.Module.Door()
	if !ok {
		return 0, 0, false
	}
	return p.X + dx, p.Y + dy, true
}

func (p Placement) overlaps(o Placement) bool {
	return p.X < o.X+o.Module.Width() && o.X < p.X+p.Module.Width() &&
		p.Y < o.Y+o.Module.Height() && o.Y < p.Y+p.Module.Height()
}

// Planner lays out settlements from a module library.
type Planner struct {
	lib *Library
}

// NewPlanner returns a planner over the given library.
func NewPlanner(lib *Library) *Planner {
	return &Planner{lib: lib}
}

// Plan places the theme's heart module centered in the chunk, then tries
// 1–2 limb modules around it. Each limb gets up to placementAttempts
// randomized positions inside a jitter radius of the heart; the first
// non-overlapping, in-bounds position wins. Limbs that exhaust their
// attempts are omitted. A theme with no heart module is a configuration
// error.
func (p *Planner) Plan(theme string, chunkSize int, seed int64) ([]Placement, error) {
	heart, ok := p.lib.Heart(theme)
	if !ok {
		return nil, fmt.Errorf("settlement: no heart module for theme %q", theme)
	}
	if heart.Width() > chunkSize || heart.Height() > chunkSize {
		return nil, fmt.Errorf("settlement: heart module %q (%dx%d) exceeds chunk size %d",
			heart.ID, heart.Width(), heart.Height(), chunkSize)
	}

	rng := rand.New(rand.NewSource(seed))

	placements := []Placement{{
		Module: heart,
		X:      (chunkSize - heart.Width()) / 2,
		Y:      (chunkSize - heart.Height()) / 2,
	}}

	limbs := p.lib.Limbs(theme)
	if len(limbs) == 0 {
		return placements, nil
	}

	jitter := chunkSize / 3
	limbCount := 1 + rng.Intn(maxLimbs)

	for i := 0; i < limbCount; i++ {
		limb := limbs[rng.Intn(len(limbs))]
		if pl, ok := p.tryPlace(limb, placements, chunkSize, jitter, rng); ok {
			placements = append(placements, pl)
		}
	}

	return placements, nil
}

// tryPlace attempts randomized positions near the heart, returning the
// first that stays in bounds and overlaps nothing already placed.
func (p *Planner) tryPlace(limb ModuleDef, placed []Placement, chunkSize, jitter int, rng *rand.Rand) (Placement, bool) {
	heart := placed[0]
	for attempt := 0; attempt < placementAttempts; attempt++ {
		cand := Placement{
			Module: limb,
			X:      heart.X + rng.Intn(2*jitter+1) - jitter,
			Y:      heart.Y + rng.Intn(2*jitter+1) - jitter,
		}

		if cand.X < 0 || cand.Y < 0 ||
			cand.X+limb.Width() > chunkSize || cand.Y+limb.Height() > chunkSize {
			continue
		}

		collides := false
		for _, other := range placed {
			if cand.overlaps(other) {
				collides = true
				break
			}
		}
		if !collides {
			return cand, true
		}
	}
	return Placement{}, false
}
