package chunk

import "container/heap"

// Rumor is a queued narrative lead. Resolving it during chunk generation
// removes it from the queue and binds a named site to that chunk
// permanently.
type Rumor struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	// Kind is the point-of-interest type: "dungeon", "prefab", or
	// "encampment".
	Kind         string `toml:"kind"`
	Significance int    `toml:"significance"` // 1–5
	// BiomeRequirement restricts resolution to chunks of the given biome
	// when non-empty.
	BiomeRequirement string `toml:"biome_requirement"`
}

// rumorQueue is a max-heap on significance with FIFO tie-breaking.
type rumorQueue struct {
	items []queuedRumor
	next  uint64
}

type queuedRumor struct {
	rumor Rumor
	seq   uint64
}

func (q *rumorQueue) Len() int { return len(q.items) }

func (q *rumorQueue) Less(i, j int) bool {
	if q.items[i].rumor.Significance != q.items[j].rumor.Significance {
		return q.items[i].rumor.Significance > q.items[j].rumor.Significance
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *rumorQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *rumorQueue) Push(x any) {
	q.items = append(q.items, x.(queuedRumor))
}

func (q *rumorQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

func (q *rumorQueue) add(r Rumor) {
	heap.Push(q, queuedRumor{rumor: r, seq: q.next})
	q.next++
}

// pop removes and returns the highest-significance rumor.
func (q *rumorQueue) pop() (Rumor, bool) {
	if q.Len() == 0 {
		return Rumor{}, false
	}
	return heap.Pop(q).(queuedRumor).rumor, true
}

// popMatching removes the highest-significance rumor whose biome
// requirement is empty or equals biomeID. Skipped rumors keep their queue
// position.
func (q *rumorQueue) popMatching(biomeID string) (Rumor, bool) {
	var skipped []queuedRumor
	for q.Len() > 0 {
		item := heap.Pop(q).(queuedRumor)
		if item.rumor.BiomeRequirement == "" || item.rumor.BiomeRequirement == biomeID {
			for _, s := range skipped {
				heap.Push(q, s)
			}
			return item.rumor, true
		}
		skipped = append(skipped, item)
	}
	for _, s := range skipped {
		heap.Push(q, s)
	}
	return Rumor{}, false
}

// snapshot returns the pending rumors in priority order.
func (q *rumorQueue) snapshot() []Rumor {
	tmp := rumorQueue{items: make([]queuedRumor, len(q.items)), next: q.next}
	copy(tmp.items, q.items)
	out := make([]Rumor, 0, len(q.items))
	for {
		r, ok := tmp.pop()
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out
}
