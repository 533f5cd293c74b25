package alarm

// entry is a single alarm record stored in the registry arena.
type entry struct {
	// value is the alarm time in "HH:MM AM/PM" form.
	value string
	// next is the arena index of the following entry in the cycle.
	next int
	// prev is the arena index of the preceding entry in the cycle.
	prev int
}

// Registry is a circular ordered collection of alarm values.
//
// Entries live in an arena and are linked by index into a single cycle.
// Traversal starts at the anchor, so Values always returns entries in
// insertion order. The zero value is an empty registry ready to use.
//
// Registry is not safe for concurrent use; the owner serialises access.
type Registry struct {
	// entries is the arena of linked entries. Released slots are listed in free.
	entries []entry
	// free holds arena indices available for reuse.
	free []int
	// anchor is the arena index traversal starts from. Valid only when size > 0.
	anchor int
	// size is the number of live entries; zero means the registry is empty.
	size int
}

// NewRegistry creates an empty registry, optionally seeded with values in order.
func NewRegistry(values ...string) *Registry {
	r := &Registry{
		entries: make([]entry, 0, len(values)),
	}

	for _, value := range values {
		r.Append(value)
	}

	return r
}

// Append links value in front of the anchor, i.e. at the end of the sequence.
func (r *Registry) Append(value string) {
	idx := r.alloc(value)

	if r.size == 0 {
		r.entries[idx].next = idx
		r.entries[idx].prev = idx
		r.anchor = idx
		r.size = 1

		return
	}

	tail := r.entries[r.anchor].prev

	r.entries[idx].prev = tail
	r.entries[idx].next = r.anchor
	r.entries[tail].next = idx
	r.entries[r.anchor].prev = idx
	r.size++
}

// Remove unlinks the first entry equal to value, scanning from the anchor.
// It reports whether an entry was removed; an absent value is a no-op.
func (r *Registry) Remove(value string) bool {
	cur := r.anchor

	for range r.size {
		if r.entries[cur].value == value {
			r.unlink(cur)

			return true
		}

		cur = r.entries[cur].next
	}

	return false
}

// Values returns the entries in insertion order starting at the anchor.
func (r *Registry) Values() []string {
	result := make([]string, 0, r.size)

	r.Each(func(value string) bool {
		result = append(result, value)

		return true
	})

	return result
}

// Each calls fn for every entry in order until fn returns false.
func (r *Registry) Each(fn func(value string) bool) {
	cur := r.anchor

	for range r.size {
		if !fn(r.entries[cur].value) {
			return
		}

		cur = r.entries[cur].next
	}
}

// Contains reports whether an entry equal to value exists.
func (r *Registry) Contains(value string) bool {
	found := false

	r.Each(func(v string) bool {
		found = v == value

		return !found
	})

	return found
}

// anchorValue returns the value traversal starts from.
func (r *Registry) anchorValue() (string, bool) {
	if r.size == 0 {
		return "", false
	}

	return r.entries[r.anchor].value, true
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return r.size
}

// alloc stores value in a free arena slot and returns its index.
func (r *Registry) alloc(value string) int {
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		r.entries[idx] = entry{value: value}

		return idx
	}

	r.entries = append(r.entries, entry{value: value})

	return len(r.entries) - 1
}

// unlink splices the entry at idx out of the cycle and releases its slot.
func (r *Registry) unlink(idx int) {
	if r.size == 1 {
		r.entries = r.entries[:0]
		r.free = r.free[:0]
		r.anchor = 0
		r.size = 0

		return
	}

	var (
		prev = r.entries[idx].prev
		next = r.entries[idx].next
	)

	r.entries[prev].next = next
	r.entries[next].prev = prev

	if idx == r.anchor {
		r.anchor = next
	}

	r.entries[idx] = entry{}
	r.free = append(r.free, idx)
	r.size--
}
