package catalog

// Identified is any record with a catalog id.
type Identified interface {
	CatalogID() int
}

// NextID returns the next free catalog id: max(existing)+1, or 1 when the
// catalog is empty.
func NextID[T Identified](existing []T) int {
	maxID := 0
	for _, rec := range existing {
		if rec.CatalogID() > maxID {
			maxID = rec.CatalogID()
		}
	}
	return maxID + 1
}

// Allocator hands out monotonically increasing catalog ids within a single
// merge run. Allocation is sequential; the allocator must be seeded with the
// fully updated candidate set so ids added earlier in the run are counted.
type Allocator struct {
	next int
}

// NewAllocator seeds an allocator from the existing catalog.
func NewAllocator[T Identified](existing []T) *Allocator {
	return &Allocator{next: NextID(existing)}
}

// Next returns the next id and advances the allocator.
func (a *Allocator) Next() int {
	id := a.next
	a.next++
	return id
}
