package reconcile

// Result reports which catalog ids a run added, updated, or linked. It is an
// observability surface, not a stability contract.
type Result struct {
	CardsAdded   []int
	CardsUpdated []int

	JPBannersAdded   []int
	ENBannersAdded   []int
	ENBannersUpdated []int

	JPEventsAdded   []int
	ENEventsAdded   []int
	ENEventsUpdated []int

	// BannersLinked are JP banner ids whose en_id changed this run.
	BannersLinked []int
	// EventsLinked are banner ids, either locale, that gained an event_id.
	EventsLinked []int
}

// HasChanges reports whether the run touched any catalog.
func (r *Result) HasChanges() bool {
	return r.Added()+r.Updated()+len(r.BannersLinked)+len(r.EventsLinked) > 0
}

// Added is the total count of inserted records.
func (r *Result) Added() int {
	return len(r.CardsAdded) + len(r.JPBannersAdded) + len(r.ENBannersAdded) +
		len(r.JPEventsAdded) + len(r.ENEventsAdded)
}

// Updated is the total count of patched records.
func (r *Result) Updated() int {
	return len(r.CardsUpdated) + len(r.ENBannersUpdated) + len(r.ENEventsUpdated)
}
