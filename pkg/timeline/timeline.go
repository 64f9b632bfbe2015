// Package timeline projects source-locale (JP) timestamps into target-locale
// (EN) timestamps. The EN service historically runs promotional content one
// year behind JP, released at a fixed Pacific wall-clock hour; rerun and
// birthday banners instead get a month-end anchor estimate.
//
// All timestamps are milliseconds since the Unix epoch. A zero timestamp
// means "unset" and always projects to zero.
package timeline

import (
	"time"
)

// Offsets applied after the one-year shift. They model the fixed local
// release hour as seen from UTC, which moves with Pacific daylight saving.
const (
	daylightOffset = 16 * time.Hour
	standardOffset = 17 * time.Hour
)

// windowSlackDays pads the expected rerun window on both sides.
const windowSlackDays = 5

// anchorHour is the wall-clock hour of the month-end rerun anchor.
const anchorHour = 12

// anchorZone is the fixed UTC+8 reference zone for the rerun anchor.
var anchorZone = time.FixedZone("UTC+8", 8*60*60)

// pacific resolves the reference timezone for the daylight-saving probe.
// Falls back to fixed PST when tzdata is unavailable, which yields the
// standard 17h offset year-round.
var pacific = loadPacific()

func loadPacific() *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		return time.FixedZone("PST", -8*60*60)
	}
	return loc
}

// Projector maps JP timestamps onto the EN calendar. The zero value is not
// usable; construct with New.
type Projector struct {
	now func() time.Time
}

// Option configures a Projector.
type Option func(*Projector)

// WithClock overrides the evaluation clock used for the daylight-saving
// probe. Tests pin it to get deterministic offsets.
func WithClock(now func() time.Time) Option {
	return func(p *Projector) {
		p.now = now
	}
}

// New creates a Projector.
func New(opts ...Option) *Projector {
	p := &Projector{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Instant projects a single timestamp: one calendar year forward, then the
// hour offset for the current daylight-saving state. Zero passes through.
func (p *Projector) Instant(ms int64) int64 {
	if ms == 0 {
		return 0
	}
	return addYear(ms).Add(p.hourOffset()).UnixMilli()
}

// Normal projects a start/end pair under the normal rule. Either bound being
// zero leaves both unset.
func (p *Projector) Normal(start, end int64) (int64, int64) {
	if start == 0 || end == 0 {
		return 0, 0
	}
	return p.Instant(start), p.Instant(end)
}

// Rerun projects a start/end pair under the rerun rule. The persisted target
// timing collapses to a single anchor instant: the last calendar day of the
// month one year after the source start, at 12:00 in the fixed UTC+8
// reference zone. The returned window is an independent matching aid,
// [start+1y-5d, end+1y+5d], never persisted as timing.
func (p *Projector) Rerun(start, end int64) (targetStart, targetEnd, windowStart, windowEnd int64) {
	if start == 0 || end == 0 {
		return 0, 0, 0, 0
	}

	shifted := addYear(start)
	lastDay := time.Date(shifted.Year(), shifted.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	anchor := time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), anchorHour, 0, 0, 0, anchorZone).UTC()

	windowStart = shifted.AddDate(0, 0, -windowSlackDays).UnixMilli()
	windowEnd = addYear(end).AddDate(0, 0, windowSlackDays).UnixMilli()

	ms := anchor.UnixMilli()
	return ms, ms, windowStart, windowEnd
}

// Daylight reports whether the evaluation moment is in daylight-saving time
// for the reference timezone.
func (p *Projector) Daylight() bool {
	return p.now().In(pacific).IsDST()
}

func (p *Projector) hourOffset() time.Duration {
	if p.Daylight() {
		return daylightOffset
	}
	return standardOffset
}

// addYear shifts a timestamp one calendar year forward in UTC. February 29
// rolls over per the calendar library's standard behavior.
func addYear(ms int64) time.Time {
	return time.UnixMilli(ms).UTC().AddDate(1, 0, 0)
}
