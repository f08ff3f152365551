package dutydate

import "time"

// DateLayout is the wire format for roster dates.
const DateLayout = "2006-01-02"

// DefaultCutoffHour is the local hour at which a newly published roster takes
// effect. Before it, the previous day's roster is still the one on duty.
const DefaultCutoffHour = 9

// Resolver converts wall-clock time into the roster date a request applies to.
type Resolver struct {
	location   *time.Location
	cutoffHour int
}

// NewResolver creates a resolver fixed to the given timezone and cutoff hour.
func NewResolver(location *time.Location, cutoffHour int) *Resolver {
	return &Resolver{location: location, cutoffHour: cutoffHour}
}

// Resolve returns the effective roster date for the given instant. The instant
// is converted to the resolver's timezone first; before the cutoff hour the
// effective date is the previous zone-local calendar date, from the cutoff
// hour onward it is the current one. Minutes and seconds are irrelevant.
func (r *Resolver) Resolve(now time.Time) string {
	local := now.In(r.location)
	if local.Hour() < r.cutoffHour {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format(DateLayout)
}
