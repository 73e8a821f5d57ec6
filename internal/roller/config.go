package roller

import "time"

// Configuration accessors. Getters and setters round-trip through the
// processing queue, so a caller on another goroutine blocks until the
// queue applies the change and a following read observes it. Calls from
// the queue itself execute inline.

// MaximumFileSize returns the size threshold in bytes.
func (r *Roller) MaximumFileSize() int64 {
	var n int64
	r.q.Sync(func() { n = r.maximumFileSize })
	return n
}

// SetMaximumFileSize updates the size threshold and immediately
// re-evaluates it against the active file.
func (r *Roller) SetMaximumFileSize(n int64) {
	r.q.Sync(func() {
		r.maximumFileSize = n
		r.rollDueToSizeIfNeeded()
	})
}

// RollingFrequency returns the age threshold. Zero means age-based rolling
// is disabled.
func (r *Roller) RollingFrequency() time.Duration {
	var d time.Duration
	r.q.Sync(func() { d = r.rollingFrequency })
	return d
}

// SetRollingFrequency updates the age threshold and immediately
// re-evaluates it: an already-too-old active file rolls now, otherwise the
// timer is re-armed for the remaining interval.
func (r *Roller) SetRollingFrequency(d time.Duration) {
	r.q.Sync(func() {
		r.rollingFrequency = d
		if r.current == nil {
			return
		}
		if d <= 0 {
			r.stopAgeTimer()
			return
		}
		age := r.current.Age()
		if age >= d {
			r.roll()
			return
		}
		r.armAgeTimer(d - age)
	})
}

// SetFormatter installs the line formatter. A nil formatter writes raw
// message text.
func (r *Roller) SetFormatter(f Formatter) {
	r.q.Sync(func() { r.formatter = f })
}
