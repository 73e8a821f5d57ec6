package roller

import (
	"os"
	"time"

	"github.com/raoulx24/log-roller/internal/logfile"
)

// resolution of the current file, the roll transitions, and the age timer.
// Everything here runs on the processing queue.

// currentHandle returns the open handle, resolving or creating the current
// file first when there is none. Returns nil when the file cannot be
// opened; the caller drops the message and the next one retries.
func (r *Roller) currentHandle() *os.File {
	if r.handle != nil {
		return r.handle
	}

	info := r.resolveCurrentFile()
	if info == nil {
		return nil
	}

	f, err := os.OpenFile(info.Path(), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		r.log.Error("opening log file failed", "file", info.Path(), "error", err)
		return nil
	}

	r.current = info
	r.handle = f
	r.written = info.Size()
	r.armAgeTimer(r.rollingFrequency - info.Age())
	return f
}

// resolveCurrentFile reuses the newest on-disk file when it is still a
// valid write target: not archived, below the size limit, younger than the
// rolling frequency. Anything else gets archived and a fresh file created.
func (r *Roller) resolveCurrentFile() *logfile.Info {
	infos := r.ret.SortedLogFileInfos()
	if len(infos) > 0 {
		newest := infos[0]
		if !newest.IsArchived() {
			if r.withinSizeLimit(newest.Size()) && r.withinAgeLimit(newest.Age()) {
				return newest
			}
			newest.SetArchived(true)
			r.ret.NotifyDidArchive(newest.Path())
		}
	}

	info, err := r.ret.CreateNewLogFile()
	if err != nil {
		r.log.Error("creating log file failed", "error", err)
		return nil
	}
	return info
}

func (r *Roller) withinSizeLimit(size int64) bool {
	return r.maximumFileSize <= 0 || size < r.maximumFileSize
}

func (r *Roller) withinAgeLimit(age time.Duration) bool {
	return r.rollingFrequency <= 0 || age < r.rollingFrequency
}

// roll finalizes the active file: sync, close, mark archived, notify
// retention, then forget it. The next message reopens lazily. A failed
// step is logged and the roll continues; the logger stays usable.
func (r *Roller) roll() {
	if r.handle == nil {
		return
	}

	info := r.current
	r.stopAgeTimer()
	r.closeHandle()

	info.SetArchived(true)
	r.ret.NotifyDidRollAndArchive(info.Path())
}

func (r *Roller) rollDueToSizeIfNeeded() {
	if r.maximumFileSize > 0 && r.written >= r.maximumFileSize {
		r.roll()
	}
}

// armAgeTimer schedules the age check, replacing any live timer first so
// at most one exists. A non-positive rolling frequency disables it.
func (r *Roller) armAgeTimer(d time.Duration) {
	r.stopAgeTimer()
	if r.rollingFrequency <= 0 {
		return
	}
	if d < time.Millisecond {
		d = time.Millisecond
	}
	r.ageTimer = time.AfterFunc(d, func() {
		r.q.Async(r.ageCheck)
	})
}

func (r *Roller) stopAgeTimer() {
	if r.ageTimer != nil {
		r.ageTimer.Stop()
		r.ageTimer = nil
	}
}

// ageCheck runs when the timer fires. A fire before the file actually
// reached the threshold (scheduling race, or the frequency was just
// raised) re-arms for the remaining interval instead of rolling.
func (r *Roller) ageCheck() {
	if r.closed || r.current == nil || r.rollingFrequency <= 0 {
		return
	}

	age := r.current.Age()
	if age < r.rollingFrequency {
		r.armAgeTimer(r.rollingFrequency - age)
		return
	}
	r.roll()
}
