package store

import (
	"strconv"
	"time"

	applog "velora/internal/log"
	"velora/internal/persist"
)

// Usage tracks how many try-on generations a session spent today. The counter
// resets as soon as the stored date no longer matches the current date.
type Usage struct {
	kv  persist.KV
	sid string
}

const usageDateLayout = "2006-01-02"

// Allow consumes one try-on use if the session is under cap, returning false
// without touching the counter when the cap is already spent. The check runs
// before any generation call so a capped session never reaches the service.
func (u *Usage) Allow(now time.Time, cap int) (bool, error) {
	today := now.Format(usageDateLayout)

	date, _, _ := u.kv.Get(u.sid, keyTryOnDate)
	count := 0
	if date == today {
		raw, ok, _ := u.kv.Get(u.sid, keyTryOnCount)
		if ok {
			n, err := strconv.Atoi(raw)
			if err != nil {
				applog.Fail("store.load.reset", err, map[string]any{"key": keyTryOnCount})
			} else {
				count = n
			}
		}
	}

	if count >= cap {
		return false, nil
	}
	if err := u.kv.Set(u.sid, keyTryOnDate, today); err != nil {
		return false, err
	}
	if err := u.kv.Set(u.sid, keyTryOnCount, strconv.Itoa(count+1)); err != nil {
		return false, err
	}
	return true, nil
}

// Refund returns one use consumed for a generation that later failed, so only
// successful generations count against the cap. The counter never drops below
// zero.
func (u *Usage) Refund(now time.Time) error {
	today := now.Format(usageDateLayout)
	date, _, _ := u.kv.Get(u.sid, keyTryOnDate)
	if date != today {
		return nil
	}
	raw, ok, _ := u.kv.Get(u.sid, keyTryOnCount)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil
	}
	return u.kv.Set(u.sid, keyTryOnCount, strconv.Itoa(n-1))
}

// Remaining reports uses left today without consuming one.
func (u *Usage) Remaining(now time.Time, cap int) int {
	today := now.Format(usageDateLayout)
	date, _, _ := u.kv.Get(u.sid, keyTryOnDate)
	if date != today {
		return cap
	}
	raw, ok, _ := u.kv.Get(u.sid, keyTryOnCount)
	if !ok {
		return cap
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return cap
	}
	if n >= cap {
		return 0
	}
	return cap - n
}
