package game

import (
	"sync"
	"time"

	"github.com/haydensixseven-jpg/sketchdash-server/internal"
)

// CancelFunc stops a scheduled countdown. Calling it more than once is
// harmless. Cancellation does not wait for in-flight callbacks; the room's
// timer generation check drops any that were already on their way.
type CancelFunc func()

// Scheduler is the clock service behind every phase countdown. tick fires
// once per elapsed second with the seconds remaining (including 0), expire
// fires after the last tick. Either may be nil.
type Scheduler interface {
	Countdown(seconds int, tick func(remaining int), expire func()) CancelFunc
}

// TickScheduler is the wall-clock Scheduler used in production.
type TickScheduler struct{}

func (TickScheduler) Countdown(seconds int, tick func(remaining int), expire func()) CancelFunc {
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		remaining := seconds
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				remaining--
				if tick != nil {
					tick(remaining)
				}
				if remaining <= 0 {
					if expire != nil {
						expire()
					}
					return
				}
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}
}

// startTimerLocked replaces the room's countdown. The previous countdown is
// cancelled first and the generation bumped, so at most one timer is ever
// pending per room and a stale callback can never act on a later phase.
// onExpire runs with the room lock held. Caller must hold the room lock.
func (e *Engine) startTimerLocked(room *internal.Room, seconds int, broadcastTicks bool, onExpire func(*internal.Room)) {
	e.stopTimerLocked(room)

	room.TimerGen++
	gen := room.TimerGen
	room.TimerSeconds = seconds

	if broadcastTicks {
		e.toRoomLocked(room, internal.EventTimerSync, internal.TimerSyncData{Seconds: seconds})
	}

	tick := func(remaining int) {
		room.Mu.Lock()
		defer room.Mu.Unlock()
		if room.TimerGen != gen {
			return
		}
		room.TimerSeconds = remaining
		if broadcastTicks {
			e.toRoomLocked(room, internal.EventTimerSync, internal.TimerSyncData{Seconds: remaining})
		}
	}

	room.StopTimer = e.sched.Countdown(seconds, tick, func() {
		room.Mu.Lock()
		defer room.Mu.Unlock()
		if room.TimerGen != gen {
			return
		}
		room.StopTimer = nil
		onExpire(room)
	})
}

// stopTimerLocked cancels any pending countdown and invalidates callbacks
// already in flight. Caller must hold the room lock.
func (e *Engine) stopTimerLocked(room *internal.Room) {
	if room.StopTimer != nil {
		room.StopTimer()
		room.StopTimer = nil
	}
	room.TimerGen++
	room.TimerSeconds = 0
}
