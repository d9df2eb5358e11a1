package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/haydensixseven-jpg/sketchdash-server/internal"
	"github.com/haydensixseven-jpg/sketchdash-server/internal/words"
)

// fakeScheduler drives countdowns manually so state machine tests are
// deterministic and do not sleep.
type fakeCountdown struct {
	remaining int
	tick      func(remaining int)
	expire    func()
	cancelled bool
	fired     bool
}

type fakeScheduler struct {
	mu         sync.Mutex
	countdowns []*fakeCountdown
}

func (s *fakeScheduler) Countdown(seconds int, tick func(remaining int), expire func()) CancelFunc {
	cd := &fakeCountdown{remaining: seconds, tick: tick, expire: expire}
	s.mu.Lock()
	s.countdowns = append(s.countdowns, cd)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		cd.cancelled = true
		s.mu.Unlock()
	}
}

// live returns the newest countdown that is still pending.
func (s *fakeScheduler) live() *fakeCountdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.countdowns) - 1; i >= 0; i-- {
		cd := s.countdowns[i]
		if !cd.cancelled && !cd.fired {
			return cd
		}
	}
	return nil
}

// livePending counts countdowns that are neither cancelled nor fired.
func (s *fakeScheduler) livePending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, cd := range s.countdowns {
		if !cd.cancelled && !cd.fired {
			n++
		}
	}
	return n
}

// advance plays the live countdown forward by the given number of seconds,
// firing ticks and, at zero, the expiry. Transitions triggered along the
// way may start a fresh countdown, which subsequent seconds then drive.
func (s *fakeScheduler) advance(seconds int) {
	for i := 0; i < seconds; i++ {
		cd := s.live()
		if cd == nil {
			return
		}
		cd.remaining--
		if cd.tick != nil {
			cd.tick(cd.remaining)
		}
		s.mu.Lock()
		cancelled := cd.cancelled
		s.mu.Unlock()
		if cancelled {
			continue
		}
		if cd.remaining <= 0 {
			s.mu.Lock()
			cd.fired = true
			s.mu.Unlock()
			cd.expire()
		}
	}
}

// recordGateway captures every emission in order. Room broadcasts have an
// empty recipient; private sends carry the player id.
type sentEvent struct {
	to  string
	msg internal.Message[any]
}

type recordGateway struct {
	mu     sync.Mutex
	events []sentEvent
}

func (g *recordGateway) ToRoom(players []*internal.Player, msg internal.Message[any]) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = append(g.events, sentEvent{msg: msg})
}

func (g *recordGateway) ToPlayer(p *internal.Player, msg internal.Message[any]) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = append(g.events, sentEvent{to: p.Id, msg: msg})
}

func (g *recordGateway) ofType(eventType string) []sentEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []sentEvent
	for _, ev := range g.events {
		if ev.msg.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

func (g *recordGateway) lastOfType(eventType string) (sentEvent, bool) {
	evs := g.ofType(eventType)
	if len(evs) == 0 {
		return sentEvent{}, false
	}
	return evs[len(evs)-1], true
}

func newTestEngine(cfg internal.Config) (*Engine, *fakeScheduler, *recordGateway) {
	provider, err := words.NewProvider(words.DefaultCorpus, cfg.WordChoices)
	if err != nil {
		panic(err)
	}
	sched := &fakeScheduler{}
	gw := &recordGateway{}
	return NewEngine(cfg, provider, gw, sched), sched, gw
}

func newTestPlayer(name string) *internal.Player {
	return internal.NewPlayer(uuid.NewString(), name, internal.Profile{Avatar: "🐱", Accessory: "👑"}, nil)
}
