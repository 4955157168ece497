package animated

import (
	"sort"
	"time"
)

// Loop is the animation timeline. It is owned by the UI thread: Start,
// AfterFunc and Tick must all be called from the same goroutine, and every
// completion callback fires from inside Tick (or from Stop).
//
// The loop never reads the wall clock; the caller advances it, which keeps
// frame pacing in the compositor and makes animations deterministic in tests.
type Loop struct {
	now        time.Duration
	animations []*Animation
	timers     []*timer
}

// Animation is a handle to a running animation.
type Animation struct {
	loop    *Loop
	value   *Value
	stepper stepper
	started time.Duration
	to      float64
	done    func(finished bool)
	ended   bool
}

type timer struct {
	deadline time.Duration
	fn       func()
	canceled bool
}

// NewLoop creates an idle loop at time zero.
func NewLoop() *Loop {
	return &Loop{}
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Idle reports whether nothing is animating and no timer is pending.
func (l *Loop) Idle() bool {
	return len(l.animations) == 0 && len(l.timers) == 0
}

// Start animates v towards to using d. Any animation already driving v is
// interrupted first and reports finished=false. done may be nil.
func (l *Loop) Start(v *Value, d Driver, to, velocity float64, done func(finished bool)) *Animation {
	v.StopAnimation()

	a := &Animation{
		loop:    l,
		value:   v,
		stepper: d.begin(v.Get(), to, velocity),
		started: l.now,
		to:      to,
		done:    done,
	}
	v.running = a
	l.animations = append(l.animations, a)
	return a
}

// To returns the animation's target value.
func (a *Animation) To() float64 {
	return a.to
}

// Stop interrupts the animation, leaving the value where it is.
func (a *Animation) Stop() {
	a.finish(false)
}

func (a *Animation) finish(finished bool) {
	if a.ended {
		return
	}
	a.ended = true
	if a.value.running == a {
		a.value.running = nil
	}
	a.loop.remove(a)
	if a.done != nil {
		a.done(finished)
	}
}

func (l *Loop) remove(a *Animation) {
	for i, it := range l.animations {
		if it == a {
			l.animations = append(l.animations[:i], l.animations[i+1:]...)
			return
		}
	}
}

// AfterFunc schedules fn to run once the loop has advanced by d. The returned
// function cancels it.
func (l *Loop) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	t := &timer{deadline: l.now + d, fn: fn}
	l.timers = append(l.timers, t)
	return func() {
		t.canceled = true
		l.dropTimer(t)
	}
}

func (l *Loop) dropTimer(t *timer) {
	for i, it := range l.timers {
		if it == t {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return
		}
	}
}

// Tick advances the timeline by dt, steps every running animation and fires
// completions and due timers.
func (l *Loop) Tick(dt time.Duration) {
	l.now += dt

	running := append([]*Animation(nil), l.animations...)
	for _, a := range running {
		if a.ended || a.started == l.now {
			continue
		}
		value, done := a.stepper.step(l.now - a.started)
		a.value.set(value)
		if done {
			a.finish(true)
		}
	}

	var due []*timer
	for _, t := range l.timers {
		if t.deadline <= l.now {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline < due[j].deadline })
	for _, t := range due {
		l.dropTimer(t)
		if !t.canceled {
			t.fn()
		}
	}
}

// RunUntilIdle ticks in steps of dt until the loop is idle or limit ticks
// have elapsed. It returns the number of ticks taken.
func (l *Loop) RunUntilIdle(dt time.Duration, limit int) int {
	n := 0
	for ; n < limit && !l.Idle(); n++ {
		l.Tick(dt)
	}
	return n
}
