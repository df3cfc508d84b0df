package board

import (
	"sync/atomic"
	"time"
)

// Task is a pending deferred call.
type Task interface {
	// Stop cancels the call. It reports whether the call was still pending.
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// TimerScheduler schedules with time.AfterFunc. A non-nil post receives the due
// callback so it can run on the owner's event loop; with a nil post it runs on the
// timer goroutine.
type TimerScheduler struct {
	post func(func())
}

func NewTimerScheduler(post func(func())) *TimerScheduler {
	return &TimerScheduler{post: post}
}

type timerTask struct {
	timer   *time.Timer
	stopped atomic.Bool
}

func (s *TimerScheduler) AfterFunc(d time.Duration, fn func()) Task {
	task := &timerTask{}
	run := func() {
		if !task.stopped.Load() {
			fn()
		}
	}
	task.timer = time.AfterFunc(d, func() {
		if s.post != nil {
			s.post(run)
			return
		}
		run()
	})
	return task
}

// Stop also cancels a callback already handed to post but not yet run.
func (t *timerTask) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.timer.Stop()
	return true
}
