package board

import (
	"testing"
	"time"
)

func TestTimerSchedulerPostsToOwner(t *testing.T) {
	queue := make(chan func(), 1)
	s := NewTimerScheduler(func(fn func()) { queue <- fn })

	ran := 0
	s.AfterFunc(time.Millisecond, func() { ran++ })
	select {
	case fn := <-queue:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatalf("task never posted")
	}
	if ran != 1 {
		t.Fatalf("ran = %d", ran)
	}
}

func TestTimerSchedulerStopAfterPost(t *testing.T) {
	queue := make(chan func(), 1)
	s := NewTimerScheduler(func(fn func()) { queue <- fn })

	ran := false
	task := s.AfterFunc(time.Millisecond, func() { ran = true })
	var fn func()
	select {
	case fn = <-queue:
	case <-time.After(2 * time.Second):
		t.Fatalf("task never posted")
	}
	if !task.Stop() {
		t.Fatalf("Stop reported nothing pending")
	}
	if task.Stop() {
		t.Fatalf("second Stop reported pending")
	}
	fn()
	if ran {
		t.Fatalf("stopped task ran")
	}
}
