package player

import "time"

// StepFunc draws one playback frame. elapsed is in milliseconds; done is set on
// the final call.
type StepFunc func(elapsed float64, done bool)

// Task is a running playback. Cancelling it drops its remaining frames.
type Task struct {
	start     time.Time
	duration  float64
	step      StepFunc
	cancelled bool
	finished  bool
}

// Cancel stops the task. Frames already drawn are unaffected.
func (t *Task) Cancel() {
	t.cancelled = true
}

// Active reports whether the task still has frames to draw.
func (t *Task) Active() bool {
	return !t.cancelled && !t.finished
}

// Scheduler drives at most one task from the host's frame loop.
type Scheduler struct {
	current *Task
}

// Start cancels the running task, if any, and schedules step to be called on every
// Tick until duration ms have passed since now.
func (s *Scheduler) Start(now time.Time, duration float64, step StepFunc) *Task {
	s.Cancel()
	s.current = &Task{start: now, duration: duration, step: step}
	return s.current
}

// Cancel stops the running task.
func (s *Scheduler) Cancel() {
	if s.current != nil {
		s.current.Cancel()
		s.current = nil
	}
}

// Active reports whether a task is running.
func (s *Scheduler) Active() bool {
	return s.current != nil && s.current.Active()
}

// Tick draws the next frame of the running task.
func (s *Scheduler) Tick(now time.Time) {
	t := s.current
	if t == nil || !t.Active() {
		return
	}

	elapsed := float64(now.Sub(t.start)) / float64(time.Millisecond)
	if elapsed < t.duration {
		t.step(elapsed, false)
		return
	}

	t.finished = true
	s.current = nil
	t.step(t.duration, true)
}
