package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")

// RefreshEvent asks the dashboard to recompute a task's statistics
// because its next expected occurrence has elapsed (or the analysis
// window has slid past midnight).
type RefreshEvent struct {
	TaskID    string
	TriggerAt time.Time
}

type queueItem struct {
	event RefreshEvent
	seq   uint64
}

type refreshQueue []queueItem

func (q refreshQueue) Len() int { return len(q) }

func (q refreshQueue) Less(i, j int) bool {
	return q[i].event.TriggerAt.Before(q[j].event.TriggerAt)
}

func (q refreshQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *refreshQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *refreshQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Engine fires RefreshEvents at their trigger time. Scheduling a task
// again supersedes its previous entry, so each task holds at most one
// live trigger regardless of how often its stats are recomputed.
type Engine struct {
	mu      sync.Mutex
	queue   refreshQueue
	seq     uint64
	live    map[string]uint64
	out     chan RefreshEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(refreshQueue, 0),
		live:   make(map[string]uint64),
		out:    make(chan RefreshEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan RefreshEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(taskID string, triggerAt time.Time) error {
	if triggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("scheduler: engine stopped")
	}

	e.seq++
	e.live[taskID] = e.seq
	heap.Push(&e.queue, queueItem{
		event: RefreshEvent{TaskID: taskID, TriggerAt: triggerAt},
		seq:   e.seq,
	})
	e.signalWakeup()
	return nil
}

func (e *Engine) Cancel(taskID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.live, taskID)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.TriggerAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now().UTC())
			for _, ev := range due {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (RefreshEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for len(e.queue) > 0 {
		head := e.queue[0]
		if e.live[head.event.TaskID] == head.seq {
			return head.event, true
		}
		heap.Pop(&e.queue)
	}
	return RefreshEvent{}, false
}

func (e *Engine) popDue(now time.Time) []RefreshEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]RefreshEvent, 0)
	for len(e.queue) > 0 {
		head := e.queue[0]
		if e.live[head.event.TaskID] != head.seq {
			heap.Pop(&e.queue)
			continue
		}
		if head.event.TriggerAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		delete(e.live, item.event.TaskID)
		out = append(out, item.event)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
