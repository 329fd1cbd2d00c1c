package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/henry232323/saffron-lang/internal/runtime"
)

// Yield op codes. These integers are part of the wire protocol: user
// code builds yield values from them by literal.
const (
	OpSleep       = 1
	OpWaitIoRead  = 2
	OpWaitIoWrite = 4
)

// DefaultPollInterval is the maximum latency between an event arriving
// and the blocked task being resumed.
const DefaultPollInterval = 200 * time.Millisecond

// RuntimeError reports a malformed yield value. The offending task is
// stopped; the rest of the scheduler keeps running.
type RuntimeError struct {
	Task    *Task
	Message string
}

func (e *RuntimeError) Error() string {
	return "runtime error: " + e.Message
}

// PollFunc is the host's multiplexed I/O wait: it blocks until one of
// the fds is ready or timeout elapses, returning the ready sets.
type PollFunc func(readFds, writeFds []int, timeout time.Duration) (readable, writable map[int]bool, err error)

type waiter struct {
	task *Task
	fd   int
}

// Scheduler interleaves tasks cooperatively. Exactly one task runs at a
// time; suspension happens only through HandleYield. Wake-up order is
// observable: expired sleepers before I/O, readers before writers, FIFO
// within each queue.
type Scheduler struct {
	ready       []*Task
	currentTask int

	sleepers sleeperQueue
	seq      uint64

	readers []waiter
	writers []waiter

	now          func() float64
	poll         PollFunc
	pollInterval time.Duration
}

func New() *Scheduler {
	return &Scheduler{
		now:          func() float64 { return float64(time.Now().UnixNano()) / 1e9 },
		poll:         selectWait,
		pollInterval: DefaultPollInterval,
	}
}

// SetClock replaces the time source (seconds, monotonic-ish).
func (s *Scheduler) SetClock(now func() float64) {
	s.now = now
}

// SetPoll replaces the multiplexed I/O wait primitive.
func (s *Scheduler) SetPoll(poll PollFunc) {
	s.poll = poll
}

// SetPollInterval overrides the wait quantum.
func (s *Scheduler) SetPollInterval(d time.Duration) {
	s.pollInterval = d
}

// Current returns the task at the cursor, or nil when the ready queue is
// empty.
func (s *Scheduler) Current() *Task {
	if s.currentTask < 0 || s.currentTask >= len(s.ready) {
		return nil
	}
	return s.ready[s.currentTask]
}

// ReadyCount reports how many tasks are eligible to run.
func (s *Scheduler) ReadyCount() int {
	return len(s.ready)
}

// WaitingCount reports how many tasks sit in the wait queues.
func (s *Scheduler) WaitingCount() int {
	return s.sleepers.Len() + len(s.readers) + len(s.writers)
}

// Spawn allocates a task whose initial stack holds the closure, links it
// under the current task, pushes it onto the ready queue and returns a
// fresh handle.
func (s *Scheduler) Spawn(closure runtime.Object) *runtime.TaskHandle {
	parent := s.Current()
	task := &Task{
		ID:      uuid.NewString(),
		Closure: closure,
		Stack:   []runtime.Object{closure},
		Parent:  parent,
		State:   StateSpawned,
	}
	if parent != nil {
		task.Index = parent.Index + 1
	}
	s.ready = append(s.ready, task)
	return &runtime.TaskHandle{ID: task.ID, Index: task.Index}
}

// HandleYield processes a value yielded by the current task. A plain
// value advances the round-robin cursor; a two-element [op, arg] list
// suspends the task on the matching wait queue.
func (s *Scheduler) HandleYield(value runtime.Object) error {
	list, ok := value.(*runtime.List)
	if !ok {
		s.advance()
		return nil
	}

	if len(list.Elements) != 2 {
		return s.runtimeError("yield value must be a two-element list")
	}
	opNum, ok := list.Elements[0].(*runtime.Number)
	if !ok {
		return s.runtimeError("yield op must be a number")
	}
	argNum, ok := list.Elements[1].(*runtime.Number)
	if !ok {
		return s.runtimeError("yield argument must be a number")
	}

	switch int(opNum.Value) {
	case OpSleep:
		s.sleepCurrent(argNum.Value)
	case OpWaitIoRead:
		s.suspendCurrentOn(&s.readers, int(argNum.Value))
	case OpWaitIoWrite:
		s.suspendCurrentOn(&s.writers, int(argNum.Value))
	default:
		return s.runtimeError("unknown yield op")
	}
	return nil
}

// runtimeError stops the current task and reports the fault.
func (s *Scheduler) runtimeError(msg string) error {
	task := s.Current()
	if task != nil {
		task.State = StateDone
		s.removeCurrent()
	}
	return &RuntimeError{Task: task, Message: msg}
}

func (s *Scheduler) sleepCurrent(seconds float64) {
	task := s.Current()
	if task == nil {
		return
	}
	task.State = StateSuspended
	s.seq++
	s.sleepers.push(&sleeper{task: task, deadline: s.now() + seconds, seq: s.seq})
	s.removeCurrent()
}

func (s *Scheduler) suspendCurrentOn(queue *[]waiter, fd int) {
	task := s.Current()
	if task == nil {
		return
	}
	task.State = StateSuspended
	*queue = append(*queue, waiter{task: task, fd: fd})
	s.removeCurrent()
}

// removeCurrent drops the task at the cursor. When the cursor runs off
// the end, waiters are drained and the cursor wraps.
func (s *Scheduler) removeCurrent() {
	if s.currentTask >= len(s.ready) {
		return
	}
	s.ready = append(s.ready[:s.currentTask], s.ready[s.currentTask+1:]...)
	if s.currentTask >= len(s.ready) {
		s.GetTasks()
		s.currentTask = 0
	}
}

// advance moves the cursor to the next ready task, draining waiters at
// the wrap point.
func (s *Scheduler) advance() {
	s.currentTask++
	if s.currentTask >= len(s.ready) {
		s.GetTasks()
		s.currentTask = 0
	}
}

// GetTasks drains expired sleepers into the ready queue. When any task
// waits on an fd, it then blocks in the multiplexed wait for up to the
// poll interval and drains ready fd waiters; otherwise it returns
// without waiting. Woken tasks get true in their stored slot. Returns 1 if any
// task was woken, -1 on a poll failure, else 0.
func (s *Scheduler) GetTasks() int {
	woken := 0

	now := s.now()
	for s.sleepers.Len() > 0 && s.sleepers.peek().deadline < now {
		item := s.sleepers.pop()
		s.wake(item.task)
		woken++
	}

	if len(s.readers) == 0 && len(s.writers) == 0 {
		if woken > 0 {
			return 1
		}
		return 0
	}

	readFds := make([]int, len(s.readers))
	for i, w := range s.readers {
		readFds[i] = w.fd
	}
	writeFds := make([]int, len(s.writers))
	for i, w := range s.writers {
		writeFds[i] = w.fd
	}

	readable, writable, err := s.poll(readFds, writeFds, s.pollInterval)
	if err != nil {
		if woken > 0 {
			return 1
		}
		return -1
	}

	var keepReaders []waiter
	for _, w := range s.readers {
		if readable[w.fd] {
			s.wake(w.task)
			woken++
		} else {
			keepReaders = append(keepReaders, w)
		}
	}
	s.readers = keepReaders

	var keepWriters []waiter
	for _, w := range s.writers {
		if writable[w.fd] {
			s.wake(w.task)
			woken++
		} else {
			keepWriters = append(keepWriters, w)
		}
	}
	s.writers = keepWriters

	if woken > 0 {
		return 1
	}
	return 0
}

func (s *Scheduler) wake(task *Task) {
	task.State = StateSpawned
	task.Stored = runtime.TrueValue
	s.ready = append(s.ready, task)
}
