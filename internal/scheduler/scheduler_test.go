package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henry232323/saffron-lang/internal/runtime"
)

// fakeClock is an injectable time source advanced by hand.
type fakeClock struct {
	now float64
}

func (c *fakeClock) read() float64 { return c.now }

func sleepValue(seconds float64) runtime.Object {
	return &runtime.List{Elements: []runtime.Object{
		&runtime.Number{Value: OpSleep},
		&runtime.Number{Value: seconds},
	}}
}

func waitReadValue(fd int) runtime.Object {
	return &runtime.List{Elements: []runtime.Object{
		&runtime.Number{Value: OpWaitIoRead},
		&runtime.Number{Value: float64(fd)},
	}}
}

func newTestScheduler(clock *fakeClock) *Scheduler {
	s := New()
	s.SetClock(clock.read)
	s.SetPoll(func(_, _ []int, _ time.Duration) (map[int]bool, map[int]bool, error) {
		return nil, nil, nil
	})
	return s
}

func TestSpawnLinksParentAndIndex(t *testing.T) {
	clock := &fakeClock{}
	s := newTestScheduler(clock)

	h1 := s.Spawn(&runtime.Closure{Name: "a"})
	require.NotNil(t, h1)
	assert.Equal(t, 0, h1.Index)
	assert.NotEmpty(t, h1.ID)

	// The first task is now current; its child indexes one deeper.
	h2 := s.Spawn(&runtime.Closure{Name: "b"})
	assert.Equal(t, 1, h2.Index)
	assert.NotEqual(t, h1.ID, h2.ID)

	assert.Equal(t, 2, s.ReadyCount())
	require.NotNil(t, s.Current())
	assert.Nil(t, s.Current().Parent)
	assert.Len(t, s.Current().Stack, 1)
}

func TestPlainYieldRoundRobins(t *testing.T) {
	clock := &fakeClock{}
	s := newTestScheduler(clock)

	s.Spawn(&runtime.Closure{Name: "a"})
	s.Spawn(&runtime.Closure{Name: "b"})

	first := s.Current()
	require.NoError(t, s.HandleYield(runtime.NilValue))
	second := s.Current()
	assert.NotSame(t, first, second)

	require.NoError(t, s.HandleYield(runtime.NilValue))
	assert.Same(t, first, s.Current())
}

func TestSleepSuspendsAndWakes(t *testing.T) {
	clock := &fakeClock{now: 100}
	s := newTestScheduler(clock)

	s.Spawn(&runtime.Closure{Name: "sleeper"})
	task := s.Current()

	require.NoError(t, s.HandleYield(sleepValue(0.05)))
	assert.Equal(t, 0, s.ReadyCount())
	assert.Equal(t, 1, s.WaitingCount())
	assert.Equal(t, StateSuspended, task.State)

	// Deadline not reached yet.
	assert.Equal(t, 0, s.GetTasks())
	assert.Equal(t, 0, s.ReadyCount())

	clock.now = 100.051
	assert.Equal(t, 1, s.GetTasks())
	require.Equal(t, 1, s.ReadyCount())
	assert.Equal(t, 0, s.WaitingCount())
	assert.Same(t, task, s.Current())
	assert.Equal(t, runtime.TrueValue, task.Stored)
	assert.Equal(t, StateSpawned, task.State)
}

func TestSleeperFairnessFIFOOnEqualDeadlines(t *testing.T) {
	clock := &fakeClock{now: 10}
	s := newTestScheduler(clock)

	s.Spawn(&runtime.Closure{Name: "a"})
	s.Spawn(&runtime.Closure{Name: "b"})
	s.Spawn(&runtime.Closure{Name: "c"})

	a := s.Current()
	require.NoError(t, s.HandleYield(sleepValue(1)))
	b := s.Current()
	require.NoError(t, s.HandleYield(sleepValue(1)))
	c := s.Current()
	require.NoError(t, s.HandleYield(sleepValue(1)))

	clock.now = 11.5
	require.Equal(t, 1, s.GetTasks())
	require.Equal(t, 3, s.ReadyCount())

	// Wake order equals insertion order.
	assert.Same(t, a, s.ready[0])
	assert.Same(t, b, s.ready[1])
	assert.Same(t, c, s.ready[2])
}

func TestEarlierDeadlineWakesFirst(t *testing.T) {
	clock := &fakeClock{now: 0}
	s := newTestScheduler(clock)

	s.Spawn(&runtime.Closure{Name: "slow"})
	s.Spawn(&runtime.Closure{Name: "fast"})

	slow := s.Current()
	require.NoError(t, s.HandleYield(sleepValue(2)))
	fast := s.Current()
	require.NoError(t, s.HandleYield(sleepValue(1)))

	clock.now = 3
	require.Equal(t, 1, s.GetTasks())
	require.Equal(t, 2, s.ReadyCount())
	assert.Same(t, fast, s.ready[0])
	assert.Same(t, slow, s.ready[1])
}

func TestIoWaitWakesOnReadableFd(t *testing.T) {
	clock := &fakeClock{}
	s := New()
	s.SetClock(clock.read)

	var polledReads []int
	s.SetPoll(func(readFds, _ []int, timeout time.Duration) (map[int]bool, map[int]bool, error) {
		polledReads = readFds
		assert.Equal(t, DefaultPollInterval, timeout)
		return map[int]bool{7: true}, nil, nil
	})

	s.Spawn(&runtime.Closure{Name: "reader"})
	task := s.Current()
	require.NoError(t, s.HandleYield(waitReadValue(7)))

	assert.Equal(t, []int{7}, polledReads)
	require.Equal(t, 1, s.ReadyCount())
	assert.Same(t, task, s.Current())
	assert.Equal(t, runtime.TrueValue, task.Stored)
}

func TestSleepersWakeBeforeIo(t *testing.T) {
	clock := &fakeClock{now: 0}
	s := New()
	s.SetClock(clock.read)
	s.SetPoll(func(readFds, _ []int, _ time.Duration) (map[int]bool, map[int]bool, error) {
		return map[int]bool{3: true}, nil, nil
	})

	s.Spawn(&runtime.Closure{Name: "sleeper"})
	s.Spawn(&runtime.Closure{Name: "reader"})

	sleeperTask := s.Current()
	require.NoError(t, s.HandleYield(sleepValue(0.01)))
	readerTask := s.Current()

	clock.now = 1
	require.NoError(t, s.HandleYield(waitReadValue(3)))

	// Both woke during the drain triggered by the last removal; expired
	// sleepers precede I/O waiters.
	require.Equal(t, 2, s.ReadyCount())
	assert.Same(t, sleeperTask, s.ready[0])
	assert.Same(t, readerTask, s.ready[1])
}

func TestMalformedYieldValues(t *testing.T) {
	clock := &fakeClock{}

	cases := []struct {
		name  string
		value runtime.Object
	}{
		{"wrong_length", &runtime.List{Elements: []runtime.Object{
			&runtime.Number{Value: OpSleep},
		}}},
		{"non_numeric_op", &runtime.List{Elements: []runtime.Object{
			&runtime.String{Value: "sleep"}, &runtime.Number{Value: 1},
		}}},
		{"non_numeric_arg", &runtime.List{Elements: []runtime.Object{
			&runtime.Number{Value: OpSleep}, &runtime.String{Value: "soon"},
		}}},
		{"unknown_op", &runtime.List{Elements: []runtime.Object{
			&runtime.Number{Value: 3}, &runtime.Number{Value: 1},
		}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestScheduler(clock)
			s.Spawn(&runtime.Closure{Name: "bad"})
			task := s.Current()

			err := s.HandleYield(tc.value)
			require.Error(t, err)

			var rtErr *RuntimeError
			require.ErrorAs(t, err, &rtErr)
			assert.Same(t, task, rtErr.Task)

			// The offending task is stopped and removed.
			assert.Equal(t, StateDone, task.State)
			assert.Equal(t, 0, s.ReadyCount())
		})
	}
}

func TestBoundedLiveness(t *testing.T) {
	// A task sleeping 50ms with nothing else ready resumes within
	// deadline + poll interval. With an injected clock the bound shows
	// up as: one GetTasks call past the deadline suffices.
	clock := &fakeClock{now: 0}
	s := newTestScheduler(clock)

	s.Spawn(&runtime.Closure{Name: "a"})
	s.Spawn(&runtime.Closure{Name: "b"})

	a := s.Current()
	require.NoError(t, s.HandleYield(sleepValue(0.05)))
	b := s.Current()
	require.NoError(t, s.HandleYield(sleepValue(0.05)))
	assert.Equal(t, 0, s.ReadyCount())

	clock.now = 0.05 + float64(DefaultPollInterval)/float64(time.Second)
	require.Equal(t, 1, s.GetTasks())
	assert.Equal(t, 2, s.ReadyCount())
	assert.Same(t, a, s.ready[0])
	assert.Same(t, b, s.ready[1])
}
