//go:build !linux && !darwin

package scheduler

import (
	"errors"
	"time"
)

// selectWait is unavailable on this platform; tasks waiting on fds never
// wake. Sleep-based scheduling still works.
func selectWait(readFds, writeFds []int, timeout time.Duration) (map[int]bool, map[int]bool, error) {
	time.Sleep(timeout)
	return nil, nil, errors.New("io wait is not supported on this platform")
}
