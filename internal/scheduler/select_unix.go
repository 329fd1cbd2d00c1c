//go:build linux || darwin

package scheduler

import (
	"time"

	"golang.org/x/sys/unix"
)

// selectWait blocks in select(2) over the pending fd sets for at most
// timeout. The error set mirrors both input sets; an fd reported in it
// is surfaced as ready so the waiter can observe the failure.
func selectWait(readFds, writeFds []int, timeout time.Duration) (map[int]bool, map[int]bool, error) {
	var rset, wset, eset unix.FdSet

	nfds := 0
	for _, fd := range readFds {
		rset.Set(fd)
		eset.Set(fd)
		if fd+1 > nfds {
			nfds = fd + 1
		}
	}
	for _, fd := range writeFds {
		wset.Set(fd)
		eset.Set(fd)
		if fd+1 > nfds {
			nfds = fd + 1
		}
	}

	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	n, err := unix.Select(nfds, &rset, &wset, &eset, &tv)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if n == 0 {
		return nil, nil, nil
	}

	readable := make(map[int]bool)
	for _, fd := range readFds {
		if rset.IsSet(fd) || eset.IsSet(fd) {
			readable[fd] = true
		}
	}
	writable := make(map[int]bool)
	for _, fd := range writeFds {
		if wset.IsSet(fd) || eset.IsSet(fd) {
			writable[fd] = true
		}
	}
	return readable, writable, nil
}
