//go:build linux

package bench

import (
	"golang.org/x/sys/unix"
)

// highPriority is the nice value requested for the process.
const highPriority = -10

// pinCPU restricts the current thread to cpu.
func pinCPU(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}

// raisePriority lowers the nice value of the current thread.
// Requires CAP_SYS_NICE; without it the call fails with EACCES.
func raisePriority() error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, highPriority)
}
