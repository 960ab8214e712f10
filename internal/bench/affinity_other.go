//go:build !linux

package bench

import "errors"

var errUnsupported = errors.New("not supported on this platform")

func pinCPU(int) error {
	return errUnsupported
}

func raisePriority() error {
	return errUnsupported
}
