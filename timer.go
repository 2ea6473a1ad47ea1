package vl53l0x

import (
	"errors"
	"fmt"
	"time"
)

const (
	// IOAttempts is the default number of status polls before a timeout
	IOAttempts = 1000
	// IOInterval is the default pause between status polls
	IOInterval = time.Millisecond
)

// ErrTimeout is returned when the sensor does not signal completion within
// the configured number of polls.  An absent, faulty or slow sensor all
// produce this error.
var ErrTimeout = errors.New("timeout")

// SetTimeout sets the overall time allowed for a status poll.  The timeout is
// converted into a number of polls at the current poll interval, with a
// minimum of one.  With a zero poll interval the number of polls is left
// unchanged.
func (v *VL53L0X) SetTimeout(timeout time.Duration) {

	if v.ioInterval <= 0 {
		return
	}

	attempts := int((timeout + v.ioInterval - 1) / v.ioInterval)

	if attempts < 1 {
		attempts = 1
	}

	v.ioAttempts = attempts
}

// SetPollInterval sets the pause between status polls, keeping the number of
// polls unchanged
func (v *VL53L0X) SetPollInterval(interval time.Duration) {
	v.ioInterval = interval
}

// TimeoutOccurred reports whether a timeout has occurred since the last call
func (v *VL53L0X) TimeoutOccurred() bool {
	tmp := v.didTimeout
	v.didTimeout = false
	return tmp
}

// poll calls ready until it reports true, sleeping the poll interval after
// every negative answer.  Bus errors end polling immediately.
func (v *VL53L0X) poll(what string, ready func() (bool, error)) error {

	for i := 0; i < v.ioAttempts; i++ {

		ok, err := ready()

		if err != nil {
			return err
		}

		if ok {
			return nil
		}

		v.sleep(v.ioInterval)
	}

	v.didTimeout = true
	return fmt.Errorf("%w waiting for %s", ErrTimeout, what)
}

// pollReg polls the register until cond holds for its value
func (v *VL53L0X) pollReg(what string, reg uint8, cond func(uint8) bool) error {
	return v.poll(what, func() (bool, error) {
		val, err := v.readReg(reg)

		if err != nil {
			return false, err
		}

		return cond(val), nil
	})
}
