//go:build linux

package main

import (
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// resetSensor pulls XSHUT low, then releases it and waits for the sensor to
// boot.  The returned func releases the GPIO line.
func resetSensor(chip string, line int) (func() error, error) {

	l, err := gpiocdev.RequestLine(chip, line, gpiocdev.AsOutput(0),
		gpiocdev.WithConsumer("vl53l0x-xshut"))

	if err != nil {
		return nil, err
	}

	time.Sleep(10 * time.Millisecond)

	if err := l.SetValue(1); err != nil {
		_ = l.Close()
		return nil, err
	}

	// boot time is 1.2ms max
	time.Sleep(2 * time.Millisecond)

	return l.Close, nil
}
