//go:build !linux

package main

import "fmt"

func resetSensor(chip string, line int) (func() error, error) {
	return nil, fmt.Errorf("xshut: unsupported OS (need linux)")
}
