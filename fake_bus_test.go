package vl53l0x

import (
	"bytes"
	"io"
	"log"
	"time"
)

// busWrite is a register write seen on the fake bus
type busWrite struct {
	reg  byte
	data []byte
}

// fakeBus models the sensor's register memory with address auto-increment.
// Reads of a register return queued values first and then fall back to the
// last value written.
type fakeBus struct {
	regs   [256]byte
	queued map[byte][]byte
	ptr    byte

	writes []busWrite
	reads  map[byte]int

	// writeErr is returned by the write with index failWrite
	writeErr  error
	failWrite int
	nWrites   int

	shortRead bool
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		queued:    map[byte][]byte{},
		reads:     map[byte]int{},
		failWrite: -1,
	}
}

func (f *fakeBus) WriteBytes(buf []byte) (int, error) {

	idx := f.nWrites
	f.nWrites++

	if f.writeErr != nil && idx == f.failWrite {
		return 0, f.writeErr
	}

	if len(buf) == 0 {
		return 0, nil
	}

	f.ptr = buf[0]

	if len(buf) == 1 {
		return 1, nil
	}

	data := append([]byte(nil), buf[1:]...)
	f.writes = append(f.writes, busWrite{reg: buf[0], data: data})

	for i, b := range data {
		f.regs[buf[0]+byte(i)] = b
	}

	return len(buf), nil
}

func (f *fakeBus) ReadBytes(buf []byte) (int, error) {

	f.reads[f.ptr]++

	for i := range buf {
		reg := f.ptr + byte(i)

		if q := f.queued[reg]; len(q) > 0 {
			buf[i] = q[0]
			f.queued[reg] = q[1:]
			continue
		}

		buf[i] = f.regs[reg]
	}

	if f.shortRead {
		return len(buf) - 1, nil
	}

	return len(buf), nil
}

// writesTo returns every value written to reg, in order
func (f *fakeBus) writesTo(reg byte) [][]byte {

	var out [][]byte

	for _, w := range f.writes {
		if w.reg == reg {
			out = append(out, w.data)
		}
	}

	return out
}

// lastPage returns the last value written to the page select register
func (f *fakeBus) lastPage() (byte, bool) {

	pages := f.writesTo(PAGE_SELECT)

	if len(pages) == 0 {
		return 0, false
	}

	return pages[len(pages)-1][0], true
}

// hasWrite reports whether reg was written with exactly data
func (f *fakeBus) hasWrite(reg byte, data ...byte) bool {

	for _, w := range f.writesTo(reg) {
		if bytes.Equal(w, data) {
			return true
		}
	}

	return false
}

// resetLog forgets recorded writes and reads
func (f *fakeBus) resetLog() {
	f.writes = nil
	f.reads = map[byte]int{}
}

// readySensor returns a fake bus holding a sensor that completes every
// operation on the first poll
func readySensor() *fakeBus {

	f := newFakeBus()
	f.regs[IDENTIFICATION_MODEL_ID] = ModelID
	f.regs[STOP_VARIABLE] = 0x3C
	f.regs[RESULT_INTERRUPT_STATUS] = 0x01
	f.regs[0x92] = 0xAC

	for i := 0; i < spadMapSize; i++ {
		f.regs[GLOBAL_CONFIG_SPAD_ENABLES_REF_0+byte(i)] = 0xFF
	}

	// first read is the flag update, second the completion poll
	f.queued[0x83] = []byte{0x00, 0x01}

	return f
}

// testSensor builds a sensor on bus without running Init.  Sleeps are
// counted instead of performed.
func testSensor(bus Bus, attempts int) (*VL53L0X, *int) {

	sleeps := new(int)

	v := &VL53L0X{
		bus:        bus,
		ioAttempts: attempts,
		ioInterval: time.Millisecond,
		sleep:      func(time.Duration) { *sleeps++ },
		log:        log.New(io.Discard, "", 0),
	}

	return v, sleeps
}
