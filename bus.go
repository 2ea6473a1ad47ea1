package vl53l0x

import "tinygo.org/x/drivers"

// TinyGoBus adapts a tinygo.org/x/drivers I2C bus to Bus so the sensor can be
// driven from a microcontroller.  Each WriteBytes and ReadBytes call is a
// separate bus transaction addressed to the sensor.
type TinyGoBus struct {
	bus  drivers.I2C
	addr uint16
}

// NewTinyGoBus returns a Bus talking to the device at addr on bus
func NewTinyGoBus(bus drivers.I2C, addr uint8) *TinyGoBus {
	return &TinyGoBus{bus: bus, addr: uint16(addr)}
}

// WriteBytes writes buf to the device
func (t *TinyGoBus) WriteBytes(buf []byte) (int, error) {

	if err := t.bus.Tx(t.addr, buf, nil); err != nil {
		return 0, err
	}

	return len(buf), nil
}

// ReadBytes fills buf from the device
func (t *TinyGoBus) ReadBytes(buf []byte) (int, error) {

	if err := t.bus.Tx(t.addr, nil, buf); err != nil {
		return 0, err
	}

	return len(buf), nil
}
