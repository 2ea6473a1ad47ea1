// go-vl53l0x is an I2C driver for the ST VL53L0X time‐of‐flight sensor.
package vl53l0x

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/swdee/go-i2c"
)

const (
	// Address is the default address of the sensor on I2C bus
	Address uint8 = 0x29
	// ModelID is the value reported by the IDENTIFICATION_MODEL_ID register
	ModelID uint8 = 0xEE
)

// Bus is the register transport used by the sensor.  A register read is a
// WriteBytes of the register index followed by a ReadBytes of the value.
// *i2c.Options from github.com/swdee/go-i2c satisfies this interface, see
// TinyGoBus for microcontroller targets.
type Bus interface {
	WriteBytes(buf []byte) (int, error)
	ReadBytes(buf []byte) (int, error)
}

// VL53L0X represents a single VL53L0X sensor instance.  It is not safe for
// concurrent use, callers sharing a bus between devices must serialize access.
type VL53L0X struct {
	// bus is the I2C interface
	bus Bus

	// ioAttempts is the number of status polls made before giving up
	ioAttempts int
	ioInterval time.Duration
	didTimeout bool
	sleep      func(time.Duration)

	// stopVariable is read from the sensor during Init and written back on
	// every start and stop of ranging
	stopVariable uint8

	// started is set while continuous ranging is active
	started bool

	// log logger for debugging
	log *log.Logger
}

// New returns a new VL53L0X sensor instance, initialized and calibrated
func New(i2c *i2c.Options) (*VL53L0X, error) {

	v, err := newWithBus(i2c)

	if err != nil {
		return nil, err
	}

	// finish device setup
	err = v.setup()

	return v, err
}

// NewWithLog creates sensor instance with logger to be used for debugging
func NewWithLog(i2c *i2c.Options, log *log.Logger) (*VL53L0X, error) {

	v, err := newWithBus(i2c)

	if err != nil {
		return nil, err
	}

	// set logger
	v.log = log

	// finish device setup
	err = v.setup()

	return v, err
}

// NewWithBus creates a sensor instance on an arbitrary Bus, such as TinyGoBus.
// A nil logger disables logging.
func NewWithBus(bus Bus, log *log.Logger) (*VL53L0X, error) {

	v, err := newWithBus(bus)

	if err != nil {
		return nil, err
	}

	if log != nil {
		v.log = log
	}

	err = v.setup()

	return v, err
}

// newWithBus returns a new VL53L0X sensor instance without touching the device
func newWithBus(bus Bus) (*VL53L0X, error) {

	if bus == nil {
		return nil, fmt.Errorf("I2C bus is nil")
	}

	if opts, ok := bus.(*i2c.Options); ok {
		if opts == nil || opts.GetAddr() == 0 {
			return nil, fmt.Errorf("I2C device is not initiated")
		}
	}

	v := &VL53L0X{
		bus:        bus,
		ioAttempts: IOAttempts,
		ioInterval: IOInterval,
		sleep:      time.Sleep,
		log:        log.New(io.Discard, "", log.LstdFlags),
	}

	return v, nil
}

// setup completes instance creation and is a common function for New(),
// NewWithLog() and NewWithBus()
func (v *VL53L0X) setup() error {

	v.log.Printf("Starting Setup()")

	if err := v.checkModelID(); err != nil {
		return err
	}

	// initialize device
	err := v.Init()

	if err != nil {
		return fmt.Errorf("Failed to Init device: %w", err)
	}

	v.log.Printf("Device Init()'d")

	return nil
}

// SetAddress change default address of sensor and reopen I2C-connection.  It
// is supported on go-i2c connections and on TinyGoBus.
func (v *VL53L0X) SetAddress(newAddr uint8) error {

	newAddr &= 0x7F

	switch bus := v.bus.(type) {

	case *i2c.Options:

		if err := v.writeReg(I2C_SLAVE_DEVICE_ADDRESS, newAddr); err != nil {
			return err
		}

		// open new connection
		conn, err := i2c.New(newAddr, bus.GetDev())

		if err != nil {
			return err
		}

		// close existing connection
		bus.Close()

		// replace with new connection
		v.bus = conn

	case *TinyGoBus:

		if err := v.writeReg(I2C_SLAVE_DEVICE_ADDRESS, newAddr); err != nil {
			return err
		}

		bus.addr = uint16(newAddr)

	default:
		return fmt.Errorf("SetAddress not supported on bus %T", v.bus)
	}

	v.log.Printf("Address changed to 0x%02X", newAddr)

	return nil
}
