package vl53l0x

import "fmt"

const (
	// Ranging mode control
	SYSRANGE_START uint8 = 0x00

	// Sequence step enables, selects calibration stage during Init
	SYSTEM_SEQUENCE_CONFIG uint8 = 0x01

	// Continuous timed mode inter-measurement period
	SYSTEM_INTERMEASUREMENT_PERIOD uint8 = 0x04

	// Interrupt configuration
	SYSTEM_INTERRUPT_CONFIG_GPIO uint8 = 0x0A
	SYSTEM_INTERRUPT_CLEAR       uint8 = 0x0B
	GPIO_HV_MUX_ACTIVE_HIGH      uint8 = 0x84

	// Result registers
	RESULT_INTERRUPT_STATUS uint8 = 0x13
	RESULT_RANGE_STATUS     uint8 = 0x14

	// Signal rate limit in MCPS, 9.7 fixed point
	FINAL_RANGE_CONFIG_MIN_COUNT_RATE_RTN_LIMIT uint8 = 0x44

	// Reference SPAD configuration
	DYNAMIC_SPAD_NUM_REQUESTED_REF_SPAD uint8 = 0x4E
	DYNAMIC_SPAD_REF_EN_START_OFFSET    uint8 = 0x4F
	GLOBAL_CONFIG_SPAD_ENABLES_REF_0    uint8 = 0xB0
	GLOBAL_CONFIG_REF_EN_START_SELECT   uint8 = 0xB6

	// Limit check enables for the MSRC and pre-range signal rate
	MSRC_CONFIG_CONTROL uint8 = 0x60

	// I/O voltage selection register
	VHV_CONFIG_PAD_SCL_SDA_EXTSUP_HV uint8 = 0x89

	// Internal register holding the stop variable (page 1)
	STOP_VARIABLE uint8 = 0x91

	// I2C address configuration
	I2C_SLAVE_DEVICE_ADDRESS uint8 = 0x8A

	// Identification
	IDENTIFICATION_MODEL_ID uint8 = 0xC0

	// Oscillator calibration value used to scale the measurement period
	OSC_CALIBRATE_VAL uint8 = 0xF8

	// Page select, writes change the bank subsequent addresses refer to
	PAGE_SELECT uint8 = 0xFF

	// Offset of the range in millimeters within the result block
	resultRangeOffset uint8 = 10

	// Number of bytes in the reference SPAD enable map
	spadMapSize = 6
)

// regPair is a single register write in a configuration script
type regPair struct {
	reg uint8
	val uint8
}

// writeReg writes a 8 bit value to the register
func (v *VL53L0X) writeReg(reg uint8, value uint8) error {

	buf := []byte{reg, value}

	if _, err := v.bus.WriteBytes(buf); err != nil {
		return err
	}

	return nil
}

// writeReg16Bit writes a 16 bit big-endian value to the register
func (v *VL53L0X) writeReg16Bit(reg uint8, value uint16) error {

	buf := []byte{reg, byte(value >> 8), byte(value)}

	if _, err := v.bus.WriteBytes(buf); err != nil {
		return err
	}

	return nil
}

// writeRegBytes writes data starting at the register, relying on the sensor's
// address auto-increment
func (v *VL53L0X) writeRegBytes(reg uint8, data []byte) error {

	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, reg)
	buf = append(buf, data...)

	if _, err := v.bus.WriteBytes(buf); err != nil {
		return err
	}

	return nil
}

// readReg reads an 8-bit value from the register.
func (v *VL53L0X) readReg(reg uint8) (uint8, error) {

	buf := make([]byte, 1)

	if err := v.readRegBytes(reg, buf); err != nil {
		return 0, fmt.Errorf("readReg: %w", err)
	}

	return buf[0], nil
}

// readReg16Bit reads a 16-bit big-endian value from the register.
func (v *VL53L0X) readReg16Bit(reg uint8) (uint16, error) {

	buf := make([]byte, 2)

	if err := v.readRegBytes(reg, buf); err != nil {
		return 0, fmt.Errorf("readReg16Bit: %w", err)
	}

	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// readRegBytes fills buf with consecutive bytes starting at the register
func (v *VL53L0X) readRegBytes(reg uint8, buf []byte) error {

	// Write the register address.
	if _, err := v.bus.WriteBytes([]byte{reg}); err != nil {
		return err
	}

	n, err := v.bus.ReadBytes(buf)

	if err != nil {
		return err
	}

	if n < len(buf) {
		return fmt.Errorf("insufficient data, read %d of %d bytes", n, len(buf))
	}

	return nil
}

// getFlag reports whether the given bit of the register is set
func (v *VL53L0X) getFlag(reg uint8, bit uint) (bool, error) {

	val, err := v.readReg(reg)

	if err != nil {
		return false, err
	}

	return val&(1<<bit) != 0, nil
}

// setFlag sets or clears a single bit of the register, leaving the other bits
// untouched
func (v *VL53L0X) setFlag(reg uint8, bit uint, on bool) error {

	val, err := v.readReg(reg)

	if err != nil {
		return err
	}

	if on {
		val |= 1 << bit
	} else {
		val &^= 1 << bit
	}

	return v.writeReg(reg, val)
}

// applyConfig writes the register pairs in order.  It stops at the first
// failure and leaves the earlier writes in place.
func (v *VL53L0X) applyConfig(pairs []regPair) error {

	for _, p := range pairs {
		if err := v.writeReg(p.reg, p.val); err != nil {
			return fmt.Errorf("write 0x%02X=0x%02X: %w", p.reg, p.val, err)
		}
	}

	return nil
}
