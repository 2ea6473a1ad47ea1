package vl53l0x

import "fmt"

// Values written to SYSRANGE_START
const (
	modeSingleShot      uint8 = 0x01
	modeBackToBack      uint8 = 0x02
	modeTimed           uint8 = 0x04
	interruptStatusMask uint8 = 0x07
	startBitMask        uint8 = 0x01
	clearRangeInterrupt uint8 = 0x01
)

// restoreStopVariable returns the script writing the saved stop variable back
// to the sensor before ranging starts
func (v *VL53L0X) restoreStopVariable() []regPair {
	return []regPair{
		{0x80, 0x01}, {PAGE_SELECT, 0x01},
		{SYSRANGE_START, 0x00}, {STOP_VARIABLE, v.stopVariable},
		{SYSRANGE_START, 0x01}, {PAGE_SELECT, 0x00},
		{0x80, 0x00},
	}
}

// Started reports whether continuous ranging is active
func (v *VL53L0X) Started() bool {
	return v.started
}

// StartContinuous begins continuous ranging.  With a zero period the sensor
// ranges back to back as fast as possible, otherwise a new measurement is
// started every periodMs milliseconds.
func (v *VL53L0X) StartContinuous(periodMs uint32) error {

	v.log.Printf("Start continuous mode, period %dms", periodMs)

	if err := v.applyConfig(v.restoreStopVariable()); err != nil {
		return err
	}

	if periodMs != 0 {

		oscCal, err := v.readReg16Bit(OSC_CALIBRATE_VAL)

		if err != nil {
			return err
		}

		period := periodMs

		if oscCal != 0 {
			period *= uint32(oscCal)
		}

		// the register is 16 bits wide and keeps only the low bits of the
		// scaled period
		if err := v.writeReg16Bit(SYSTEM_INTERMEASUREMENT_PERIOD, uint16(period)); err != nil {
			return err
		}

		if err := v.writeReg(SYSRANGE_START, modeTimed); err != nil {
			return err
		}

	} else {

		if err := v.writeReg(SYSRANGE_START, modeBackToBack); err != nil {
			return err
		}
	}

	v.started = true

	return nil
}

// StopContinuous stops continuous ranging.
func (v *VL53L0X) StopContinuous() error {

	v.log.Print("Stop continuous mode")

	if err := v.writeReg(SYSRANGE_START, modeSingleShot); err != nil {
		return err
	}

	err := v.applyConfig([]regPair{
		{PAGE_SELECT, 0x01}, {SYSRANGE_START, 0x00},
		{STOP_VARIABLE, v.stopVariable}, {SYSRANGE_START, 0x01},
		{PAGE_SELECT, 0x00},
	})

	if err != nil {
		return err
	}

	v.started = false

	return nil
}

// Read returns a range reading in millimeters.  When continuous ranging is
// not active a single-shot measurement is triggered first.  It blocks until
// the measurement is available or the poll bound is reached, in which case
// the error wraps ErrTimeout.
func (v *VL53L0X) Read() (uint16, error) {

	if !v.started {

		script := append(v.restoreStopVariable(), regPair{SYSRANGE_START, modeSingleShot})

		if err := v.applyConfig(script); err != nil {
			return 0, err
		}

		err := v.pollReg("single-shot start", SYSRANGE_START, func(val uint8) bool {
			return val&startBitMask == 0
		})

		if err != nil {
			return 0, err
		}
	}

	err := v.pollReg("range data", RESULT_INTERRUPT_STATUS, func(val uint8) bool {
		return val&interruptStatusMask != 0
	})

	if err != nil {
		return 0, err
	}

	rangeMM, err := v.readReg16Bit(RESULT_RANGE_STATUS + resultRangeOffset)

	if err != nil {
		return 0, err
	}

	if err := v.writeReg(SYSTEM_INTERRUPT_CLEAR, clearRangeInterrupt); err != nil {
		return 0, err
	}

	return rangeMM, nil
}

// ReadRangeContinuousMillimeters returns a range reading in millimeters
// when continuous mode is active
func (v *VL53L0X) ReadRangeContinuousMillimeters() (uint16, error) {

	if !v.started {
		return 0, fmt.Errorf("continuous mode not started")
	}

	return v.Read()
}

// ReadRangeSingleMillimeters performs a single-shot range measurement and
// returns the reading in millimeters
func (v *VL53L0X) ReadRangeSingleMillimeters() (uint16, error) {

	if v.started {
		return 0, fmt.Errorf("single-shot read while continuous mode active")
	}

	return v.Read()
}
