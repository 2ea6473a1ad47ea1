package vl53l0x

import "fmt"

// Calibration stages selected through SYSTEM_SEQUENCE_CONFIG during Init
const (
	sequenceAll          uint8 = 0xFF
	sequenceVHV          uint8 = 0x01
	sequencePhase        uint8 = 0x02
	sequenceDefault      uint8 = 0xE8
	vhvCalibrationInit   uint8 = 0x40
	phaseCalibrationInit uint8 = 0x00
)

// Init initializes the sensor with 2V8 I/O mode, see InitWithPower
func (v *VL53L0X) Init() error {
	return v.InitWithPower(true)
}

// InitWithPower initialize sensor using sequence based on VL53L0X_DataInit(),
// VL53L0X_StaticInit() and VL53L0X_PerformRefCalibration().  On error the
// sensor is left partially configured and Init must be run again from the
// start before ranging.
func (v *VL53L0X) InitWithPower(power2V8 bool) error {

	v.log.Print("Init sensor")

	v.started = false

	err := v.dataInit(power2V8)

	if err != nil {
		return fmt.Errorf("Error on dataInit(), %w", err)
	}

	err = v.staticInit()

	if err != nil {
		return fmt.Errorf("Error on staticInit(), %w", err)
	}

	err = v.refCalibration()

	if err != nil {
		return fmt.Errorf("Error on refCalibration(), %w", err)
	}

	v.log.Print("Init complete")

	return nil
}

// checkModelID verifies the device on the bus is a VL53L0X
func (v *VL53L0X) checkModelID() error {

	model, err := v.readReg(IDENTIFICATION_MODEL_ID)

	if err != nil {
		return err
	}

	if model != ModelID {
		return fmt.Errorf("unexpected model ID: 0x%X", model)
	}

	return nil
}

// dataInit implements VL53L0X_DataInit()
func (v *VL53L0X) dataInit(power2V8 bool) error {

	// sensor uses 1V8 mode for I/O by default; switch to 2V8 mode if requested
	if err := v.setFlag(VHV_CONFIG_PAD_SCL_SDA_EXTSUP_HV, 0, power2V8); err != nil {
		return err
	}

	// set I2C standard mode
	err := v.applyConfig([]regPair{
		{0x88, 0x00},

		{0x80, 0x01}, {PAGE_SELECT, 0x01},
		{SYSRANGE_START, 0x00},
	})

	if err != nil {
		return err
	}

	stop, err := v.readReg(STOP_VARIABLE)

	if err != nil {
		return err
	}

	v.stopVariable = stop

	err = v.applyConfig([]regPair{
		{SYSRANGE_START, 0x01}, {PAGE_SELECT, 0x00},
		{0x80, 0x00},
	})

	if err != nil {
		return err
	}

	// disable SIGNAL_RATE_MSRC (bit 1) and SIGNAL_RATE_PRE_RANGE (bit 4) limit
	// checks
	if err := v.setFlag(MSRC_CONFIG_CONTROL, 1, true); err != nil {
		return err
	}

	if err := v.setFlag(MSRC_CONFIG_CONTROL, 4, true); err != nil {
		return err
	}

	if err := v.SetSignalRateLimit(DefaultSignalRateLimit); err != nil {
		return err
	}

	return v.writeReg(SYSTEM_SEQUENCE_CONFIG, sequenceAll)
}

// staticInit implements VL53L0X_StaticInit(): reference SPAD selection, the
// tuning script and interrupt configuration
func (v *VL53L0X) staticInit() error {

	if err := v.setReferenceSpads(); err != nil {
		return err
	}

	if err := v.applyConfig(tuningSettings); err != nil {
		return fmt.Errorf("tuning settings: %w", err)
	}

	// new sample ready interrupt, active low
	if err := v.writeReg(SYSTEM_INTERRUPT_CONFIG_GPIO, 0x04); err != nil {
		return err
	}

	if err := v.setFlag(GPIO_HV_MUX_ACTIVE_HIGH, 4, false); err != nil {
		return err
	}

	return v.writeReg(SYSTEM_INTERRUPT_CLEAR, 0x01)
}

// refCalibration implements VL53L0X_PerformRefCalibration(), running the VHV
// and phase calibrations in turn
func (v *VL53L0X) refCalibration() error {

	if err := v.writeReg(SYSTEM_SEQUENCE_CONFIG, sequenceVHV); err != nil {
		return err
	}

	if err := v.calibrate(vhvCalibrationInit); err != nil {
		return fmt.Errorf("VHV calibration: %w", err)
	}

	if err := v.writeReg(SYSTEM_SEQUENCE_CONFIG, sequencePhase); err != nil {
		return err
	}

	if err := v.calibrate(phaseCalibrationInit); err != nil {
		return fmt.Errorf("phase calibration: %w", err)
	}

	// restore the previous sequence config
	return v.writeReg(SYSTEM_SEQUENCE_CONFIG, sequenceDefault)
}

// calibrate runs a single reference calibration, based on
// VL53L0X_perform_single_ref_calibration()
func (v *VL53L0X) calibrate(vhvInitByte uint8) error {

	v.log.Printf("Calibrate 0x%02X", vhvInitByte)

	if err := v.writeReg(SYSRANGE_START, 0x01|vhvInitByte); err != nil {
		return err
	}

	err := v.pollReg("calibration", RESULT_INTERRUPT_STATUS, func(val uint8) bool {
		return val&0x07 != 0
	})

	if err != nil {
		return err
	}

	if err := v.writeReg(SYSTEM_INTERRUPT_CLEAR, 0x01); err != nil {
		return err
	}

	return v.writeReg(SYSRANGE_START, 0x00)
}
