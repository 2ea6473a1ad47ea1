package vl53l0x

import "fmt"

// number of low map positions never enabled for aperture SPADs
const apertureExcluded = 12

// spadInfoEnter switches to the NVM read page and requests the reference
// SPAD information
var spadInfoEnter = []regPair{
	{0x80, 0x01}, {PAGE_SELECT, 0x01},
	{SYSRANGE_START, 0x00},
	{PAGE_SELECT, 0x06},
}

var spadInfoRequest = []regPair{
	{PAGE_SELECT, 0x07}, {0x81, 0x01},
	{0x80, 0x01},
	{0x94, 0x6B}, {0x83, 0x00},
}

var spadInfoLeave = []regPair{
	{0x81, 0x00}, {PAGE_SELECT, 0x06},
}

var spadInfoRestore = []regPair{
	{PAGE_SELECT, 0x01}, {SYSRANGE_START, 0x01},
	{PAGE_SELECT, 0x00}, {0x80, 0x00},
}

// decodeSpadInfo splits the NVM SPAD byte into the reference SPAD count and
// the aperture flag
func decodeSpadInfo(b uint8) (count uint8, isAperture bool) {
	return b & 0x7F, b&0x80 != 0
}

// spadInfo reads the factory reference SPAD count and type from the sensor.
// Based on VL53L0X_get_info_from_device() as used by the ST API.
func (v *VL53L0X) spadInfo() (count uint8, isAperture bool, err error) {

	if err := v.applyConfig(spadInfoEnter); err != nil {
		return 0, false, err
	}

	if err := v.setFlag(0x83, 3, true); err != nil {
		return 0, false, err
	}

	if err := v.applyConfig(spadInfoRequest); err != nil {
		return 0, false, err
	}

	err = v.pollReg("SPAD info", 0x83, func(val uint8) bool { return val != 0 })

	if err != nil {
		return 0, false, err
	}

	if err := v.writeReg(0x83, 0x01); err != nil {
		return 0, false, err
	}

	val, err := v.readReg(0x92)

	if err != nil {
		return 0, false, err
	}

	if err := v.applyConfig(spadInfoLeave); err != nil {
		return 0, false, err
	}

	if err := v.setFlag(0x83, 3, false); err != nil {
		return 0, false, err
	}

	if err := v.applyConfig(spadInfoRestore); err != nil {
		return 0, false, err
	}

	count, isAperture = decodeSpadInfo(val)

	return count, isAperture, nil
}

// buildSpadMap caps the number of enabled reference SPADs in spadMap at count.
// Enabled positions are kept in order until count is reached, every later one
// is cleared, and for aperture SPADs the first twelve positions are always
// cleared.
//
// Positions are addressed as bit i>>2 of byte i/8, which is the indexing the
// reference firmware traces were captured with.  It does not visit all 48
// bits of the map and must not be changed without new hardware traces.
func buildSpadMap(count uint8, isAperture bool, spadMap *[spadMapSize]byte) (enabled uint8) {

	for i := 0; i < spadMapSize*8; i++ {

		mask := byte(1) << (i >> 2)

		if (isAperture && i < apertureExcluded) || enabled >= count {
			spadMap[i/8] &^= mask
		} else if spadMap[i/8]&mask != 0 {
			enabled++
		}
	}

	return enabled
}

// setReferenceSpads reads the SPAD enable map, limits it to the factory count
// and writes it back
func (v *VL53L0X) setReferenceSpads() error {

	count, isAperture, err := v.spadInfo()

	if err != nil {
		return fmt.Errorf("spad info: %w", err)
	}

	v.log.Printf("Reference SPADs: count=%d aperture=%t", count, isAperture)

	var spadMap [spadMapSize]byte

	if err := v.readRegBytes(GLOBAL_CONFIG_SPAD_ENABLES_REF_0, spadMap[:]); err != nil {
		return fmt.Errorf("read spad map: %w", err)
	}

	err = v.applyConfig([]regPair{
		{PAGE_SELECT, 0x01},
		{DYNAMIC_SPAD_REF_EN_START_OFFSET, 0x00},
		{DYNAMIC_SPAD_NUM_REQUESTED_REF_SPAD, 0x2C},
		{PAGE_SELECT, 0x00},
		{GLOBAL_CONFIG_REF_EN_START_SELECT, 0xB4},
	})

	if err != nil {
		return err
	}

	enabled := buildSpadMap(count, isAperture, &spadMap)

	v.log.Printf("Reference SPAD map % X, %d enabled", spadMap[:], enabled)

	return v.writeRegBytes(GLOBAL_CONFIG_SPAD_ENABLES_REF_0, spadMap[:])
}
