package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/swdee/go-i2c"
	"github.com/swdee/go-vl53l0x"
)

func main() {

	cfgPath := flag.String("c", "", "Path to YAML config file")
	i2cbus := flag.String("b", "", "Path to I2C bus to use, overrides config")
	verbose := flag.Bool("v", false, "Log sensor initialization steps")
	flag.Parse()

	cfg := defaultConfig()

	if *cfgPath != "" {
		var err error
		cfg, err = Load(*cfgPath)

		if err != nil {
			log.Fatalf("Load config: %v", err)
		}
	}

	if *i2cbus != "" {
		cfg.Bus = *i2cbus
	}

	// run returns instead of exiting so the XSHUT line and bus are released
	if err := run(cfg, *verbose); err != nil {
		log.Fatal(err)
	}
}

// run initializes the sensor and prints cfg.Samples readings
func run(cfg Config, verbose bool) error {

	// hold the sensor in reset and release it so it starts from a known state
	if cfg.XShut.Enable {
		release, err := resetSensor(cfg.XShut.Chip, cfg.XShut.Line)

		if err != nil {
			return fmt.Errorf("XSHUT reset failed: %w", err)
		}

		defer release()
	}

	// Open I2C bus
	conn, err := i2c.New(cfg.Address, cfg.Bus)

	if err != nil {
		return err
	}

	defer conn.Close()

	sensorLog := log.New(io.Discard, "", 0)

	if verbose {
		sensorLog = log.New(os.Stderr, "vl53l0x: ", log.LstdFlags)
	}

	// create new sensor instance, this runs Init and both calibrations
	sensor, err := vl53l0x.NewWithLog(conn, sensorLog)

	if err != nil {
		return err
	}

	sensor.SetTimeout(cfg.Timeout)

	if cfg.SignalRateLimit > 0 {
		if err := sensor.SetSignalRateLimit(cfg.SignalRateLimit); err != nil {
			return fmt.Errorf("Set signal rate limit failed: %w", err)
		}
	}

	continuous := cfg.Continuous || cfg.PeriodMs > 0

	if continuous {
		if err := sensor.StartContinuous(cfg.PeriodMs); err != nil {
			return fmt.Errorf("Start continuous failed: %w", err)
		}
	}

	// Read measurements
	for i := 0; i < cfg.Samples; i++ {

		mm, err := sensor.Read()

		if err != nil {
			log.Printf("Read error: %v", err)
		} else {
			fmt.Printf("Distance: %d mm\n", mm)
		}

		time.Sleep(cfg.Interval)
	}

	if continuous {
		if err := sensor.StopContinuous(); err != nil {
			return fmt.Errorf("Stop continuous failed: %w", err)
		}
	}

	return nil
}
