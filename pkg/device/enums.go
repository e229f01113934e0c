package device

// HVACMode is an air conditioner operating mode.
type HVACMode uint8

const (
	ModeAuto HVACMode = iota
	ModeDry
	ModeCool
	ModeHeat
	ModeFan
	ModeDryCool
	ModeDehumidify
	ModeAutoDehumidifying
	ModeQuickLaundry
	ModeCondensationControl
)

var hvacModeNames = map[HVACMode]string{
	ModeAuto:                "auto",
	ModeDry:                 "dry",
	ModeCool:                "cool",
	ModeHeat:                "heat",
	ModeFan:                 "fan",
	ModeDryCool:             "dry_cool",
	ModeDehumidify:          "dehumidify",
	ModeAutoDehumidifying:   "auto_dehumidifying",
	ModeQuickLaundry:        "quick_laundry",
	ModeCondensationControl: "condensation_control",
}

func (m HVACMode) String() string {
	if name, ok := hvacModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// FanSpeed is an air conditioner fan setting.
type FanSpeed uint8

const (
	FanAuto FanSpeed = iota
	FanSilent
	FanSlowest
	FanNotch1
	FanNotch2
	FanNotch3
	FanNotch4
	FanNotch5
	FanLow
	FanMedium
	FanHigh
)

var fanSpeedNames = map[FanSpeed]string{
	FanAuto:    "auto",
	FanSilent:  "silent",
	FanSlowest: "slowest",
	FanNotch1:  "notch1",
	FanNotch2:  "notch2",
	FanNotch3:  "notch3",
	FanNotch4:  "notch4",
	FanNotch5:  "notch5",
	FanLow:     "low",
	FanMedium:  "med",
	FanHigh:    "high",
}

func (f FanSpeed) String() string {
	if name, ok := fanSpeedNames[f]; ok {
		return name
	}
	return "unknown"
}

// Swing is a louver position setting.
type Swing uint8

const (
	SwingAuto Swing = iota
	SwingHorizontal
	SwingNotch2
	SwingNotch3
	SwingNotch4
	SwingNotch5
)

var swingNames = map[Swing]string{
	SwingAuto:       "auto",
	SwingHorizontal: "horizontal",
	SwingNotch2:     "notch2",
	SwingNotch3:     "notch3",
	SwingNotch4:     "notch4",
	SwingNotch5:     "notch5",
}

func (s Swing) String() string {
	if name, ok := swingNames[s]; ok {
		return name
	}
	return "unknown"
}

// Power is an on/off switch state.
type Power bool

const (
	PowerOff Power = false
	PowerOn  Power = true
)

func (p Power) String() string {
	if p {
		return "on"
	}
	return "off"
}

// Toggle is an enabled/disabled feature state.
type Toggle bool

const (
	Disabled Toggle = false
	Enabled  Toggle = true
)

func (t Toggle) String() string {
	if t {
		return "enabled"
	}
	return "disabled"
}

// Celsius is a set point temperature in degrees Celsius.
type Celsius uint8

func (c Celsius) String() string {
	return uitoa(uint(c))
}
