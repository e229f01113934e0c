package device

import (
	"strconv"
	"strings"

	"github.com/infrared-remote/ir-go/pkg/ir"
)

// Field names used in ControlCode.Fields.
const (
	FieldManufacturer    = "manufacturer"
	FieldAddress         = "address"
	FieldCommand         = "command"
	FieldExtended        = "extended"
	FieldMode            = "mode"
	FieldPower           = "power"
	FieldTemperature     = "temperature"
	FieldFanSpeed        = "fan_speed"
	FieldSwing           = "swing"
	FieldChecksum        = "checksum"
	FieldProfile         = "profile"
	FieldComfort         = "comfort"
	FieldPowerful        = "powerful"
	FieldEcono           = "econo"
	FieldTimerOn         = "timer_on"
	FieldTimerOnHours    = "timer_on_hours"
	FieldTimerOff        = "timer_off"
	FieldTimerOffHours   = "timer_off_hours"
	FieldOnTimerMinutes  = "on_timer_minutes"
	FieldOffTimerMinutes = "off_timer_minutes"
	FieldFrames          = "frames"
	FieldProtocols       = "protocols"
)

// ControlCode is the semantic result of decoding a transmission.
// The concrete type is one of the per-device records or Unknown.
type ControlCode interface {
	// Manufacturer returns the manufacturer tag, empty for Unknown.
	Manufacturer() string

	// Fields returns the code as a field name to value mapping.
	// Unset optional fields are absent.
	Fields() map[string]string

	controlCode()
}

// Unknown wraps frames no decoder recognised.
type Unknown struct {
	Frames []ir.DecodedFrame
}

// Manufacturer is empty for unrecognised frames.
func (Unknown) Manufacturer() string { return "" }

// Fields reports the frame count and the comma-separated frame protocols.
func (u Unknown) Fields() map[string]string {
	protocols := make([]string, len(u.Frames))
	for i, f := range u.Frames {
		protocols[i] = f.Protocol().String()
	}
	return map[string]string{
		FieldFrames:    strconv.Itoa(len(u.Frames)),
		FieldProtocols: strings.Join(protocols, ","),
	}
}

func (Unknown) controlCode() {}

// fieldSet accumulates Fields output.
type fieldSet map[string]string

func newFieldSet(manufacturer string) fieldSet {
	return fieldSet{FieldManufacturer: manufacturer}
}

func (f fieldSet) set(key string, v interface{ String() string }) {
	f[key] = v.String()
}

func (f fieldSet) setUint(key string, v uint) {
	f[key] = uitoa(v)
}

// setOpt stores v when it is non-nil.
func setOpt[T interface{ String() string }](f fieldSet, key string, v *T) {
	if v != nil {
		f[key] = (*v).String()
	}
}

// lookup returns a pointer to m[k], or nil when k is absent.
func lookup[K comparable, V any](m map[K]V, k K) *V {
	v, ok := m[k]
	if !ok {
		return nil
	}
	return &v
}

func uitoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
