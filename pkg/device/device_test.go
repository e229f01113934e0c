package device_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrared-remote/ir-go/pkg/device"
	"github.com/infrared-remote/ir-go/pkg/ir"
	"github.com/infrared-remote/ir-go/pkg/irtext"
)

func loadFrames(t *testing.T, name string) []ir.DecodedFrame {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	pulses, err := irtext.Parse(string(data))
	require.NoError(t, err)
	frames, err := ir.Segment(pulses)
	require.NoError(t, err)
	decoded, err := ir.DecodeFrames(ir.DemodulateAll(frames))
	require.NoError(t, err)
	return decoded
}

func TestDecodeCaptures(t *testing.T) {
	tests := []struct {
		file string
		want []map[string]string
	}{
		{
			file: "toshiba_tv_power.hex",
			want: []map[string]string{{"manufacturer": "toshiba", "address": "tv", "command": "Power"}},
		},
		{
			file: "toshiba_tv_mute.hex",
			want: []map[string]string{{"manufacturer": "toshiba", "address": "tv", "command": "Mute"}},
		},
		{
			file: "sony_tv_power.hex",
			want: []map[string]string{{"manufacturer": "sony", "address": "TV", "command": "Power"}},
		},
		{
			file: "sirc20_repeated.hex",
			want: []map[string]string{
				{"manufacturer": "sony", "command": "Power", "extended": "2"},
				{"manufacturer": "sony", "command": "Power", "extended": "2"},
				{"manufacturer": "sony", "command": "Power", "extended": "2"},
				{"manufacturer": "sony", "command": "Power", "extended": "2"},
			},
		},
		{
			file: "panasonic_cool_26.hex",
			want: []map[string]string{{
				"manufacturer": "panasonic",
				"mode":         "cool",
				"power":        "on",
				"temperature":  "26",
				"fan_speed":    "auto",
				"swing":        "auto",
				"checksum":     "107",
			}},
		},
		{
			file: "panasonic_dry_16.hex",
			want: []map[string]string{{
				"manufacturer": "panasonic",
				"mode":         "dry",
				"power":        "on",
				"temperature":  "16",
				"fan_speed":    "auto",
				"swing":        "auto",
				"checksum":     "231",
			}},
		},
		{
			file: "daikin_cool_22.json",
			want: []map[string]string{daikinCool22},
		},
		{
			file: "daikin_cool_22.hex",
			want: []map[string]string{daikinCool22},
		},
		{
			file: "hitachi_heat_22.hex",
			want: []map[string]string{{
				"manufacturer":      "hitachi",
				"temperature":       "22",
				"mode":              "heat",
				"fan_speed":         "auto",
				"power":             "on",
				"on_timer_minutes":  "0",
				"off_timer_minutes": "0",
			}},
		},
		{
			file: "mitsubishi_cool_26.hex",
			want: []map[string]string{{
				"manufacturer": "mitsubishi electric",
				"temperature":  "26",
				"mode":         "cool",
				"power":        "on",
				"checksum":     "105",
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			codes := device.Decode(loadFrames(t, tt.file))
			require.Len(t, codes, len(tt.want))
			for i, c := range codes {
				assert.Equal(t, tt.want[i], c.Fields(), "code %d", i)
			}
		})
	}
}

var daikinCool22 = map[string]string{
	"manufacturer":    "daikin",
	"comfort":         "disabled",
	"mode":            "cool",
	"power":           "on",
	"timer_on":        "enabled",
	"timer_off":       "disabled",
	"temperature":     "22",
	"fan_speed":       "notch2",
	"swing":           "enabled",
	"timer_on_hours":  "10",
	"timer_off_hours": "25",
	"powerful":        "disabled",
	"checksum":        "116",
}

func TestDecodeUnrecognised(t *testing.T) {
	for _, file := range []string{"aeha_unknown.hex", "daikin_partial.hex", "panasonic_first_frame_only.hex"} {
		t.Run(file, func(t *testing.T) {
			frames := loadFrames(t, file)
			codes := device.Decode(frames)
			require.Len(t, codes, 1)
			u, ok := codes[0].(device.Unknown)
			require.True(t, ok, "got %T", codes[0])
			assert.Equal(t, frames, u.Frames)
			assert.Empty(t, u.Manufacturer())
		})
	}
}

func TestTypedRecord(t *testing.T) {
	codes := device.Decode(loadFrames(t, "daikin_cool_22.hex"))
	require.Len(t, codes, 1)
	d, ok := codes[0].(device.DaikinHVAC)
	require.True(t, ok)
	assert.Equal(t, device.Celsius(22), d.Temperature)
	require.NotNil(t, d.Mode)
	assert.Equal(t, device.ModeCool, *d.Mode)
	assert.Equal(t, uint16(649), d.OnTimerMinutes)
	assert.Equal(t, uint16(1536), d.OffTimerMinutes)
	assert.Nil(t, d.Econo)
}

func TestRegistryPriority(t *testing.T) {
	frames := loadFrames(t, "toshiba_tv_power.hex")
	first := device.DecoderFunc{DecoderName: "first", Fn: func([]ir.DecodedFrame) []device.ControlCode {
		return []device.ControlCode{device.Unknown{}}
	}}
	r := device.NewRegistry(first, device.ToshibaTVDecoder())
	d, codes := r.Match(frames)
	require.NotNil(t, d)
	assert.Equal(t, "first", d.Name())
	assert.Len(t, codes, 1)

	r = device.NewRegistry()
	d, _ = r.Match(frames)
	assert.Nil(t, d)
	r.Register(device.ToshibaTVDecoder())
	d, _ = r.Match(frames)
	require.NotNil(t, d)
	assert.Equal(t, "toshiba-tv", d.Name())
}

func TestDefaultRegistryOrder(t *testing.T) {
	var names []string
	for _, d := range device.DefaultRegistry().Decoders() {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{
		"toshiba-tv", "sony", "panasonic-hvac", "daikin-hvac", "hitachi-hvac", "mitsubishi-hvac",
	}, names)
}

func TestManufacturerTags(t *testing.T) {
	tests := []struct {
		code device.ControlCode
		want string
	}{
		{device.ToshibaTV{}, "toshiba"},
		{device.SonySIRC{}, "sony"},
		{device.PanasonicHVAC{}, "panasonic"},
		{device.DaikinHVAC{}, "daikin"},
		{device.HitachiHVAC{}, "hitachi"},
		{device.MitsubishiElectricHVAC{}, "mitsubishi electric"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.Manufacturer())
			assert.Equal(t, tt.want, tt.code.Fields()[device.FieldManufacturer])
		})
	}

	u := device.Unknown{Frames: []ir.DecodedFrame{ir.NECRepeat{}, ir.UnknownDecoded{}}}
	assert.Equal(t, map[string]string{
		device.FieldFrames:    "2",
		device.FieldProtocols: "NEC_REPEAT,UNKNOWN",
	}, u.Fields())
}
