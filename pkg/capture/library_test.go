package capture_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrared-remote/ir-go/pkg/capture"
	"github.com/infrared-remote/ir-go/pkg/device"
	"github.com/infrared-remote/ir-go/pkg/ir"
)

func mustBits(t *testing.T, s string) ir.Bits {
	t.Helper()
	b, err := ir.ParseBits(s)
	require.NoError(t, err)
	return b
}

func powerFrames(t *testing.T) []ir.DemodulatedFrame {
	return []ir.DemodulatedFrame{ir.SIRCFrame{Bits: mustBits(t, "101010010000")}}
}

func TestFingerprint(t *testing.T) {
	a, err := capture.Fingerprint(powerFrames(t))
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := capture.Fingerprint(powerFrames(t))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := capture.Fingerprint([]ir.DemodulatedFrame{ir.SIRCFrame{Bits: mustBits(t, "001010010000")}})
	require.NoError(t, err)
	assert.NotEqual(t, a, other)

	unknown, err := capture.Fingerprint([]ir.DemodulatedFrame{ir.UnknownFrame{Pulses: []ir.Pulse{{Mark: 1, Space: 2}}}})
	require.NoError(t, err)
	assert.NotEqual(t, a, unknown)
}

func TestNewEntry(t *testing.T) {
	frames := powerFrames(t)
	decoded, err := ir.DecodeFrames(frames)
	require.NoError(t, err)
	codes := device.Decode(decoded)

	e, err := capture.NewEntry("tv power", "hex", "5B00...", frames, codes)
	require.NoError(t, err)
	assert.Equal(t, []string{"SIRC"}, e.Protocols)
	require.Len(t, e.Codes, 1)
	assert.Equal(t, "Power", e.Codes[0]["command"])
	assert.Empty(t, e.ID)
}

func TestStore(t *testing.T) {
	t.Run("LoadNonExistent", func(t *testing.T) {
		store := capture.NewStore(filepath.Join(t.TempDir(), "captures.json"))
		lib, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, capture.LibraryVersion, lib.Version)
		assert.Empty(t, lib.Entries)
	})

	t.Run("AddGetRemove", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "captures.json")
		store := capture.NewStore(path)

		e, err := capture.NewEntry("tv power", "hex", "5B00", powerFrames(t), nil)
		require.NoError(t, err)

		added, err := store.Add(e)
		require.NoError(t, err)
		_, err = uuid.Parse(added.ID)
		assert.NoError(t, err, "ID should be a UUID")
		assert.False(t, added.SavedAt.IsZero())

		byName, err := store.Get("tv power")
		require.NoError(t, err)
		assert.Equal(t, added.ID, byName.ID)

		byID, err := store.Get(added.ID)
		require.NoError(t, err)
		assert.Equal(t, "tv power", byID.Name)

		require.NoError(t, store.Remove(added.ID))
		_, err = store.Get(added.ID)
		assert.True(t, errors.Is(err, capture.ErrNotFound))
		assert.ErrorIs(t, store.Remove(added.ID), capture.ErrNotFound)
	})

	t.Run("Duplicate", func(t *testing.T) {
		store := capture.NewStore(filepath.Join(t.TempDir(), "captures.json"))
		e, err := capture.NewEntry("first", "", "x", powerFrames(t), nil)
		require.NoError(t, err)
		first, err := store.Add(e)
		require.NoError(t, err)

		e.Name = "second"
		existing, err := store.Add(e)
		assert.ErrorIs(t, err, capture.ErrDuplicate)
		assert.Equal(t, first.ID, existing.ID)

		entries, err := store.List()
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("NameRequired", func(t *testing.T) {
		store := capture.NewStore(filepath.Join(t.TempDir(), "captures.json"))
		_, err := store.Add(capture.Entry{})
		assert.ErrorIs(t, err, capture.ErrNoName)
	})

	t.Run("Clear", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "captures.json")
		store := capture.NewStore(path)
		require.NoError(t, store.Save(&capture.Library{}))
		require.NoError(t, store.Clear())
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
		assert.NoError(t, store.Clear(), "Clear on missing file")
	})

	t.Run("CorruptFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "captures.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		_, err := capture.NewStore(path).Load()
		assert.Error(t, err)
	})
}
