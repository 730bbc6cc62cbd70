package rangelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	event := Event{
		Timestamp:        time.Now().UTC().Truncate(time.Microsecond),
		SessionID:        "8c0a1f7e-29a9-4f0e-9f2d-0c7a0b6d5e41",
		Address:          "12:34:56:78:9A:BC",
		ConnectionHandle: 64,
		Category:         CategoryState,
		StateChange: &StateChangeRecord{
			OldState: "WAIT_CONFIG_COMPLETE",
			NewState: "WAIT_SECURITY_ENABLE",
		},
	}

	data, err := EncodeEvent(event)
	require.NoError(t, err)

	decoded, err := DecodeEvent(data)
	require.NoError(t, err)

	assert.Equal(t, event.SessionID, decoded.SessionID)
	assert.Equal(t, event.Address, decoded.Address)
	assert.Equal(t, event.ConnectionHandle, decoded.ConnectionHandle)
	assert.Equal(t, event.Category, decoded.Category)
	require.NotNil(t, decoded.StateChange)
	assert.Equal(t, event.StateChange.OldState, decoded.StateChange.OldState)
	assert.Equal(t, event.StateChange.NewState, decoded.StateChange.NewState)
	assert.True(t, event.Timestamp.Equal(decoded.Timestamp))
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeEvent([]byte{0xff, 0x00, 0x13})
	assert.Error(t, err)
}

func TestFileLoggerWritesDecodableStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranging.cbor")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	logger.Log(Event{
		Timestamp: time.Now(),
		Address:   "12:34:56:78:9A:BC",
		Category:  CategoryCommand,
		Command:   &CommandRecord{Opcode: "LE_CS_CREATE_CONFIG", Status: "SUCCESS"},
	})
	logger.Log(Event{
		Timestamp:   time.Now(),
		Category:    CategoryMeasurement,
		Measurement: &MeasurementRecord{DistanceMeters: 2.5, ConfidenceLevel: 0.9},
	})
	require.NoError(t, logger.Close())

	// Close is idempotent and later writes are dropped.
	require.NoError(t, logger.Close())
	logger.Log(Event{Category: CategoryError})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := NewDecoder(f)

	var first, second Event
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	require.NotNil(t, first.Command)
	assert.Equal(t, "LE_CS_CREATE_CONFIG", first.Command.Opcode)
	require.NotNil(t, second.Measurement)
	assert.InDelta(t, 2.5, second.Measurement.DistanceMeters, 1e-9)

	var third Event
	assert.Error(t, dec.Decode(&third))
}

func TestMultiLoggerFansOut(t *testing.T) {
	var a, b countingLogger

	multi := NewMultiLogger(&a, &b, NoopLogger{})
	multi.Log(Event{Category: CategoryState})
	multi.Log(Event{Category: CategoryError})

	assert.Equal(t, 2, a.count)
	assert.Equal(t, 2, b.count)
}

type countingLogger struct {
	count int
}

func (c *countingLogger) Log(Event) { c.count++ }
