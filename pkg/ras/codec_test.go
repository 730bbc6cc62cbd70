package ras

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hal"
)

func TestBootstrapDataRoundTrip(t *testing.T) {
	in := []hal.VendorSpecificCharacteristic{
		{CharacteristicUUID: uuid.MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e"), Value: []byte{0x01, 0x02}},
		{CharacteristicUUID: uuid.MustParse("6e400002-b5a3-f393-e0a9-e50e24dcca9e"), Value: nil},
	}

	data, err := EncodeBootstrapData(in)
	require.NoError(t, err)

	out, err := DecodeBootstrapData(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, in[0].CharacteristicUUID, out[0].CharacteristicUUID)
	require.True(t, bytes.Equal(in[0].Value, out[0].Value))
	require.Equal(t, in[1].CharacteristicUUID, out[1].CharacteristicUUID)
	require.Empty(t, out[1].Value)
}

func TestEncodeBootstrapDataEmpty(t *testing.T) {
	data, err := EncodeBootstrapData(nil)
	require.NoError(t, err)

	out, err := DecodeBootstrapData(data)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDecodeBootstrapDataGarbage(t *testing.T) {
	_, err := DecodeBootstrapData([]byte{0xFF, 0x00, 0x13})
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestDecodeBootstrapDataBadUUID(t *testing.T) {
	// A payload with a truncated UUID must be rejected, not passed through.
	raw, err := cbor.Marshal(bootstrapPayload{
		Characteristics: []bootstrapCharacteristic{{UUID: []byte{0x01, 0x02}}},
	})
	require.NoError(t, err)

	_, err = DecodeBootstrapData(raw)
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestDecodeBootstrapDataTooLarge(t *testing.T) {
	_, err := DecodeBootstrapData(make([]byte, MaxBootstrapPayload+1))
	require.True(t, errors.Is(err, ErrPayloadTooLarge))
}
