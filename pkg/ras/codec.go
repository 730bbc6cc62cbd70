package ras

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hal"
)

// MaxBootstrapPayload bounds the encoded bootstrap payload size.
const MaxBootstrapPayload = 65536

// Codec errors.
var (
	ErrInvalidPayload  = errors.New("ras: invalid bootstrap payload")
	ErrPayloadTooLarge = errors.New("ras: bootstrap payload too large")
)

// bootstrapPayload is the wire form of the vendor bootstrap exchange.
// CBOR integer keys keep the GATT writes compact.
type bootstrapPayload struct {
	Characteristics []bootstrapCharacteristic `cbor:"1,keyasint"`
}

type bootstrapCharacteristic struct {
	UUID  []byte `cbor:"1,keyasint"`
	Value []byte `cbor:"2,keyasint,omitempty"`
}

// EncodeBootstrapData encodes vendor characteristics for transfer over the
// Ranging Service.
func EncodeBootstrapData(chars []hal.VendorSpecificCharacteristic) ([]byte, error) {
	p := bootstrapPayload{}
	for _, c := range chars {
		u := c.CharacteristicUUID
		p.Characteristics = append(p.Characteristics, bootstrapCharacteristic{
			UUID:  u[:],
			Value: c.Value,
		})
	}
	data, err := cbor.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("ras: failed to encode bootstrap payload: %w", err)
	}
	if len(data) > MaxBootstrapPayload {
		return nil, ErrPayloadTooLarge
	}
	return data, nil
}

// DecodeBootstrapData decodes a bootstrap payload received over the Ranging
// Service.
func DecodeBootstrapData(data []byte) ([]hal.VendorSpecificCharacteristic, error) {
	if len(data) > MaxBootstrapPayload {
		return nil, ErrPayloadTooLarge
	}
	var p bootstrapPayload
	if err := cbor.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var chars []hal.VendorSpecificCharacteristic
	for _, c := range p.Characteristics {
		u, err := uuid.FromBytes(c.UUID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad characteristic uuid: %v", ErrInvalidPayload, err)
		}
		chars = append(chars, hal.VendorSpecificCharacteristic{
			CharacteristicUUID: u,
			Value:              c.Value,
		})
	}
	return chars, nil
}
