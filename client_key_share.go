// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package keyshare

import (
	"fmt"

	"github.com/pion/keyshare/pkg/crypto/elliptic"
	"golang.org/x/crypto/cryptobyte"
)

// ClientKeyShare encodes and decodes the ClientHello side of the key_share
// extension against a connection's State.
//
// KeyShareClientHello { KeyShareEntry client_shares<0..2^16-1>; }
type ClientKeyShare struct {
	State *State
}

// Size returns the encoded extension length in bytes, header included, or 0
// when no slot holds key material.
func (c *ClientKeyShare) Size() int {
	size := 0
	for i := range c.State.ClientParams {
		params := &c.State.ClientParams[i]
		if params.Curve == nil || !params.HasKey() {
			continue
		}
		// group + key_exchange length + point
		size += 4 + params.Curve.ShareSize
	}
	if size == 0 {
		return 0
	}

	// extension type + extension length + client_shares length
	return size + 6
}

// Marshal encodes the extension. Slots without key material are skipped;
// callers generate offers first via State.GenerateOffers.
func (c *ClientKeyShare) Marshal() ([]byte, error) {
	var builder cryptobyte.Builder

	builder.AddUint16(extensionTypeKeyShare)
	builder.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			for i := range c.State.ClientParams {
				params := &c.State.ClientParams[i]
				if params.Curve == nil || !params.HasKey() {
					continue
				}

				b.AddUint16(uint16(params.Curve.ID))
				b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
					b.AddBytes(params.PublicKey)
				})
			}
		})
	})

	raw, err := builder.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailure, err)
	}

	return raw, nil
}

// Unmarshal parses a peer's client_shares list and records every offered
// public point in the matching registry slot. An unknown group, a length
// mismatch, truncation, or trailing bytes fail the whole parse; entries are
// never skipped. On failure no slot is modified.
func (c *ClientKeyShare) Unmarshal(raw []byte) error {
	val := cryptobyte.String(raw)

	var extensionType uint16
	if !val.ReadUint16(&extensionType) {
		return errBufferTooSmall
	}
	if extensionType != extensionTypeKeyShare {
		return errInvalidExtensionType
	}

	var extData cryptobyte.String
	if !val.ReadUint16LengthPrefixed(&extData) || !val.Empty() {
		return fmt.Errorf("%w: bad extension framing", ErrBadKeyShare)
	}

	var shares cryptobyte.String
	if !extData.ReadUint16LengthPrefixed(&shares) || !extData.Empty() {
		return fmt.Errorf("%w: bad client_shares framing", ErrBadKeyShare)
	}

	type offer struct {
		curve *elliptic.SupportedCurve
		point []byte
	}
	var offers []offer

	for !shares.Empty() {
		var group uint16
		var point cryptobyte.String
		if !shares.ReadUint16(&group) || !shares.ReadUint16LengthPrefixed(&point) {
			return fmt.Errorf("%w: truncated client share entry", ErrBadKeyShare)
		}

		curve, ok := elliptic.CurveByID(elliptic.Curve(group))
		if !ok {
			return fmt.Errorf("%w: unknown group %#04x", ErrBadKeyShare, group)
		}
		if len(point) != curve.ShareSize {
			return fmt.Errorf("%w: %s share is %d bytes, expected %d",
				ErrBadKeyShare, curve.ID, len(point), curve.ShareSize)
		}

		offers = append(offers, offer{curve, append([]byte(nil), point...)})
	}

	c.State.ensureClientSlots()
	for _, o := range offers {
		c.State.clientSlot(o.curve).SetPeerShare(o.curve, o.point)
	}

	return nil
}
