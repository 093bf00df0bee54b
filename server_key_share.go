// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package keyshare

import (
	"fmt"

	"github.com/pion/keyshare/pkg/crypto/elliptic"
	"golang.org/x/crypto/cryptobyte"
)

// ServerKeyShare encodes and decodes the ServerHello side of the key_share
// extension against a connection's State.
//
// KeyShareServerHello { KeyShareEntry server_share; }
type ServerKeyShare struct {
	State *State
}

// SendCheck enforces that a response is only produced after negotiation
// completed and the client provably offered the negotiated curve.
func (s *ServerKeyShare) SendCheck() error {
	curve := s.State.ServerParams.Curve
	if curve == nil {
		return fmt.Errorf("%w: no negotiated curve", ErrMissingKeyShare)
	}

	slot := s.State.clientSlot(curve)
	if slot == nil || slot.Curve == nil || !slot.HasKey() {
		return fmt.Errorf("%w: no client key share for %s", ErrMissingKeyShare, curve.ID)
	}
	if slot.Curve != curve {
		return fmt.Errorf("%w: client share is for %s, negotiated %s",
			ErrInvalidState, slot.Curve.ID, curve.ID)
	}

	return nil
}

// Size returns the encoded extension length in bytes, header included: 0
// before a curve is negotiated, the share size plus the fixed 8 byte
// overhead after. The server sends exactly one entry, so there is no
// client_shares list length.
func (s *ServerKeyShare) Size() int {
	curve := s.State.ServerParams.Curve
	if curve == nil {
		return 0
	}

	// extension type + extension length + group + key_exchange length
	return curve.ShareSize + 8
}

// Marshal runs SendCheck, propagating its failure verbatim, then encodes
// the single negotiated share. The server ephemeral is generated on first
// use; its private half stays in the State for the later derivation.
func (s *ServerKeyShare) Marshal() ([]byte, error) {
	if err := s.SendCheck(); err != nil {
		return nil, err
	}

	if !s.State.ServerParams.HasPrivateKey() {
		if err := s.State.ServerParams.Generate(); err != nil {
			return nil, fmt.Errorf("%w: generating ephemeral key for %s: %v",
				ErrCryptoFailure, s.State.ServerParams.Curve.ID, err)
		}
	}

	var builder cryptobyte.Builder

	builder.AddUint16(extensionTypeKeyShare)
	builder.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddUint16(uint16(s.State.ServerParams.Curve.ID))
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddBytes(s.State.ServerParams.PublicKey)
		})
	})

	raw, err := builder.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailure, err)
	}

	return raw, nil
}

// Unmarshal decodes the peer's single share, extension header included.
func (s *ServerKeyShare) Unmarshal(raw []byte) error {
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

	return s.unmarshalBody(&extData)
}

// unmarshalBody decodes the share the extension header framed. The group
// must be a registry curve this side previously offered, the declared
// length must equal the registry share size exactly, and the reader must
// end up fully consumed. On failure ServerParams is left untouched, so a
// failed recv never leaves a half populated negotiation.
func (s *ServerKeyShare) unmarshalBody(body *cryptobyte.String) error {
	var group, keyLength uint16
	if !body.ReadUint16(&group) || !body.ReadUint16(&keyLength) {
		return fmt.Errorf("%w: truncated server share", ErrBadKeyShare)
	}

	curve, ok := elliptic.CurveByID(elliptic.Curve(group))
	if !ok {
		return fmt.Errorf("%w: unknown group %#04x", ErrBadKeyShare, group)
	}
	if int(keyLength) != curve.ShareSize {
		return fmt.Errorf("%w: %s share length %d, expected %d",
			ErrBadKeyShare, curve.ID, keyLength, curve.ShareSize)
	}

	var point []byte
	if !body.ReadBytes(&point, int(keyLength)) {
		return fmt.Errorf("%w: truncated %s share", ErrBadKeyShare, curve.ID)
	}
	if !body.Empty() {
		return fmt.Errorf("%w: trailing bytes after server share", ErrBadKeyShare)
	}

	slot := s.State.clientSlot(curve)
	if slot == nil || slot.Curve != curve || !slot.HasKey() {
		return fmt.Errorf("%w: %s was never offered", ErrBadKeyShare, curve.ID)
	}

	s.State.ServerParams.SetPeerShare(curve, point)

	return nil
}
