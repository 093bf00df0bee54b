// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package keyshare implements the TLS 1.3 "key_share" extension exchange
// (RFC 8446 section 4.2.8) and the ECDHE key agreement it carries.
package keyshare

import (
	"fmt"

	"github.com/pion/keyshare/pkg/crypto/elliptic"
)

// extensionTypeKeyShare is the IANA code point for the key_share extension.
const extensionTypeKeyShare uint16 = 51

// State is the per connection security context of the exchange. It is owned
// by the single goroutine driving the handshake and is not safe for
// concurrent use.
type State struct {
	// ServerParams holds the negotiated curve and the server's share: the
	// full keypair on the side that generated it, the public half on the
	// side that received it. Its curve reference is the single source of
	// truth for the negotiated curve.
	ServerParams elliptic.Params

	// ClientParams has one slot per registry entry, in registry order. Each
	// slot stores its curve reference next to the key material, so the
	// slot/curve pairing stays explicit. A slot holds either our own
	// speculative keypair (client side) or the peer's decoded public point
	// (server side).
	ClientParams []elliptic.Params
}

// NewState creates an empty security context with one client slot per
// registry curve.
func NewState() *State {
	return &State{ClientParams: make([]elliptic.Params, len(elliptic.SupportedCurves()))}
}

// ensureClientSlots makes a zero value State usable by growing the slot
// array to the registry size.
func (s *State) ensureClientSlots() {
	if n := len(elliptic.SupportedCurves()); len(s.ClientParams) < n {
		s.ClientParams = append(s.ClientParams, make([]elliptic.Params, n-len(s.ClientParams))...)
	}
}

// clientSlot returns the slot paired with the given registry curve.
func (s *State) clientSlot(curve *elliptic.SupportedCurve) *elliptic.Params {
	for i, c := range elliptic.SupportedCurves() {
		if c == curve && i < len(s.ClientParams) {
			return &s.ClientParams[i]
		}
	}

	return nil
}

// NegotiatedCurve returns the negotiated curve, or nil before negotiation.
func (s *State) NegotiatedCurve() *elliptic.SupportedCurve {
	return s.ServerParams.Curve
}

// GenerateOffers creates ephemeral keypairs for the given registry curves,
// or for the whole registry when none are given. Offering is always this
// explicit step; decoding a peer's shares never generates keys.
func (s *State) GenerateOffers(curves ...*elliptic.SupportedCurve) error {
	s.ensureClientSlots()
	if len(curves) == 0 {
		curves = elliptic.SupportedCurves()
	}

	for _, curve := range curves {
		slot := s.clientSlot(curve)
		if slot == nil {
			return fmt.Errorf("%w: %s is not a registry curve", ErrInvalidState, curve.ID)
		}
		if slot.HasPrivateKey() {
			continue
		}

		slot.Curve = curve
		if err := slot.Generate(); err != nil {
			slot.Reset()

			return fmt.Errorf("%w: generating ephemeral key for %s: %v", ErrCryptoFailure, curve.ID, err)
		}
	}

	return nil
}

// Negotiate picks the first registry curve, in priority order, whose client
// slot is populated, and records it as the negotiated curve. Callers with
// their own selection policy set ServerParams.Curve directly instead.
func (s *State) Negotiate() (*elliptic.SupportedCurve, error) {
	s.ensureClientSlots()
	for i, curve := range elliptic.SupportedCurves() {
		if s.ClientParams[i].Curve == curve && s.ClientParams[i].HasKey() {
			s.ServerParams.Curve = curve

			return curve, nil
		}
	}

	return nil, fmt.Errorf("%w: no supported curve was offered", ErrInvalidState)
}

// Release zeroes and frees all private key material. It is idempotent and
// must run on connection teardown and on every error exit.
func (s *State) Release() {
	s.ServerParams.Release()
	for i := range s.ClientParams {
		s.ClientParams[i].Release()
	}
}

// Reset releases all key material and clears the negotiation, returning the
// context to its freshly created state.
func (s *State) Reset() {
	s.ServerParams.Reset()
	for i := range s.ClientParams {
		s.ClientParams[i].Reset()
	}
}
