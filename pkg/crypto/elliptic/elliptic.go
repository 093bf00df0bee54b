// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package elliptic provides the curve registry and ephemeral key material
// used by the TLS 1.3 key_share exchange.
package elliptic

import (
	"bytes"
	"crypto/ecdh"
	"crypto/rand"
	"errors"
	"fmt"
)

var (
	errInvalidNamedCurve = errors.New("invalid named curve")
	errMissingPrivateKey = errors.New("params hold no private key")
)

// Curve is an IANA registered TLS named group
//
// https://www.iana.org/assignments/tls-parameters/tls-parameters.xml#tls-parameters-8
type Curve uint16

// Curve enums.
const (
	P256 Curve = 0x0017
	P384 Curve = 0x0018
	// X25519 is a known code point but is outside the supported registry,
	// so key shares for it are rejected on receive.
	X25519 Curve = 0x001d
)

func (c Curve) String() string {
	switch c {
	case P256:
		return "P-256"
	case P384:
		return "P-384"
	case X25519:
		return "X25519"
	}

	return fmt.Sprintf("%#x", uint16(c))
}

// SupportedCurve is one entry of the fixed negotiation registry.
type SupportedCurve struct {
	ID        Curve
	ShareSize int // length of the encoded public point on the wire
	newECDH   func() ecdh.Curve
}

// supportedCurves is the process wide registry. It is never mutated after
// initialization; slice order is negotiation priority and defines the slot
// indexing used by the per connection client params.
var supportedCurves = []*SupportedCurve{
	{ID: P256, ShareSize: 65, newECDH: ecdh.P256},
	{ID: P384, ShareSize: 97, newECDH: ecdh.P384},
}

// SupportedCurves returns the registry in negotiation priority order.
// Callers must not modify the returned slice.
func SupportedCurves() []*SupportedCurve {
	return supportedCurves
}

// CurveByID returns the registry entry for the given group id.
func CurveByID(id Curve) (*SupportedCurve, bool) {
	for _, c := range supportedCurves {
		if c.ID == id {
			return c, true
		}
	}

	return nil, false
}

// Params holds one side's key material for a single curve. A generated
// keypair carries both halves; a share received from the peer carries only
// the public half. The zero value is an empty slot.
type Params struct {
	Curve      *SupportedCurve
	PublicKey  []byte // encoded point, SEC1 uncompressed (04||X||Y)
	privateKey []byte // scalar for ecdh.NewPrivateKey, nil for a peer share
}

// GenerateEphemeral creates a fresh keypair for the given registry curve.
func GenerateEphemeral(curve *SupportedCurve) (*Params, error) {
	params := &Params{Curve: curve}
	if err := params.Generate(); err != nil {
		return nil, err
	}

	return params, nil
}

// Generate creates a fresh keypair for p.Curve, replacing any key material
// already held.
func (p *Params) Generate() error {
	if p.Curve == nil {
		return errInvalidNamedCurve
	}

	sk, err := p.Curve.newECDH().GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	p.Release()
	p.privateKey = sk.Bytes()
	p.PublicKey = sk.PublicKey().Bytes()

	return nil
}

// SetPeerShare stores the peer's encoded public point, dropping any private
// key material the slot held.
func (p *Params) SetPeerShare(curve *SupportedCurve, point []byte) {
	p.Release()
	p.Curve = curve
	p.PublicKey = append([]byte(nil), point...)
}

// HasKey reports whether the params hold an encoded public point.
func (p *Params) HasKey() bool {
	return len(p.PublicKey) != 0
}

// HasPrivateKey reports whether the params hold our own private scalar.
func (p *Params) HasPrivateKey() bool {
	return len(p.privateKey) != 0
}

// SharedSecret runs ECDH between p's private key and the peer's encoded
// public point. The secret length is curve specific.
func (p *Params) SharedSecret(peerPublic []byte) ([]byte, error) {
	if p.Curve == nil {
		return nil, errInvalidNamedCurve
	}
	if !p.HasPrivateKey() {
		return nil, errMissingPrivateKey
	}

	ec := p.Curve.newECDH()
	sk, err := ec.NewPrivateKey(p.privateKey)
	if err != nil {
		return nil, err
	}

	pk, err := ec.NewPublicKey(peerPublic)
	if err != nil {
		return nil, err
	}

	return sk.ECDH(pk)
}

// PublicKeysEqual reports whether a and b hold the same encoded public
// point, regardless of which side generated it.
func PublicKeysEqual(a, b *Params) bool {
	return a.HasKey() && b.HasKey() && bytes.Equal(a.PublicKey, b.PublicKey)
}

// Release zeroes and drops the private key material. It is idempotent and
// must run on every exit path that abandons the params.
func (p *Params) Release() {
	for i := range p.privateKey {
		p.privateKey[i] = 0
	}
	p.privateKey = nil
}

// Reset releases the key material and returns the slot to its zero value.
func (p *Params) Reset() {
	p.Release()
	p.Curve = nil
	p.PublicKey = nil
}
