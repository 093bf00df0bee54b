// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package keyshare

import (
	"testing"

	"github.com/pion/keyshare/pkg/crypto/elliptic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_GenerateOffers(t *testing.T) {
	curves := elliptic.SupportedCurves()

	state := NewState()
	require.NoError(t, state.GenerateOffers())
	for i, curve := range curves {
		assert.Same(t, curve, state.ClientParams[i].Curve)
		assert.True(t, state.ClientParams[i].HasPrivateKey())
	}

	// repeated offers keep the existing keypairs
	before := append([]byte(nil), state.ClientParams[0].PublicKey...)
	require.NoError(t, state.GenerateOffers())
	assert.Equal(t, before, state.ClientParams[0].PublicKey)

	// a curve outside the registry cannot be offered
	err := state.GenerateOffers(&elliptic.SupportedCurve{ID: elliptic.X25519, ShareSize: 32})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestState_Negotiate(t *testing.T) {
	curves := elliptic.SupportedCurves()

	t.Run("nothing offered", func(t *testing.T) {
		_, err := NewState().Negotiate()
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("first priority match", func(t *testing.T) {
		state := NewState()
		require.NoError(t, state.GenerateOffers())

		curve, err := state.Negotiate()
		assert.NoError(t, err)
		assert.Same(t, curves[0], curve)
		assert.Same(t, curve, state.NegotiatedCurve())
	})

	t.Run("partial offer", func(t *testing.T) {
		state := NewState()
		require.NoError(t, state.GenerateOffers(curves[1]))

		curve, err := state.Negotiate()
		assert.NoError(t, err)
		assert.Same(t, curves[1], curve)
	})
}

func TestState_Reset(t *testing.T) {
	state := NewState()
	require.NoError(t, state.GenerateOffers())
	_, err := state.Negotiate()
	require.NoError(t, err)

	codec := &ServerKeyShare{State: state}
	assert.NotZero(t, codec.Size())

	state.Reset()
	assert.Nil(t, state.NegotiatedCurve())
	assert.Zero(t, codec.Size())
	for i := range state.ClientParams {
		assert.Nil(t, state.ClientParams[i].Curve)
		assert.False(t, state.ClientParams[i].HasKey())
	}

	// the context is reusable after a reset
	require.NoError(t, state.GenerateOffers())
	_, err = state.Negotiate()
	assert.NoError(t, err)
}

func TestState_ReleaseIdempotent(t *testing.T) {
	state := NewState()
	require.NoError(t, state.GenerateOffers())

	state.Release()
	state.Release()

	for i := range state.ClientParams {
		assert.False(t, state.ClientParams[i].HasPrivateKey())
		// the public halves survive, only secrets are dropped
		assert.True(t, state.ClientParams[i].HasKey())
	}
}
