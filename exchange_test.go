// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package keyshare

import (
	"testing"

	"github.com/pion/keyshare/pkg/crypto/elliptic"
	"github.com/pion/transport/v3/dpipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchanger_EndToEnd(t *testing.T) {
	ca, cb := dpipe.Pipe()
	defer func() {
		_ = ca.Close()
		_ = cb.Close()
	}()

	client := NewExchanger(nil)
	server := NewExchanger(nil)
	defer client.Close()
	defer server.Close()

	acceptErr := make(chan error, 1)
	go func() {
		acceptErr <- server.Accept(cb)
	}()

	require.NoError(t, client.Offer(ca))
	require.NoError(t, client.Finish(ca))
	require.NoError(t, <-acceptErr)

	assert.Same(t, elliptic.SupportedCurves()[0], server.State().NegotiatedCurve())
	assert.Same(t, server.State().NegotiatedCurve(), client.State().NegotiatedCurve())

	clientSecret, err := client.Secret()
	require.NoError(t, err)
	serverSecret, err := server.Secret()
	require.NoError(t, err)

	assert.Equal(t, serverSecret, clientSecret)
	assert.Len(t, clientSecret, 32)
}

func TestExchanger_RestrictedOffer(t *testing.T) {
	ca, cb := dpipe.Pipe()
	defer func() {
		_ = ca.Close()
		_ = cb.Close()
	}()

	p384 := elliptic.SupportedCurves()[1]
	client := NewExchanger(&Config{Curves: []*elliptic.SupportedCurve{p384}})
	server := NewExchanger(nil)
	defer client.Close()
	defer server.Close()

	acceptErr := make(chan error, 1)
	go func() {
		acceptErr <- server.Accept(cb)
	}()

	require.NoError(t, client.Offer(ca))
	require.NoError(t, client.Finish(ca))
	require.NoError(t, <-acceptErr)

	assert.Same(t, p384, client.State().NegotiatedCurve())

	clientSecret, err := client.Secret()
	require.NoError(t, err)
	serverSecret, err := server.Secret()
	require.NoError(t, err)

	assert.Equal(t, serverSecret, clientSecret)
	assert.Len(t, clientSecret, 48)
}

func TestExchanger_SecretBeforeNegotiation(t *testing.T) {
	exchanger := NewExchanger(nil)
	defer exchanger.Close()

	_, err := exchanger.Secret()
	assert.ErrorIs(t, err, ErrMissingKeyShare)
}
