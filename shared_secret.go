// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package keyshare

import (
	"fmt"

	"github.com/pion/keyshare/pkg/crypto/elliptic"
)

// SharedSecret derives the ECDHE shared secret from one side's private key
// and the peer's public point. Both params must reference the same curve.
// The output length is curve specific (32 bytes for P-256, 48 for P-384)
// and is byte identical whichever side computes it.
func SharedSecret(own, peer *elliptic.Params) ([]byte, error) {
	switch {
	case own == nil || peer == nil || own.Curve == nil || peer.Curve == nil:
		return nil, fmt.Errorf("%w: shared secret requires two curve bound params", ErrMissingKeyShare)
	case own.Curve != peer.Curve:
		return nil, fmt.Errorf("%w: curve mismatch, %s against %s",
			ErrInvalidState, own.Curve.ID, peer.Curve.ID)
	case !own.HasPrivateKey():
		return nil, fmt.Errorf("%w: own params hold no private key", ErrMissingKeyShare)
	case !peer.HasKey():
		return nil, fmt.Errorf("%w: peer params hold no public key", ErrMissingKeyShare)
	}

	secret, err := own.SharedSecret(peer.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoFailure, err)
	}

	return secret, nil
}
