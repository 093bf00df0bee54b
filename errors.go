// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package keyshare

import (
	"errors"

	"github.com/pion/keyshare/pkg/protocol"
)

// Typed error kinds. Specific failures wrap one of these, so callers can
// classify any error from this package with errors.Is. None of them are
// retryable; the handshake driving the exchange must abort on all of them.
var (
	// ErrMissingKeyShare is returned when required state, such as a
	// negotiated curve or a generated key, is absent.
	ErrMissingKeyShare = &protocol.FatalError{Err: errors.New("required key share state is not set")} //nolint:err113

	// ErrInvalidState is returned when the security context does not allow
	// the requested operation, e.g. deriving a secret across two curves.
	ErrInvalidState = &protocol.FatalError{Err: errors.New("key share state does not allow the operation")} //nolint:err113

	// ErrBadKeyShare is returned for malformed or unacceptable wire data:
	// unknown groups, length mismatches, truncation, trailing bytes, or a
	// curve this side never offered.
	ErrBadKeyShare = &protocol.FatalError{Err: errors.New("bad key_share extension")} //nolint:err113

	// ErrAllocationFailure is returned when the output buffer cannot be
	// built.
	ErrAllocationFailure = &protocol.InternalError{Err: errors.New("could not build the output buffer")} //nolint:err113

	// ErrCryptoFailure is returned when the underlying crypto primitive
	// fails, e.g. key generation or ECDH on an invalid point.
	ErrCryptoFailure = &protocol.FatalError{Err: errors.New("crypto primitive failure")} //nolint:err113

	errBufferTooSmall       = &protocol.TemporaryError{Err: errors.New("buffer is too small")} //nolint:err113
	errInvalidExtensionType = &protocol.FatalError{Err: errors.New("invalid extension type")}  //nolint:err113
)
