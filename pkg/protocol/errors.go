// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package protocol provides the typed error categories shared by the
// key_share packages.
package protocol

import (
	"fmt"
	"net"
)

// Assert that the error categories satisfy net.Error.
var (
	_ net.Error = (*FatalError)(nil)
	_ net.Error = (*TemporaryError)(nil)
	_ net.Error = (*InternalError)(nil)
)

// FatalError indicates the key exchange is no longer usable.
// It is mainly caused by bad configuration or a misbehaving peer.
type FatalError struct {
	Err error
}

// Timeout implements net.Error.
func (*FatalError) Timeout() bool { return false }

// Temporary implements net.Error.
func (*FatalError) Temporary() bool { return false }

// Unwrap returns the wrapped error.
func (e *FatalError) Unwrap() error { return e.Err }

// Error implements error.
func (e *FatalError) Error() string { return fmt.Sprintf("keyshare fatal: %v", e.Err) }

// InternalError indicates an error caused by the implementation itself,
// after which the key exchange is no longer usable.
type InternalError struct {
	Err error
}

// Timeout implements net.Error.
func (*InternalError) Timeout() bool { return false }

// Temporary implements net.Error.
func (*InternalError) Temporary() bool { return false }

// Unwrap returns the wrapped error.
func (e *InternalError) Unwrap() error { return e.Err }

// Error implements error.
func (e *InternalError) Error() string { return fmt.Sprintf("keyshare internal: %v", e.Err) }

// TemporaryError indicates the key exchange is still usable, but the
// request failed temporarily.
type TemporaryError struct {
	Err error
}

// Timeout implements net.Error.
func (*TemporaryError) Timeout() bool { return false }

// Temporary implements net.Error.
func (*TemporaryError) Temporary() bool { return true }

// Unwrap returns the wrapped error.
func (e *TemporaryError) Unwrap() error { return e.Err }

// Error implements error.
func (e *TemporaryError) Error() string { return fmt.Sprintf("keyshare temporary: %v", e.Err) }
