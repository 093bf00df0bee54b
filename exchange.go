// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package keyshare

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pion/keyshare/pkg/crypto/elliptic"
	"github.com/pion/logging"
)

// Config collects the options for an Exchanger.
type Config struct {
	// Curves restricts the curves offered by the client side. Nil offers
	// the whole registry.
	Curves []*elliptic.SupportedCurve

	// LoggerFactory is used for tracing the exchange. Defaults to the pion
	// default factory.
	LoggerFactory logging.LoggerFactory
}

// Exchanger drives one side of a key_share exchange over a stream. It is a
// minimal stand-in for a handshake orchestrator: the client offers, the
// server accepts, the client finishes, and both ends hold the same secret.
type Exchanger struct {
	state  *State
	curves []*elliptic.SupportedCurve
	log    logging.LeveledLogger
}

// NewExchanger creates an Exchanger with a fresh security context.
func NewExchanger(config *Config) *Exchanger {
	if config == nil {
		config = &Config{}
	}

	loggerFactory := config.LoggerFactory
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	return &Exchanger{
		state:  NewState(),
		curves: config.Curves,
		log:    loggerFactory.NewLogger("keyshare"),
	}
}

// State exposes the underlying security context.
func (x *Exchanger) State() *State { return x.state }

// Offer generates the client's ephemeral keys and writes the ClientHello
// key_share extension.
func (x *Exchanger) Offer(writer io.Writer) error {
	if err := x.state.GenerateOffers(x.curves...); err != nil {
		return err
	}

	raw, err := (&ClientKeyShare{State: x.state}).Marshal()
	if err != nil {
		x.state.Release()

		return err
	}

	x.log.Tracef("[exchange] -> client key_share (%d bytes)", len(raw))
	if _, err := writer.Write(raw); err != nil {
		x.state.Release()

		return err
	}

	return nil
}

// Accept reads the client's offers, negotiates a curve and writes back the
// ServerHello key_share extension.
func (x *Exchanger) Accept(conn io.ReadWriter) error {
	raw, err := readExtension(conn)
	if err != nil {
		return err
	}

	if err := (&ClientKeyShare{State: x.state}).Unmarshal(raw); err != nil {
		x.state.Release()

		return err
	}

	curve, err := x.state.Negotiate()
	if err != nil {
		x.state.Release()

		return err
	}
	x.log.Tracef("[exchange] negotiated %s", curve.ID)

	response, err := (&ServerKeyShare{State: x.state}).Marshal()
	if err != nil {
		x.state.Release()

		return err
	}

	x.log.Tracef("[exchange] -> server key_share (%d bytes)", len(response))
	if _, err := conn.Write(response); err != nil {
		x.state.Release()

		return err
	}

	return nil
}

// Finish reads and validates the server's response on the client side.
func (x *Exchanger) Finish(reader io.Reader) error {
	raw, err := readExtension(reader)
	if err != nil {
		return err
	}

	if err := (&ServerKeyShare{State: x.state}).Unmarshal(raw); err != nil {
		x.state.Release()

		return err
	}

	x.log.Tracef("[exchange] <- server key_share, negotiated %s", x.state.NegotiatedCurve().ID)

	return nil
}

// Secret derives the shared secret for the negotiated curve. Whichever side
// generated the server share uses its private half against the client's
// point, and vice versa.
func (x *Exchanger) Secret() ([]byte, error) {
	curve := x.state.NegotiatedCurve()
	if curve == nil {
		return nil, fmt.Errorf("%w: exchange has not negotiated a curve", ErrMissingKeyShare)
	}

	slot := x.state.clientSlot(curve)
	if x.state.ServerParams.HasPrivateKey() {
		return SharedSecret(&x.state.ServerParams, slot)
	}

	return SharedSecret(slot, &x.state.ServerParams)
}

// Close releases all key material held by the exchange.
func (x *Exchanger) Close() {
	x.state.Release()
}

// readExtension reads one extension message: a 4 byte header, then the
// declared body.
func readExtension(reader io.Reader) ([]byte, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint16(header[2:])
	raw := make([]byte, 4+int(length))
	copy(raw, header)
	if _, err := io.ReadFull(reader, raw[4:]); err != nil {
		return nil, err
	}

	return raw, nil
}
