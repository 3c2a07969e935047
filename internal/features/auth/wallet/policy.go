// Package wallet validates TON wallet addresses presented as identity.
//
// Connecting a wallet is treated as a declaration of identity, not proof of
// ownership: no signed challenge is verified, so anyone who knows an address
// can log in as its owner. That posture is deliberate and documented; the
// policy is swappable so a proof-backed variant can replace it later without
// touching the login flow.
package wallet

import (
	"bytes"
	"errors"
	"strings"

	"github.com/xssnick/tonutils-go/address"
)

var (
	ErrInvalidFormat = errors.New("invalid wallet address format")

	// ErrSignatureRequired is returned by the signature-required policy for
	// every wallet login until a proof-of-ownership flow exists.
	ErrSignatureRequired = errors.New("wallet signature verification required")
)

// Policy decides whether a raw/user-friendly address pair is acceptable as a
// login identity. Implementations are format checks only (see package doc).
type Policy interface {
	Validate(walletRaw, walletFriendly string) error
}

type Config struct {
	MinLength        int
	RequirePrefix    bool
	Strict           bool
	RequireSignature bool
}

func NewPolicy(cfg Config) Policy {
	if cfg.RequireSignature {
		return signatureRequiredPolicy{}
	}
	if cfg.Strict {
		return strictPolicy{}
	}
	return lenientPolicy{minLength: cfg.MinLength, requirePrefix: cfg.RequirePrefix}
}

// lenientPolicy accepts any non-empty pair passing length and prefix checks.
type lenientPolicy struct {
	minLength     int
	requirePrefix bool
}

func (p lenientPolicy) Validate(walletRaw, walletFriendly string) error {
	walletRaw = strings.TrimSpace(walletRaw)
	walletFriendly = strings.TrimSpace(walletFriendly)

	if walletRaw == "" || walletFriendly == "" {
		return ErrInvalidFormat
	}
	if len(walletFriendly) < p.minLength {
		return ErrInvalidFormat
	}
	if p.requirePrefix && !strings.HasPrefix(walletFriendly, "EQ") && !strings.HasPrefix(walletFriendly, "UQ") {
		return ErrInvalidFormat
	}
	return nil
}

// strictPolicy parses both encodings and requires them to denote the same
// account. Still no proof of key ownership.
type strictPolicy struct{}

func (strictPolicy) Validate(walletRaw, walletFriendly string) error {
	raw, err := address.ParseRawAddr(strings.TrimSpace(walletRaw))
	if err != nil {
		return ErrInvalidFormat
	}
	friendly, err := address.ParseAddr(strings.TrimSpace(walletFriendly))
	if err != nil {
		return ErrInvalidFormat
	}
	if raw.Workchain() != friendly.Workchain() || !bytes.Equal(raw.Data(), friendly.Data()) {
		return ErrInvalidFormat
	}
	return nil
}

type signatureRequiredPolicy struct{}

func (signatureRequiredPolicy) Validate(string, string) error {
	return ErrSignatureRequired
}
