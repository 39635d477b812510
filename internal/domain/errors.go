package domain

import (
	"errors"
	"fmt"
)

// Storage errors.
var (
	// ErrKeyNotFound indicates a key store slot has never been written. It is
	// the expected state on first launch and never signals a fault.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStorageUnavailable indicates the local key store could not be opened,
	// read or written.
	ErrStorageUnavailable = errors.New("key storage unavailable")

	// ErrWrongPassphrase indicates a sealed private record could not be opened.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key record")
)

// Identity errors.
var (
	// ErrIdentityInitFailed is returned by ObtainIdentity for any failure; it is
	// always joined with the underlying cause.
	ErrIdentityInitFailed = errors.New("identity initialization failed")

	// ErrIdentityGenerationFailed indicates key pair generation failed.
	ErrIdentityGenerationFailed = errors.New("identity generation failed")
)

// Cryptographic errors.
var (
	// ErrKeyImportFailed indicates a serialized public key is malformed or not
	// an RSA-OAEP encryption key.
	ErrKeyImportFailed = errors.New("key import failed")

	// ErrEnvelopeUnwrapFailed indicates the session key could not be recovered
	// with the local private key, usually because the identity changed.
	ErrEnvelopeUnwrapFailed = errors.New("envelope unwrap failed")

	// ErrEnvelopeAuthenticationFailed indicates the payload failed AEAD
	// authentication, usually because it was tampered with or corrupted.
	ErrEnvelopeAuthenticationFailed = errors.New("envelope authentication failed")
)

// OpError records the operation that failed alongside the underlying error.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Errorf returns an *OpError for op whose cause is formatted like fmt.Errorf,
// so %w verbs keep their targets reachable via errors.Is.
func Errorf(op string, format string, args ...any) error {
	return &OpError{Op: op, Err: fmt.Errorf(format, args...)}
}
