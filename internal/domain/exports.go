package domain

import (
	interfaces "spark/internal/domain/interfaces"
	types "spark/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Fingerprint         = types.Fingerprint
	Slot                = types.Slot
	IdentityKeyPair     = types.IdentityKeyPair
	SerializedPublicKey = types.SerializedPublicKey
	Envelope            = types.Envelope
)

// Slot names re-exported for callers that only import domain.
const (
	SlotPublic  = types.SlotPublic
	SlotPrivate = types.SlotPrivate
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyValueStore   = interfaces.KeyValueStore
	KeyStore        = interfaces.KeyStore
	CryptoProvider  = interfaces.CryptoProvider
	IdentityService = interfaces.IdentityService
	MessageService  = interfaces.MessageService
)
