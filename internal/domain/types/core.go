package types

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// Slot names one of the two records held by the key store.
type Slot string

// String returns the string form of the slot name.
func (s Slot) String() string { return string(s) }

const (
	// SlotPublic holds the exported public half of the identity.
	SlotPublic Slot = "pub"
	// SlotPrivate holds the exported private half of the identity.
	SlotPrivate Slot = "priv"
)
