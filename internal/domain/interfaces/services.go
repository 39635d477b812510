package interfaces

import (
	"context"

	domaintypes "spark/internal/domain/types"
)

// IdentityService obtains and describes the local identity.
type IdentityService interface {
	// ObtainIdentity loads the persisted identity or creates one on first use.
	ObtainIdentity(ctx context.Context) (domaintypes.IdentityKeyPair, error)
	PublicKey(ctx context.Context) (domaintypes.SerializedPublicKey, error)
	Fingerprint(ctx context.Context) (domaintypes.Fingerprint, error)
}

// MessageService seals plaintext for a peer and opens envelopes addressed to us.
type MessageService interface {
	Seal(
		ctx context.Context,
		plaintext string,
		recipient domaintypes.SerializedPublicKey,
	) (domaintypes.Envelope, error)
	Open(ctx context.Context, envelope domaintypes.Envelope) (string, error)
}
