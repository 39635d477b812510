package message

import (
	"context"
	"errors"

	logging "github.com/ipfs/go-log/v2"

	"spark/internal/crypto"
	"spark/internal/domain"
	"spark/internal/metrics"
)

var log = logging.Logger("spark/message")

// Service encrypts and decrypts chat messages.
type Service struct {
	identity domain.IdentityService
	cipher   *crypto.Cipher
	metrics  *metrics.Collector
}

// New returns a message service. m may be nil.
func New(identity domain.IdentityService, cipher *crypto.Cipher, m *metrics.Collector) *Service {
	return &Service{identity: identity, cipher: cipher, metrics: m}
}

// Seal encrypts plaintext for the holder of recipient.
func (s *Service) Seal(
	ctx context.Context,
	plaintext string,
	recipient domain.SerializedPublicKey,
) (domain.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return domain.Envelope{}, err
	}
	env, err := s.cipher.EncryptFor(plaintext, recipient)
	s.metrics.ObserveEnvelope(metrics.OpSeal, err)
	if err != nil {
		log.Debugw("seal failed", "err", err)
		return domain.Envelope{}, err
	}
	return env, nil
}

// Open decrypts env with the local identity.
func (s *Service) Open(ctx context.Context, env domain.Envelope) (string, error) {
	pair, err := s.identity.ObtainIdentity(ctx)
	if err != nil {
		return "", err
	}
	pt, err := s.cipher.Decrypt(env, pair.Private)
	s.metrics.ObserveEnvelope(metrics.OpOpen, err)
	if err != nil {
		log.Debugw("open failed", "reason", metrics.Result(err))
		return "", err
	}
	return pt, nil
}

// Describe turns an error from Seal or Open into a message for the user.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "Local key storage is unavailable."
	case errors.Is(err, domain.ErrIdentityInitFailed):
		return "Secure messaging could not be initialized."
	case errors.Is(err, domain.ErrEnvelopeUnwrapFailed):
		return "This message was encrypted for a different key. Your identity may have changed since it was sent."
	case errors.Is(err, domain.ErrEnvelopeAuthenticationFailed):
		return "This message was altered or corrupted and cannot be shown."
	case errors.Is(err, domain.ErrKeyImportFailed):
		return "The recipient's public key is invalid."
	default:
		return err.Error()
	}
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)
