package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/hwlend/pkg/cryptox"
	"github.com/aussiebroadwan/hwlend/pkg/jwtx"
)

// signingKeyID names the single signing key in the published JWKS.
const signingKeyID = "hwlend-1"

// Keys bundles the token signer with the key set and verifier built from it.
type Keys struct {
	Signer   jwtx.Signer
	KeySet   *jwtx.KeySet
	Verifier jwtx.Verifier
}

// InitKeys loads the Ed25519 signing key from cfg.SigningKeyFile, creating it
// on first start. Without a key file the key is ephemeral and every restart
// invalidates outstanding tokens.
func InitKeys(cfg Config, logger *slog.Logger) (*Keys, error) {
	pemKey, err := cryptox.LoadOrGenerateEd25519Key(cfg.SigningKeyFile)
	if err != nil {
		return nil, err
	}

	signer, err := jwtx.NewSignerEdDSA(signingKeyID, pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build signer: %w", err)
	}
	if err := signer.Validate(); err != nil {
		return nil, fmt.Errorf("signing key failed self-check: %w", err)
	}

	keySet := jwtx.NewKeySet()
	if err := keySet.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("failed to publish signing key: %w", err)
	}

	if cfg.SigningKeyFile == "" {
		logger.Warn("ephemeral signing key generated; tokens will not survive a restart")
	} else {
		logger.Info("signing key loaded", "kid", signingKeyID, "path", cfg.SigningKeyFile)
	}

	return &Keys{
		Signer:   signer,
		KeySet:   keySet,
		Verifier: jwtx.NewVerifierEdDSA(keySet, cfg.Issuer, nil),
	}, nil
}
