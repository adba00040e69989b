package pasetotoken

import (
	"strings"

	paseto "aidanwoods.dev/go-paseto"
)

// Mode selects the PASETO v4 purpose used for admin tokens.
type Mode string

const (
	ModeLocal  Mode = "local"  // v4.local, encrypted with one shared key
	ModePublic Mode = "public" // v4.public, signed; verifiers need only the public half
)

// ParseMode maps a config value to a Mode. Empty means local.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeLocal:
		return ModeLocal, nil
	case ModePublic:
		return ModePublic, nil
	default:
		return "", ErrConfig{Msg: "unknown mode " + s + " (use local|public)"}
	}
}

type Keys struct {
	Mode Mode

	Symmetric *paseto.V4SymmetricKey

	Secret *paseto.V4AsymmetricSecretKey
	Public *paseto.V4AsymmetricPublicKey
}

// KeyStrings is the hex form of Keys as it appears in config.
type KeyStrings struct {
	Mode Mode

	SymmetricHex string

	SecretHex string
	PublicHex string
}

func LoadKeys(in KeyStrings) (Keys, error) {
	switch in.Mode {
	case ModeLocal:
		h := strings.TrimSpace(in.SymmetricHex)
		if h == "" {
			return Keys{}, ErrConfig{Msg: "local mode requires a symmetric key"}
		}
		k, err := paseto.V4SymmetricKeyFromHex(h)
		if err != nil {
			return Keys{}, ErrConfig{Msg: "symmetric key: " + err.Error()}
		}
		return Keys{Mode: ModeLocal, Symmetric: &k}, nil

	case ModePublic:
		out := Keys{Mode: ModePublic}
		if h := strings.TrimSpace(in.SecretHex); h != "" {
			sk, err := paseto.NewV4AsymmetricSecretKeyFromHex(h)
			if err != nil {
				return Keys{}, ErrConfig{Msg: "secret key: " + err.Error()}
			}
			pk := sk.Public()
			out.Secret, out.Public = &sk, &pk
		}
		// An explicit public key wins over the derived one; a public key
		// alone yields a verify-only manager.
		if h := strings.TrimSpace(in.PublicHex); h != "" {
			pk, err := paseto.NewV4AsymmetricPublicKeyFromHex(h)
			if err != nil {
				return Keys{}, ErrConfig{Msg: "public key: " + err.Error()}
			}
			out.Public = &pk
		}
		if out.Public == nil {
			return Keys{}, ErrConfig{Msg: "public mode requires a secret and/or public key"}
		}
		return out, nil

	default:
		return Keys{}, ErrConfig{Msg: "unknown mode (use local|public)"}
	}
}

// Export returns the hex encoding of k, suitable for config files.
func (k Keys) Export() KeyStrings {
	out := KeyStrings{Mode: k.Mode}
	if k.Symmetric != nil {
		out.SymmetricHex = k.Symmetric.ExportHex()
	}
	if k.Secret != nil {
		out.SecretHex = k.Secret.ExportHex()
	}
	if k.Public != nil {
		out.PublicHex = k.Public.ExportHex()
	}
	return out
}

func NewLocalKeys() Keys {
	k := paseto.NewV4SymmetricKey()
	return Keys{Mode: ModeLocal, Symmetric: &k}
}

func NewPublicKeys() Keys {
	sk := paseto.NewV4AsymmetricSecretKey()
	pk := sk.Public()
	return Keys{Mode: ModePublic, Secret: &sk, Public: &pk}
}

// GenerateKeys returns fresh keys for mode.
func GenerateKeys(mode Mode) Keys {
	if mode == ModePublic {
		return NewPublicKeys()
	}
	return NewLocalKeys()
}
