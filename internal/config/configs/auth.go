package configs

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Auth configures bearer token signing. Tokens are HS256 JWTs whose
// subject is the caller's hex address, so anyone holding Secret can act as
// any identity. Secret has no default and Load fails until AUTH_SECRET is
// set to a non-empty value.
type Auth struct {
	// Secret is the HMAC key used to sign and verify tokens. It is
	// required and must not be empty.
	Secret string `env:"SECRET,required,notEmpty"`
	// TokenTTL is how long a minted token stays valid. Defaults to 24h.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// Factory holds the address campaign handles are derived from. Two
// deployments that share a factory address and storage produce the same
// handles, so distinct environments should use distinct addresses.
type Factory struct {
	// Address is the hex address passed to crypto.CreateAddress together
	// with the deployment nonce.
	Address common.Address `env:"ADDRESS" envDefault:"0x00000000000000000000000000000000000fac70"`
}
