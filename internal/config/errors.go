package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration classifies failures to assemble a usable configuration.
var ErrConfiguration = errors.New("configuration error")

// MissingCredentialsError lists the environment keys that must be set before
// any request can be signed.
type MissingCredentialsError struct {
	Keys []string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("missing Tencent Cloud credentials: set %s", strings.Join(e.Keys, " and "))
}

func (e *MissingCredentialsError) Unwrap() error { return ErrConfiguration }

// CheckCredentials returns a *MissingCredentialsError naming every empty
// half of the key pair.
func CheckCredentials(c CredentialsConfig) error {
	var missing []string
	if strings.TrimSpace(c.SecretID) == "" {
		missing = append(missing, EnvSecretID)
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		missing = append(missing, EnvSecretKey)
	}
	if len(missing) > 0 {
		return &MissingCredentialsError{Keys: missing}
	}

	return nil
}
