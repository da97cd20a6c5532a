package client

import (
	"fmt"
	"os"
)

// Default environment variables holding the Basic auth pair
const (
	DefaultUsernameEnv = "NEXUS_TOKEN_NAME"
	DefaultPasswordEnv = "NEXUS_TOKEN_SECRET"
)

// Credentials is an identity/secret pair sent with HTTP Basic auth
type Credentials struct {
	Username string
	Password string
}

// CredentialSource resolves credentials for a single request
type CredentialSource interface {
	Credentials() (Credentials, error)
}

// EnvCredentials reads credentials from the environment on every call, so a
// rotated secret is picked up by the next request.
type EnvCredentials struct {
	UsernameVar string
	PasswordVar string
}

// Credentials implements CredentialSource
func (e EnvCredentials) Credentials() (Credentials, error) {
	userVar := e.UsernameVar
	if userVar == "" {
		userVar = DefaultUsernameEnv
	}
	passVar := e.PasswordVar
	if passVar == "" {
		passVar = DefaultPasswordEnv
	}

	username, ok := os.LookupEnv(userVar)
	if !ok || username == "" {
		return Credentials{}, NewRegistryError(ErrMissingCredentials,
			fmt.Sprintf("environment variable %s is not set", userVar))
	}
	password, ok := os.LookupEnv(passVar)
	if !ok || password == "" {
		return Credentials{}, NewRegistryError(ErrMissingCredentials,
			fmt.Sprintf("environment variable %s is not set", passVar))
	}

	return Credentials{Username: username, Password: password}, nil
}

// StaticCredentials always returns the same pair
type StaticCredentials Credentials

// Credentials implements CredentialSource
func (s StaticCredentials) Credentials() (Credentials, error) {
	if s.Username == "" {
		return Credentials{}, NewRegistryError(ErrMissingCredentials, "username is empty")
	}
	if s.Password == "" {
		return Credentials{}, NewRegistryError(ErrMissingCredentials, "password is empty")
	}
	return Credentials(s), nil
}
