package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormengine is not one of mysql, postgres or sqlite.
	ErrUnknownGormEngine = errors.New("config db.gormengine must be mysql, postgres or sqlite")

	// ErrSessionSecretRequired error if no session secret is set outside of dev mode.
	ErrSessionSecretRequired = errors.New("config webserver.sessionsecret is required outside dev mode")

	// ErrInvalidCookieEncryptionKey error if the cookie key is not a base64 encoded 16, 24 or 32 byte key.
	ErrInvalidCookieEncryptionKey = errors.New("config webserver.cookieencryptionkey must be a base64 encoded 16, 24 or 32 byte key")
)
