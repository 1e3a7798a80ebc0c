package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrEmptyGoogleClientID error if config google.clientid is empty.
	ErrEmptyGoogleClientID = errors.New("config google.clientid can not be empty")

	// ErrEmptySigningKey error if config token.signingkey is empty.
	ErrEmptySigningKey = errors.New("config token.signingkey can not be empty")

	// ErrUnknownGormEngine error if config db.gormengine is not supported.
	ErrUnknownGormEngine = errors.New("config db.gormengine must be one of mysql, postgres, sqlite")
)
