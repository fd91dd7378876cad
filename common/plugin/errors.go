package plugin

import "github.com/pkg/errors"

var (
	ErrConnectorNotFound = errors.New("connector not registered")
	ErrConnectorExists   = errors.New("connector already registered")
	ErrConfigNil         = errors.New("configuration is nil")
)
