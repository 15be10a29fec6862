package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrMissingName   = goerr.New("name is required")
	ErrDuplicateName = goerr.New("duplicate name")
)
