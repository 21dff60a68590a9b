package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig  = errors.New("invalid config")
	ErrLoadConfig     = errors.New("load config failed")
	ErrLoadCatalog    = errors.New("load catalog failed")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
