package models

import "errors"

// Custom errors
var (
	ErrEmptyRange          = errors.New("no bars available for specified date range")
	ErrUnorderedBars       = errors.New("bar timestamps must be strictly increasing")
	ErrMissingSignalFields = errors.New("signal is missing required fields")
	ErrUnknownPropFirm     = errors.New("unknown prop firm")
)
