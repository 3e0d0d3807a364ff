package config

import "errors"

// Reader errors
var (
	ErrParse        = errors.New("could not parse pipeline document")
	ErrNotGraphForm = errors.New("document is not in graph form")
)
