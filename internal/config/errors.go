package config

import "errors"

var (
	ErrUnknownPreset      = errors.New("config: unknown preset")
	ErrUnknownTheme       = errors.New("config: unknown theme")
	ErrInvalidPolicy      = errors.New("config: invalid collision policy")
	ErrInvalidInteraction = errors.New("config: invalid interaction settings")
	ErrInvalidWorld       = errors.New("config: invalid world")
	ErrInvalidLabel       = errors.New("config: invalid label shape")
	ErrInvalidWord        = errors.New("config: invalid word")
	ErrNoWords            = errors.New("config: no words")
)
