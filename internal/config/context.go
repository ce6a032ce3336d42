package config

import (
	"context"

	"github.com/example/classgen/internal/errors"
)

type settingsKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// FromContext returns the settings stored by NewContext.
func FromContext(ctx context.Context) (*Settings, error) {
	if ctx != nil {
		if s, ok := ctx.Value(settingsKey{}).(*Settings); ok && s != nil {
			return s, nil
		}
	}
	return nil, errors.New("settings not resolved for this command")
}
