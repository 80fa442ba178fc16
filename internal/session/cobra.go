// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Flag names read by PreRunLoad from the command's inherited flags.
const (
	ConfigFlag = "config"
	SchemaFlag = "schema"
)

type loggerKey struct{}

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if the command has no context or no session was loaded.
func FromCommand(cmd *cobra.Command) *Context {
	if cmd.Context() == nil {
		return nil
	}
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's
// context, returning an error if it hasn't been loaded.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	sc := FromCommand(cmd)
	if sc == nil {
		return nil, errors.New("project context not loaded")
	}
	return sc, nil
}

// PreRunLoad loads the session from the --config and --schema flags and
// stores it in the command's context.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	opts := Options{Logger: LoggerFromCommand(cmd)}
	if f := cmd.Flags().Lookup(ConfigFlag); f != nil {
		opts.ConfigPath = f.Value.String()
	}
	if f := cmd.Flags().Lookup(SchemaFlag); f != nil {
		opts.SchemaPath = f.Value.String()
	}

	ctx, err := Load(cmd.Context(), opts)
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}

// WithLogger stores log in the command's context for PreRunLoad.
func WithLogger(cmd *cobra.Command, log *zap.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, loggerKey{}, log))
}

// LoggerFromCommand returns the logger stored by WithLogger, or a no-op logger.
func LoggerFromCommand(cmd *cobra.Command) *zap.Logger {
	if ctx := cmd.Context(); ctx != nil {
		if log, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}
