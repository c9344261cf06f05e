package main

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
)

// commandFunc executes one shell command.
type commandFunc func(ctx context.Context, cmd string, args []string) error

type middleware func(commandFunc) commandFunc

var errInternal = errors.New("internal error")

// chain wraps h so that mws[0] runs first.
func chain(h commandFunc, mws ...middleware) commandFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// logged records each command with its outcome and duration.
func logged(log *zap.Logger) middleware {
	return func(next commandFunc) commandFunc {
		return func(ctx context.Context, cmd string, args []string) error {
			start := time.Now()
			err := next(ctx, cmd, args)

			// no arguments: they carry free-form event text
			outcome := "ok"
			if err != nil && !errors.Is(err, errQuit) {
				outcome = "error"
			}
			log.Debug("command",
				zap.String("cmd", cmd),
				zap.String("outcome", outcome),
				zap.Duration("dur", time.Since(start)),
			)
			return err
		}
	}
}

// recovered turns a panic inside a command into errInternal.
func recovered(log *zap.Logger) middleware {
	return func(next commandFunc) commandFunc {
		return func(ctx context.Context, cmd string, args []string) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic",
						zap.Any("reason", r),
						zap.ByteString("stack", debug.Stack()),
						zap.String("cmd", cmd),
					)
					err = errInternal
				}
			}()
			return next(ctx, cmd, args)
		}
	}
}
