package middleware

import (
	"context"
	"log/slog"
	"time"

	"domoreserva/internal/app/commands"
	"domoreserva/internal/app/queries"
)

// LogCommands records every dispatched command with its outcome.
func LogCommands(logger *slog.Logger) CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			start := time.Now()
			result, err := nextFn(ctx, cmd)
			attrs := []any{"command", cmd.Key(), "elapsed", time.Since(start)}
			if err != nil {
				logger.Warn("command failed", append(attrs, "error", err)...)
				return result, err
			}
			logger.Info("command handled", attrs...)
			return result, nil
		})
	}
}

// LogQueries records failed queries; successful reads stay quiet.
func LogQueries(logger *slog.Logger) QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			result, err := nextFn(ctx, q)
			if err != nil {
				logger.Warn("query failed", "query", q.Key(), "error", err)
			}
			return result, err
		})
	}
}
