package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"domoreserva/internal/app/commands"
)

// IdempotentCommand must be implemented by commands that want
// idempotency guarantees. Resubmitting the same key replays the first
// result instead of creating a duplicate.
type IdempotentCommand interface {
	commands.Command
	IdempotencyKey() string
	ResultPrototype() any
}

type IdempotencyRecord struct {
	Key        string
	Payload    []byte
	OccurredAt time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool, error)
	Save(ctx context.Context, rec IdempotencyRecord) error
}

type ResultCodec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}

type JSONResultCodec struct{}

func (JSONResultCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONResultCodec) Decode(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

var errMissingPrototype = errors.New("middleware: idempotent command requires result prototype")

// Idempotency replays stored results for commands carrying a known key.
func Idempotency(store IdempotencyStore, codec ResultCodec) CommandMiddleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	if codec == nil {
		codec = JSONResultCodec{}
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			idCmd, ok := cmd.(IdempotentCommand)
			if !ok {
				return nextFn(ctx, cmd)
			}
			key := idCmd.IdempotencyKey()
			if key == "" {
				return nextFn(ctx, cmd)
			}
			if rec, found, err := store.Get(ctx, key); err != nil {
				return nil, err
			} else if found {
				out := idCmd.ResultPrototype()
				if out == nil {
					return nil, errMissingPrototype
				}
				if err := codec.Decode(rec.Payload, out); err != nil {
					return nil, err
				}
				return out, nil
			}

			// Only successes are recorded: a failed attempt keeps its
			// typed error and may be retried under the same key once
			// the cause clears.
			result, err := nextFn(ctx, cmd)
			if err != nil {
				return nil, err
			}
			payload, err := codec.Encode(result)
			if err != nil {
				return nil, err
			}
			rec := IdempotencyRecord{Key: key, Payload: payload, OccurredAt: time.Now().UTC()}
			if err := store.Save(ctx, rec); err != nil {
				return nil, err
			}
			return result, nil
		})
	}
}
