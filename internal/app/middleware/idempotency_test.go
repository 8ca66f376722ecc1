package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domoreserva/internal/app/commands"
)

type echoCommand struct {
	Value string
	Key_  string
}

func (echoCommand) Key() string              { return "test.echo" }
func (c echoCommand) IdempotencyKey() string { return c.Key_ }
func (echoCommand) ResultPrototype() any     { return &echoResult{} }

type echoResult struct {
	Value string `json:"value"`
}

type memStore struct {
	mu    sync.Mutex
	items map[string]IdempotencyRecord
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string]IdempotencyRecord)}
}

func (s *memStore) Get(ctx context.Context, key string) (IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.items[key]
	return rec, ok, nil
}

func (s *memStore) Save(ctx context.Context, rec IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[rec.Key] = rec
	return nil
}

type countingHandler struct {
	calls int
	err   error
}

func (h *countingHandler) Handle(ctx context.Context, cmd echoCommand) (*echoResult, error) {
	h.calls++
	if h.err != nil {
		return nil, h.err
	}
	return &echoResult{Value: cmd.Value}, nil
}

func buildBus(handler *countingHandler, store IdempotencyStore) commands.Bus {
	base := commands.NewInMemoryBus()
	commands.RegisterHandler(base, echoCommand{}.Key(), handler)
	return ChainCommands(base, Idempotency(store, nil))
}

func TestIdempotencyReplaysFirstResult(t *testing.T) {
	handler := &countingHandler{}
	bus := buildBus(handler, newMemStore())
	cmd := echoCommand{Value: "hello", Key_: "key-1"}

	first, err := commands.Dispatch[echoCommand, *echoResult](context.Background(), bus, cmd)
	require.NoError(t, err)

	second, err := commands.Dispatch[echoCommand, *echoResult](context.Background(), bus, cmd)
	require.NoError(t, err)

	assert.Equal(t, 1, handler.calls)
	assert.Equal(t, first.Value, second.Value)
}

func TestIdempotencyDoesNotRecordFailures(t *testing.T) {
	boom := errors.New("boom")
	handler := &countingHandler{err: boom}
	bus := buildBus(handler, newMemStore())
	cmd := echoCommand{Value: "hello", Key_: "key-err"}

	_, err := commands.Dispatch[echoCommand, *echoResult](context.Background(), bus, cmd)
	require.ErrorIs(t, err, boom, "the first failure keeps its typed error")

	// The failure is not recorded; once the cause clears, a retry under
	// the same key runs and succeeds.
	handler.err = nil
	out, err := commands.Dispatch[echoCommand, *echoResult](context.Background(), bus, cmd)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Value)
	assert.Equal(t, 2, handler.calls)

	// The success is recorded as usual.
	_, err = commands.Dispatch[echoCommand, *echoResult](context.Background(), bus, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, handler.calls)
}

func TestEmptyKeySkipsIdempotency(t *testing.T) {
	handler := &countingHandler{}
	bus := buildBus(handler, newMemStore())
	cmd := echoCommand{Value: "hello"}

	for range 3 {
		_, err := commands.Dispatch[echoCommand, *echoResult](context.Background(), bus, cmd)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, handler.calls)
}

func TestDistinctKeysRunIndependently(t *testing.T) {
	handler := &countingHandler{}
	bus := buildBus(handler, newMemStore())

	_, err := commands.Dispatch[echoCommand, *echoResult](context.Background(), bus, echoCommand{Value: "a", Key_: "k1"})
	require.NoError(t, err)
	_, err = commands.Dispatch[echoCommand, *echoResult](context.Background(), bus, echoCommand{Value: "b", Key_: "k2"})
	require.NoError(t, err)

	assert.Equal(t, 2, handler.calls)
}
