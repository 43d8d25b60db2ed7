package appcontroller

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

type pingData struct {
	Value string
}

func (pingData) MessageName() string { return "test.ping" }

type pongEvent struct {
	Value string
}

func (pongEvent) MessageName() string { return "test.pong" }

type recordingCommand struct {
	calls    int
	received []pingData
	err      error
}

func (c *recordingCommand) Execute(_ context.Context, data pingData) error {
	c.calls++
	c.received = append(c.received, data)
	return c.err
}

func TestController_ExecuteResolvesRegisteredCommand(t *testing.T) {
	t.Parallel()

	ctrl := New(zerolog.Nop())
	cmd := &recordingCommand{}
	var factoryInput pingData

	if err := RegisterCommand(ctrl, func(data pingData) (Command[pingData], error) {
		factoryInput = data
		return cmd, nil
	}); err != nil {
		t.Fatalf("RegisterCommand returned error: %v", err)
	}

	if err := ctrl.Execute(context.Background(), pingData{Value: "hello"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if factoryInput.Value != "hello" {
		t.Errorf("expected factory to receive the data, got %+v", factoryInput)
	}
	if cmd.calls != 1 {
		t.Errorf("expected one command call, got %d", cmd.calls)
	}
	if !reflect.DeepEqual(cmd.received, []pingData{{Value: "hello"}}) {
		t.Errorf("unexpected data received: %+v", cmd.received)
	}
}

func TestController_ExecuteUnknownCommand(t *testing.T) {
	t.Parallel()

	ctrl := New(zerolog.Nop())

	if err := ctrl.Execute(context.Background(), pingData{}); !errors.Is(err, ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound, got %v", err)
	}
}

func TestController_ExecuteNilMessage(t *testing.T) {
	t.Parallel()

	ctrl := New(zerolog.Nop())

	if err := ctrl.Execute(context.Background(), nil); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage from Execute, got %v", err)
	}
	if err := ctrl.Raise(context.Background(), nil); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage from Raise, got %v", err)
	}
}

func TestController_RegisterCommandTwice(t *testing.T) {
	t.Parallel()

	ctrl := New(zerolog.Nop())
	factory := func(pingData) (Command[pingData], error) { return &recordingCommand{}, nil }

	if err := RegisterCommand(ctrl, factory); err != nil {
		t.Fatalf("RegisterCommand returned error: %v", err)
	}
	if err := RegisterCommand(ctrl, factory); !errors.Is(err, ErrCommandAlreadyRegistered) {
		t.Fatalf("expected ErrCommandAlreadyRegistered, got %v", err)
	}
	if err := RegisterCommand[pingData](ctrl, nil); err == nil {
		t.Fatal("expected error for nil factory")
	}
}

func TestController_ExecutePropagatesErrors(t *testing.T) {
	t.Parallel()

	factoryErr := errors.New("no collaborators")
	ctrl := New(zerolog.Nop())
	if err := RegisterCommand(ctrl, func(pingData) (Command[pingData], error) {
		return nil, factoryErr
	}); err != nil {
		t.Fatalf("RegisterCommand returned error: %v", err)
	}

	if err := ctrl.Execute(context.Background(), pingData{}); !errors.Is(err, factoryErr) {
		t.Fatalf("expected factory error, got %v", err)
	}

	cmdErr := errors.New("repository unavailable")
	other := New(zerolog.Nop())
	if err := RegisterCommand(other, func(pingData) (Command[pingData], error) {
		return &recordingCommand{err: cmdErr}, nil
	}); err != nil {
		t.Fatalf("RegisterCommand returned error: %v", err)
	}

	if err := other.Execute(context.Background(), pingData{}); !errors.Is(err, cmdErr) {
		t.Fatalf("expected command error, got %v", err)
	}
}

func TestController_RaiseDeliversInRegistrationOrder(t *testing.T) {
	t.Parallel()

	ctrl := New(zerolog.Nop())
	var order []string

	Subscribe(ctrl, func(_ context.Context, ev pongEvent) error {
		order = append(order, "first:"+ev.Value)
		return nil
	})
	Subscribe(ctrl, func(_ context.Context, ev pongEvent) error {
		order = append(order, "second:"+ev.Value)
		return nil
	})
	Subscribe(ctrl, func(_ context.Context, _ pingData) error {
		order = append(order, "unrelated")
		return nil
	})

	if err := ctrl.Raise(context.Background(), pongEvent{Value: "x"}); err != nil {
		t.Fatalf("Raise returned error: %v", err)
	}
	if want := []string{"first:x", "second:x"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
}

func TestController_RaiseContinuesAfterHandlerFailure(t *testing.T) {
	t.Parallel()

	ctrl := New(zerolog.Nop())
	handlerErr := errors.New("view closed")
	delivered := 0

	Subscribe(ctrl, func(context.Context, pongEvent) error { return handlerErr })
	Subscribe(ctrl, func(context.Context, pongEvent) error {
		delivered++
		return nil
	})

	if err := ctrl.Raise(context.Background(), pongEvent{}); !errors.Is(err, handlerErr) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if delivered != 1 {
		t.Fatalf("expected remaining handler to run once, got %d", delivered)
	}
}

func TestController_RaiseWithoutSubscribers(t *testing.T) {
	t.Parallel()

	ctrl := New(zerolog.Nop())
	if err := ctrl.Raise(context.Background(), pongEvent{}); err != nil {
		t.Fatalf("Raise returned error: %v", err)
	}
}

type dynamicData struct {
	name string
}

func (d dynamicData) MessageName() string { return d.name }

func TestController_ConcurrentRegistrationAndDispatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctrl := New(zerolog.Nop())

	var executed atomic.Int64
	if err := RegisterCommand(ctrl, func(pingData) (Command[pingData], error) {
		return commandFunc(func(context.Context, pingData) error {
			executed.Add(1)
			return nil
		}), nil
	}); err != nil {
		t.Fatalf("RegisterCommand returned error: %v", err)
	}

	const workers = 20
	var delivered atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			Subscribe(ctrl, func(context.Context, pongEvent) error {
				delivered.Add(1)
				return nil
			})
		}()
		go func() {
			defer wg.Done()
			if err := ctrl.Raise(ctx, pongEvent{}); err != nil {
				t.Errorf("Raise returned error: %v", err)
			}
		}()
		go func(i int) {
			defer wg.Done()
			if err := ctrl.Execute(ctx, pingData{Value: fmt.Sprint(i)}); err != nil {
				t.Errorf("Execute returned error: %v", err)
			}
			if err := ctrl.Execute(ctx, dynamicData{name: fmt.Sprintf("test.unknown.%d", i)}); !errors.Is(err, ErrCommandNotFound) {
				t.Errorf("expected ErrCommandNotFound, got %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := executed.Load(); got != workers {
		t.Fatalf("expected %d executions, got %d", workers, got)
	}

	before := delivered.Load()
	if err := ctrl.Raise(ctx, pongEvent{}); err != nil {
		t.Fatalf("Raise returned error: %v", err)
	}
	if got := delivered.Load() - before; got != workers {
		t.Fatalf("expected every subscriber to receive the event, got %d", got)
	}
}

type commandFunc func(ctx context.Context, data pingData) error

func (f commandFunc) Execute(ctx context.Context, data pingData) error {
	return f(ctx, data)
}
