package appcontroller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrCommandNotFound          = errors.New("appcontroller: command not found")
	ErrCommandAlreadyRegistered = errors.New("appcontroller: command already registered")
	ErrInvalidMessage           = errors.New("appcontroller: invalid message")
)

// Message はコントローラーを経由するデータ・イベントの共通インターフェースです。
// MessageName がディスパッチテーブルのキーになります。
type Message interface {
	MessageName() string
}

// Command は T 型のデータを処理するコマンドです。
type Command[T Message] interface {
	Execute(ctx context.Context, data T) error
}

// CommandFactory は Execute のたびにデータからコマンドを生成します。
type CommandFactory[T Message] func(data T) (Command[T], error)

// EventHandler は T 型イベントの購読ハンドラです。
type EventHandler[T Message] func(ctx context.Context, event T) error

type commandEntry func(ctx context.Context, data Message) error

type eventEntry func(ctx context.Context, event Message) error

// Controller はコマンドの解決とイベントの配信を担うアプリケーションコントローラーです。
type Controller struct {
	mu       sync.RWMutex
	commands map[string]commandEntry
	handlers map[string][]eventEntry
	logger   zerolog.Logger
}

// New は Controller を生成します。
func New(logger zerolog.Logger) *Controller {
	return &Controller{
		commands: make(map[string]commandEntry),
		handlers: make(map[string][]eventEntry),
		logger:   logger.With().Str("component", "appcontroller").Logger(),
	}
}

// RegisterCommand は T 型データを処理するコマンドファクトリを登録します。
func RegisterCommand[T Message](c *Controller, factory CommandFactory[T]) error {
	if factory == nil {
		return fmt.Errorf("appcontroller: command factory is required")
	}

	var zero T
	name := zero.MessageName()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.commands[name]; exists {
		return fmt.Errorf("%s: %w", name, ErrCommandAlreadyRegistered)
	}

	c.commands[name] = func(ctx context.Context, data Message) error {
		typed, ok := data.(T)
		if !ok {
			return fmt.Errorf("%s: unexpected payload %T: %w", name, data, ErrInvalidMessage)
		}
		cmd, err := factory(typed)
		if err != nil {
			return fmt.Errorf("%s: resolve command: %w", name, err)
		}
		return cmd.Execute(ctx, typed)
	}
	return nil
}

// Subscribe は T 型イベントのハンドラを登録順の末尾に追加します。
func Subscribe[T Message](c *Controller, handler EventHandler[T]) {
	if handler == nil {
		return
	}

	var zero T
	name := zero.MessageName()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.handlers[name] = append(c.handlers[name], func(ctx context.Context, event Message) error {
		typed, ok := event.(T)
		if !ok {
			return fmt.Errorf("%s: unexpected event %T: %w", name, event, ErrInvalidMessage)
		}
		return handler(ctx, typed)
	})
}

// Execute はデータに対応するコマンドを解決し、同期的に実行します。
func (c *Controller) Execute(ctx context.Context, data Message) error {
	if data == nil {
		return ErrInvalidMessage
	}
	name := data.MessageName()

	c.mu.RLock()
	entry, ok := c.commands[name]
	c.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%s: %w", name, ErrCommandNotFound)
	}

	c.logger.Debug().Str("message", name).Msg("executing command")
	return entry(ctx, data)
}

// Raise はイベントを登録済みの全ハンドラへ登録順に配信します。
// 途中のハンドラが失敗しても残りのハンドラは呼び出され、エラーはまとめて返されます。
func (c *Controller) Raise(ctx context.Context, event Message) error {
	if event == nil {
		return ErrInvalidMessage
	}
	name := event.MessageName()

	c.mu.RLock()
	handlers := append([]eventEntry(nil), c.handlers[name]...)
	c.mu.RUnlock()

	c.logger.Debug().Str("event", name).Int("subscribers", len(handlers)).Msg("raising event")

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, event); err != nil {
			c.logger.Error().Err(err).Str("event", name).Msg("event handler failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
