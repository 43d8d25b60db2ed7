package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
	"github.com/rs/zerolog"
)

// Presenter はシェルから呼び出す画面操作です。
type Presenter interface {
	Run(ctx context.Context) error
	AddNewEmployeeRequested(ctx context.Context) error
	EmployeeSelected(ctx context.Context, employee *orgchart.Employee)
}

// Shell は対話的なコマンドループです。
type Shell struct {
	console   *Console
	view      *TreeView
	presenter Presenter
}

// NewShell は Shell を生成します。
func NewShell(console *Console, view *TreeView, presenter Presenter) *Shell {
	return &Shell{console: console, view: view, presenter: presenter}
}

// Run は入力が尽きるか quit が入力されるまでコマンドを処理します。
// 個々のコマンドの失敗は表示して処理を続けます。
func (s *Shell) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if err := s.presenter.Run(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, ok := s.console.Ask("> ")
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "add":
			if err := s.presenter.AddNewEmployeeRequested(ctx); err != nil {
				logger.Error().Err(err).Msg("add new employee failed")
				s.console.Printf("error: %v\n", err)
			}
		case "list":
			if err := s.presenter.Run(ctx); err != nil {
				s.console.Printf("error: %v\n", err)
			}
		case "show":
			if len(fields) != 2 {
				s.console.Printf("usage: show <number>\n")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				s.console.Printf("usage: show <number>\n")
				continue
			}
			employee, ok := s.view.Selected(n)
			if !ok {
				s.console.Printf("no employee numbered %d\n", n)
				continue
			}
			s.presenter.EmployeeSelected(ctx, employee)
		case "help":
			s.console.Printf("commands: add, list, show <number>, quit\n")
		case "quit", "exit":
			return nil
		default:
			s.console.Printf("unknown command %q (try help)\n", fields[0])
		}
	}
}
