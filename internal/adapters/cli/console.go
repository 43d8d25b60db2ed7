// Package cli は組織図を端末で操作するための View と入力プロンプトです。
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console は行単位の入出力を扱います。View とプロンプトで共有します。
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewConsole は Console を生成します。
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{scanner: bufio.NewScanner(in), out: out}
}

// Ask は prompt を表示して 1 行読み取ります。入力が尽きた場合は false を返します。
func (c *Console) Ask(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.scanner.Scan() {
		fmt.Fprintln(c.out)
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

// Printf は出力先に書き込みます。
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
