package client

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter читает ответы пользователя. Пароль читается без эха, если stdin - терминал.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func NewPrompter(in *os.File, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		fd:  int(in.Fd()),
	}
}

func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) Password(label string) (string, error) {
	if !term.IsTerminal(p.fd) {
		return p.Line(label)
	}

	fmt.Fprint(p.out, label)
	password, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(password), nil
}
