package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

var errEmptyPassphrase = errors.New("passphrase must not be empty")

// readPassphrase prompts on stderr and reads without echo from a terminal.
// Piped input is read one line per prompt.
func (c *cli) readPassphrase(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	var (
		line string
		err  error
	)
	if in, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(int(in.Fd())) {
		var b []byte
		b, err = readPassword(int(in.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		line = string(b)
	} else {
		line, err = c.readLine(cmd.InOrStdin())
	}
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}

	if line == "" {
		return "", errEmptyPassphrase
	}
	return line, nil
}

func (c *cli) readLine(r io.Reader) (string, error) {
	if c.stdin == nil {
		c.stdin = bufio.NewReader(r)
	}

	line, err := c.stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
