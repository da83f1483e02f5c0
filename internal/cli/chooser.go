package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrInputAborted signals that interactive input was interrupted, typically
// by Ctrl+C cancelling the context or closing stdin.
var ErrInputAborted = errors.New("input aborted")

// StdinChooser presents a numbered menu on the terminal and reads the
// selection from stdin. It satisfies snapshot.Chooser.
type StdinChooser struct {
	ctx context.Context
	in  *bufio.Reader
	out io.Writer
}

func NewStdinChooser(ctx context.Context) *StdinChooser {
	return &StdinChooser{
		ctx: ctx,
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
	}
}

// Interactive reports whether stdin is attached to a terminal. Menus are
// only offered when it is.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (c *StdinChooser) Choose(title string, options []string) (int, error) {
	fmt.Fprintf(c.out, "\n%s:\n", title)
	for i, opt := range options {
		fmt.Fprintf(c.out, "  %2d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(c.out, "Enter number (1-%d): ", len(options))

		line, err := c.readLine()
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintln(c.out, "invalid selection")
			continue
		}
		return n - 1, nil
	}
}

// readLine reads one line and honors context cancellation, so a Ctrl+C
// during the prompt aborts cleanly instead of leaving a blocked read.
func (c *StdinChooser) readLine() (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = ErrInputAborted
		}
		ch <- result{line: line, err: err}
	}()

	select {
	case <-c.ctx.Done():
		return "", ErrInputAborted
	case res := <-ch:
		return res.line, res.err
	}
}
