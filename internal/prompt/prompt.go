package prompt

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Secret reads one line from the terminal without echo. The terminal state
// is restored if the read is interrupted.
func Secret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal")
	}
	state, err := term.GetState(fd)
	if err != nil {
		return "", errors.Wrap(err, "terminal state")
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-c:
			_ = term.Restore(fd, state)
			os.Exit(1)
		case <-done:
		}
	}()
	defer signal.Stop(c)

	fmt.Print(prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", errors.Wrap(err, "read secret")
	}
	return strings.TrimSpace(string(secret)), nil
}
