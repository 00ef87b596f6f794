package backend

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mmcdole/pricetrack/internal/domain"
	"golang.org/x/term"
)

// PromptCredentials asks for an email and password on the terminal.
// The password is read without echo when in is a terminal.
func PromptCredentials(in *os.File, out io.Writer) (domain.Credentials, error) {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "Email: ")
	email, err := reader.ReadString('\n')
	if err != nil && email == "" {
		return domain.Credentials{}, fmt.Errorf("failed to read email: %w", err)
	}

	fmt.Fprint(out, "Password: ")
	var password string
	if term.IsTerminal(int(in.Fd())) {
		passwordBytes, err := term.ReadPassword(int(in.Fd()))
		if err != nil {
			return domain.Credentials{}, fmt.Errorf("failed to read password: %w", err)
		}
		password = string(passwordBytes)
		fmt.Fprintln(out) // Newline after hidden input
	} else {
		password, err = reader.ReadString('\n')
		if err != nil && password == "" {
			return domain.Credentials{}, fmt.Errorf("failed to read password: %w", err)
		}
	}

	return domain.Credentials{
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
	}, nil
}

// PromptLine prints label and reads one trimmed line from in
func PromptLine(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// PromptSecret prints label and reads one line without echo when in is a terminal
func PromptSecret(in *os.File, out io.Writer, label string) (string, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return PromptLine(in, out, label)
	}

	fmt.Fprint(out, label)
	secret, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}
