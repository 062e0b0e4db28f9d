package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// lineReader reads answers to prompts. It keeps one buffer over stdin so
// successive prompts fed from a pipe each get their own line.
type lineReader struct {
	stdin io.Reader
	buf   *bufio.Reader
}

func newLineReader(stdin io.Reader) *lineReader {
	return &lineReader{stdin: stdin, buf: bufio.NewReader(stdin)}
}

// Line reads one line, without its line ending.
func (r *lineReader) Line() (string, error) {
	line, err := r.buf.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Password reads a line without echo when stdin is a terminal.
func (r *lineReader) Password() (string, error) {
	if f, ok := r.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}
	// Fallback for non-terminal (e.g. tests, pipes)
	return r.Line()
}

// promptPassword asks for a password unless one was given as a flag.
func (a *app) promptPassword(label, given string) (string, error) {
	if given != "" {
		return given, nil
	}
	fmt.Fprintf(a.stdout, "%s: ", label)
	password, err := a.in.Password()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(a.stdout) // Print newline after password input
	return password, nil
}
