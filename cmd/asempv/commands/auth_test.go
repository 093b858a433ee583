package commands

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestPrompt_PipedInputReadsOneLine(t *testing.T) {
	cmd := &cobra.Command{}
	var errOut bytes.Buffer
	cmd.SetIn(strings.NewReader("hunter2\r\nignored\n"))
	cmd.SetErr(&errOut)

	got, err := prompt(cmd, "Password: ")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if got != "hunter2" {
		t.Fatalf("password = %q", got)
	}
	if errOut.String() != "Password: " {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestPrompt_TerminalReadsWithoutEcho(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	var read bool
	oldTerm, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })
	isTerminal = func(fd uintptr) bool { return fd == r.Fd() }
	readPassword = func(fd uintptr) ([]byte, error) {
		read = true
		return []byte("s3cret"), nil
	}

	cmd := &cobra.Command{}
	var errOut bytes.Buffer
	cmd.SetIn(r)
	cmd.SetErr(&errOut)

	got, err := prompt(cmd, "Password: ")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if !read || got != "s3cret" {
		t.Fatalf("read=%v password=%q", read, got)
	}
	if errOut.String() != "Password: \n" {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestPrompt_EmptyInputFails(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(""))
	cmd.SetErr(&bytes.Buffer{})

	if _, err := prompt(cmd, "Password: "); err == nil {
		t.Fatal("want error on empty stdin")
	}
}
