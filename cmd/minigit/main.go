package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/minigit/pkg/object"
	"github.com/odvcencio/minigit/pkg/repo"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.silent {
			fmt.Fprintln(stderr, "fatal:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "fatal:", err)
	return 1
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "minigit",
		Short:         "Content-addressed object store with git-compatible plumbing",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "log object store activity to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCatFileCmd())
	root.AddCommand(newHashObjectCmd())
	root.AddCommand(newWriteTreeCmd())
	root.AddCommand(newLsTreeCmd())
	root.AddCommand(newCommitTreeCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "minigit 0.1.0-dev")
		},
	}
}

// exitError carries a specific exit status out of a command.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// invalidObjectName is the diagnostic for names that do not resolve to an
// object.
func invalidObjectName(name string) error {
	return &exitError{code: 128, err: fmt.Errorf("Not a valid object name %s", name)}
}

// lookupError maps a failed object lookup to the user-facing diagnostic.
func lookupError(name string, err error) error {
	if errors.Is(err, object.ErrObjectNotFound) {
		return invalidObjectName(name)
	}
	return err
}

// parseObjectName validates a command-line object name.
func parseObjectName(name string) (object.Hash, error) {
	h, err := object.ParseHash(name)
	if err != nil {
		return "", invalidObjectName(name)
	}
	return h, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func openRepo(cmd *cobra.Command) (*repo.Repo, error) {
	return repo.Open(".", repo.WithLogger(newLogger(cmd)))
}
