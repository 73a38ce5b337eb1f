package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/minigit/pkg/object"
	"github.com/odvcencio/minigit/pkg/repo"
)

type hashObjectOptions struct {
	write bool
	stdin bool
	paths []string
}

func (o *hashObjectOptions) validate(args []string) error {
	o.paths = args
	if !o.stdin && len(o.paths) == 0 {
		return fmt.Errorf("no file given (pass a path or --stdin)")
	}
	return nil
}

func newHashObjectCmd() *cobra.Command {
	var opts hashObjectOptions

	cmd := &cobra.Command{
		Use:   "hash-object [-w] [--stdin] [<file>...]",
		Short: "Compute a blob's object name and optionally store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(args); err != nil {
				return err
			}

			// Hashing without -w works outside a repository.
			hash := func(data []byte) (object.Hash, error) {
				return object.HashObject(object.TypeBlob, data), nil
			}
			r, err := openRepo(cmd)
			switch {
			case err == nil && opts.write:
				hash = func(data []byte) (object.Hash, error) {
					return r.Store.WriteBlob(&object.Blob{Data: data})
				}
			case err == nil:
				hash = func(data []byte) (object.Hash, error) {
					return r.Store.Hash(object.TypeBlob, data)
				}
			case opts.write || !errors.Is(err, repo.ErrNotRepository):
				return err
			}

			var inputs [][]byte
			if opts.stdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				inputs = append(inputs, data)
			}
			for _, p := range opts.paths {
				data, err := os.ReadFile(p)
				if err != nil {
					return fmt.Errorf("could not open '%s' for reading: %w", p, err)
				}
				inputs = append(inputs, data)
			}

			for _, data := range inputs {
				h, err := hash(data)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the object into the object store")
	cmd.Flags().BoolVar(&opts.stdin, "stdin", false, "read the object from standard input")

	return cmd
}
