package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/minigit/pkg/object"
)

type lsTreeOptions struct {
	nameOnly  bool
	recursive bool

	name string
	hash object.Hash
}

func (o *lsTreeOptions) validate(args []string) error {
	o.name = args[0]
	h, err := parseObjectName(o.name)
	if err != nil {
		return err
	}
	o.hash = h
	return nil
}

func newLsTreeCmd() *cobra.Command {
	var opts lsTreeOptions

	cmd := &cobra.Command{
		Use:   "ls-tree [--name-only] [-r] <tree-ish>",
		Short: "List the contents of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(args); err != nil {
				return err
			}

			r, err := openRepo(cmd)
			if err != nil {
				return err
			}

			// A commit lists its tree.
			name, tree := opts.name, opts.hash
			objType, _, err := r.Store.Stat(tree)
			if err != nil {
				return lookupError(name, err)
			}
			switch objType {
			case object.TypeCommit:
				c, err := r.Store.ReadCommit(tree)
				if err != nil {
					return err
				}
				name, tree = c.TreeHash.String(), c.TreeHash
			case object.TypeBlob:
				return fmt.Errorf("not a tree object: %s", name)
			}

			listing, err := r.ListTree(tree, opts.recursive)
			if err != nil {
				switch {
				case errors.Is(err, object.ErrObjectNotFound):
					return lookupError(name, err)
				case errors.Is(err, object.ErrInvalidArgument):
					return fmt.Errorf("not a tree object: %s: %w", name, err)
				}
				return err
			}

			out := cmd.OutOrStdout()
			for _, l := range listing {
				if opts.nameOnly {
					fmt.Fprintln(out, l.Path)
					continue
				}
				fmt.Fprintln(out, object.FormatEntry(l.Entry, l.Path))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.nameOnly, "name-only", false, "list only entry names")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "recurse into subtrees")

	return cmd
}
