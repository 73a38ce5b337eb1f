package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/odvcencio/minigit/pkg/object"
)

type commitTreeOptions struct {
	parentNames []string
	messages    []string

	treeName string
	tree     object.Hash
	parents  []object.Hash
}

func (o *commitTreeOptions) validate(args []string) error {
	o.treeName = args[0]
	h, err := parseObjectName(o.treeName)
	if err != nil {
		return err
	}
	o.tree = h

	seen := make(map[object.Hash]bool)
	for _, name := range o.parentNames {
		p, err := parseObjectName(name)
		if err != nil {
			return err
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		o.parents = append(o.parents, p)
	}
	return nil
}

func newCommitTreeCmd() *cobra.Command {
	var opts commitTreeOptions

	cmd := &cobra.Command{
		Use:   "commit-tree <tree> [-p <parent>]... [-m <message>]...",
		Short: "Create a commit object for a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(args); err != nil {
				return err
			}

			// Each -m is its own paragraph; without -m the message is read
			// from stdin.
			var message string
			if len(opts.messages) > 0 {
				message = strings.Join(opts.messages, "\n\n")
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read message: %w", err)
				}
				message = strings.TrimSuffix(string(data), "\n")
			}

			r, err := openRepo(cmd)
			if err != nil {
				return err
			}

			if !r.Store.Has(opts.tree) {
				return invalidObjectName(opts.treeName)
			}
			for _, p := range opts.parents {
				if !r.Store.Has(p) {
					return invalidObjectName(p.String())
				}
			}

			ident, err := r.Config.Identity(os.Getenv, time.Now())
			if err != nil {
				return err
			}

			h, err := r.CommitTree(opts.tree, opts.parents, message, ident)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&opts.parentNames, "parent", "p", nil, "id of a parent commit object")
	cmd.Flags().StringArrayVarP(&opts.messages, "message", "m", nil, "commit message paragraph")

	return cmd
}
