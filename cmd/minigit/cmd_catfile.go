package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/minigit/pkg/object"
)

type catFileMode int

const (
	catPretty catFileMode = iota + 1
	catType
	catSize
	catExists
)

type catFileOptions struct {
	pretty, showType, showSize, exists bool

	mode catFileMode
	name string
	hash object.Hash
}

// validate picks exactly one mode and parses the object name.
func (o *catFileOptions) validate(args []string) error {
	modes := map[catFileMode]bool{
		catPretty: o.pretty,
		catType:   o.showType,
		catSize:   o.showSize,
		catExists: o.exists,
	}
	for m, set := range modes {
		if !set {
			continue
		}
		if o.mode != 0 {
			return fmt.Errorf("only one of -p, -t, -s, -e may be given")
		}
		o.mode = m
	}
	if o.mode == 0 {
		return fmt.Errorf("one of -p, -t, -s, -e is required")
	}

	o.name = args[0]
	h, err := parseObjectName(o.name)
	if err != nil {
		return err
	}
	o.hash = h
	return nil
}

func newCatFileCmd() *cobra.Command {
	var opts catFileOptions

	cmd := &cobra.Command{
		Use:   "cat-file (-p | -t | -s | -e) <object>",
		Short: "Show content, type or size of an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(args); err != nil {
				return err
			}

			r, err := openRepo(cmd)
			if err != nil {
				return err
			}

			objType, data, err := r.Store.Read(opts.hash)
			if err != nil {
				if opts.mode == catExists && errors.Is(err, object.ErrObjectNotFound) {
					return &exitError{code: 1, silent: true}
				}
				return lookupError(opts.name, err)
			}

			out := cmd.OutOrStdout()
			switch opts.mode {
			case catType:
				fmt.Fprintln(out, objType)
			case catSize:
				fmt.Fprintln(out, len(data))
			case catExists:
			case catPretty:
				if objType != object.TypeTree {
					_, err := out.Write(data)
					return err
				}
				tr, err := object.UnmarshalTree(data)
				if err != nil {
					return fmt.Errorf("object %s: %w", opts.hash, err)
				}
				for _, e := range tr.Entries {
					fmt.Fprintln(out, object.FormatEntry(e, e.Name))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.pretty, "pretty", "p", false, "pretty-print the object's content")
	cmd.Flags().BoolVarP(&opts.showType, "type", "t", false, "show the object's type")
	cmd.Flags().BoolVarP(&opts.showSize, "size", "s", false, "show the object's size")
	cmd.Flags().BoolVarP(&opts.exists, "exists", "e", false, "exit with zero status if the object exists")

	return cmd
}
