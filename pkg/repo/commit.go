package repo

import (
	"fmt"

	"github.com/odvcencio/minigit/pkg/object"
)

// CommitTree writes a commit object for tree and returns its hash. parents
// is empty for a root commit. The same signature is recorded as author and
// committer. Refs are not touched.
//
// The tree must exist and be a tree; each parent must exist and be a commit.
func (r *Repo) CommitTree(tree object.Hash, parents []object.Hash, message string, ident object.Signature) (object.Hash, error) {
	if err := r.expectType(tree, object.TypeTree); err != nil {
		return "", fmt.Errorf("commit tree: %w", err)
	}
	for _, p := range parents {
		if err := r.expectType(p, object.TypeCommit); err != nil {
			return "", fmt.Errorf("commit tree: parent: %w", err)
		}
	}

	c := &object.CommitObj{
		TreeHash:  tree,
		Parents:   parents,
		Author:    ident,
		Committer: ident,
		Message:   message,
	}
	h, err := r.Store.WriteCommit(c)
	if err != nil {
		return "", fmt.Errorf("commit tree: %w", err)
	}
	return h, nil
}

func (r *Repo) expectType(h object.Hash, want object.ObjectType) error {
	got, _, err := r.Store.Stat(h)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("object %s: %w: is a %s, not a %s", h, object.ErrInvalidArgument, got, want)
	}
	return nil
}
