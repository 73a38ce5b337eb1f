package object

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// TreeObj
// ---------------------------------------------------------------------------

// CompareEntries orders tree entries by name, byte-wise. It is the only
// ordering trees are written in.
func CompareEntries(a, b TreeEntry) int {
	return strings.Compare(a.Name, b.Name)
}

// MarshalTree serializes a TreeObj in git's binary tree format. Entries are
// sorted by name for deterministic output, and each is written as
//
//	<mode> SP <name> NUL <20 raw hash bytes>
func MarshalTree(tr *TreeObj) ([]byte, error) {
	sorted := slices.Clone(tr.Entries)
	slices.SortFunc(sorted, CompareEntries)

	var buf bytes.Buffer
	for i, e := range sorted {
		if err := validateTreeEntry(e); err != nil {
			return nil, fmt.Errorf("marshal tree: %w", err)
		}
		if i > 0 && sorted[i-1].Name == e.Name {
			return nil, fmt.Errorf("marshal tree: %w: duplicate entry %q", ErrInvalidArgument, e.Name)
		}
		raw, err := e.Hash.Raw()
		if err != nil {
			return nil, fmt.Errorf("marshal tree: entry %q: %w", e.Name, err)
		}
		buf.WriteString(e.Mode)
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(raw[:])
	}
	return buf.Bytes(), nil
}

func validateTreeEntry(e TreeEntry) error {
	if !validMode(e.Mode) {
		return fmt.Errorf("%w: entry %q: bad mode %q", ErrInvalidArgument, e.Name, e.Mode)
	}
	if e.Name == "" || e.Name == "." || e.Name == ".." || strings.ContainsAny(e.Name, "/\x00") {
		return fmt.Errorf("%w: bad entry name %q", ErrInvalidArgument, e.Name)
	}
	return nil
}

// validMode accepts non-empty strings of octal digits.
func validMode(mode string) bool {
	if mode == "" {
		return false
	}
	for i := 0; i < len(mode); i++ {
		if mode[i] < '0' || mode[i] > '7' {
			return false
		}
	}
	return true
}

// treeParseState is the field the tree parser expects next.
type treeParseState int

const (
	parseMode treeParseState = iota
	parseName
	parseHash
)

// UnmarshalTree parses a tree payload. Each record is read in three steps:
// the mode up to a space, the name up to a NUL, then exactly 20 hash bytes.
// The payload is exhausted only when the offset lands exactly on its end
// while a new record would begin; anything else is a grammar error.
func UnmarshalTree(data []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	state := parseMode
	off := 0
	var entry TreeEntry

	for {
		switch state {
		case parseMode:
			if off == len(data) {
				return tr, nil
			}
			sp := bytes.IndexByte(data[off:], ' ')
			if sp < 0 {
				return nil, fmt.Errorf("unmarshal tree: %w: offset %d: missing mode terminator", ErrInvalidArgument, off)
			}
			entry = TreeEntry{Mode: string(data[off : off+sp])}
			if !validMode(entry.Mode) {
				return nil, fmt.Errorf("unmarshal tree: %w: offset %d: bad mode %q", ErrInvalidArgument, off, entry.Mode)
			}
			off += sp + 1
			state = parseName

		case parseName:
			nul := bytes.IndexByte(data[off:], 0)
			if nul < 0 {
				return nil, fmt.Errorf("unmarshal tree: %w: offset %d: missing name terminator", ErrInvalidArgument, off)
			}
			if nul == 0 {
				return nil, fmt.Errorf("unmarshal tree: %w: offset %d: empty name", ErrInvalidArgument, off)
			}
			entry.Name = string(data[off : off+nul])
			off += nul + 1
			state = parseHash

		case parseHash:
			if len(data)-off < HashSize {
				return nil, fmt.Errorf("unmarshal tree: %w: entry %q: truncated hash (%d of %d bytes)", ErrInvalidArgument, entry.Name, len(data)-off, HashSize)
			}
			h, err := HashFromRaw(data[off : off+HashSize])
			if err != nil {
				return nil, fmt.Errorf("unmarshal tree: %w", err)
			}
			entry.Hash = h
			off += HashSize
			tr.Entries = append(tr.Entries, entry)
			state = parseMode
		}
	}
}

// FormatEntry renders one entry the way ls-tree does:
//
//	<mode, zero-padded to 6> SP <type> SP <hash> TAB <name>
func FormatEntry(e TreeEntry, name string) string {
	mode := e.Mode
	if len(mode) < 6 {
		mode = strings.Repeat("0", 6-len(mode)) + mode
	}
	return fmt.Sprintf("%s %s %s\t%s", mode, e.Type(), e.Hash, name)
}

// ---------------------------------------------------------------------------
// CommitObj
// ---------------------------------------------------------------------------

// MarshalCommit serializes a CommitObj:
//
//	tree H
//	parent H     (zero or more)
//	author S
//	committer S
//
//	message
//
// The message is always followed by a single newline.
func MarshalCommit(c *CommitObj) ([]byte, error) {
	if _, err := ParseHash(string(c.TreeHash)); err != nil {
		return nil, fmt.Errorf("marshal commit: tree: %w", err)
	}
	for _, p := range c.Parents {
		if _, err := ParseHash(string(p)); err != nil {
			return nil, fmt.Errorf("marshal commit: parent: %w", err)
		}
	}
	if err := c.Author.Validate(); err != nil {
		return nil, fmt.Errorf("marshal commit: author: %w", err)
	}
	if err := c.Committer.Validate(); err != nil {
		return nil, fmt.Errorf("marshal commit: committer: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", c.TreeHash)
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "author %s\n", c.Author)
	fmt.Fprintf(&buf, "committer %s\n", c.Committer)
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// UnmarshalCommit parses a CommitObj from its serialized form. Header keys
// other than tree, parent, author and committer (gpgsig, encoding, ...) and
// their continuation lines are skipped.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal commit: %w: missing header/message separator", ErrInvalidArgument)
	}
	header := string(data[:idx])
	message := strings.TrimSuffix(string(data[idx+2:]), "\n")

	c := &CommitObj{Message: message}
	var sawTree, sawAuthor, sawCommitter bool
	for _, line := range strings.Split(header, "\n") {
		if strings.HasPrefix(line, " ") {
			continue
		}
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: %w: malformed header line %q", ErrInvalidArgument, line)
		}
		switch key {
		case "tree":
			h, err := ParseHash(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: tree: %w", err)
			}
			c.TreeHash = h
			sawTree = true
		case "parent":
			h, err := ParseHash(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: parent: %w", err)
			}
			c.Parents = append(c.Parents, h)
		case "author":
			sig, err := ParseSignature(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: %w: %w", ErrInvalidArgument, err)
			}
			c.Author = sig
			sawAuthor = true
		case "committer":
			sig, err := ParseSignature(val)
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: %w: %w", ErrInvalidArgument, err)
			}
			c.Committer = sig
			sawCommitter = true
		}
	}
	if !sawTree || !sawAuthor || !sawCommitter {
		return nil, fmt.Errorf("unmarshal commit: %w: missing tree, author or committer", ErrInvalidArgument)
	}
	return c, nil
}
