package object

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

// Valid reports whether t is one of the object kinds the store understands.
func (t ObjectType) Valid() bool {
	switch t {
	case TypeBlob, TypeTree, TypeCommit:
		return true
	}
	return false
}

const (
	// Tree mode constants, as written by git.
	TreeModeDir  = "40000"
	TreeModeFile = "100644"
)

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// TreeEntry is one entry in a tree object. The entry's object type is
// derived from Mode and never stored on its own.
type TreeEntry struct {
	Mode string
	Name string
	Hash Hash
}

// Type returns the kind of object the entry points at: "100644" is a blob,
// every other mode is a tree.
func (e TreeEntry) Type() ObjectType {
	if e.Mode == TreeModeFile {
		return TypeBlob
	}
	return TypeTree
}

// TreeObj holds a list of tree entries. Entries decoded from the store are
// sorted by Name; MarshalTree sorts before writing.
type TreeObj struct {
	Entries []TreeEntry
}

// CommitObj represents a commit pointing to a tree with metadata.
type CommitObj struct {
	TreeHash  Hash
	Parents   []Hash
	Author    Signature
	Committer Signature
	Message   string
}
