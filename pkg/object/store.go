package object

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123...
type Store struct {
	root   string
	level  int
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for debug-level write tracing.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCompressionLevel sets the zlib level (-1 for the default, 0-9).
func WithCompressionLevel(level int) StoreOption {
	return func(s *Store) {
		s.level = level
	}
}

// NewStore creates a Store rooted at the given directory (the repository
// metadata directory). The objects/ subdirectory is created lazily on first
// write.
func NewStore(root string, opts ...StoreOption) *Store {
	s := &Store{root: root, level: DefaultCompression, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// objectPath returns the filesystem path for a validated hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	h, err := ParseHash(string(h))
	if err != nil {
		return false
	}
	_, err = os.Stat(s.objectPath(h))
	return err == nil
}

// Hash computes the hash an object would be stored under without writing it.
func (s *Store) Hash(objType ObjectType, data []byte) (Hash, error) {
	if !objType.Valid() {
		return "", fmt.Errorf("object hash: %w: unknown type %q", ErrInvalidArgument, objType)
	}
	return HashObject(objType, data), nil
}

// Write stores an object and returns its content hash. The on-disk format is
// zlib("type len\0content"). The whole compressed buffer is built before the
// file is created, then written to a temp file and renamed into place, so an
// object path holds either nothing or a complete object. Writing an object
// that already exists is a no-op.
func (s *Store) Write(objType ObjectType, data []byte) (Hash, error) {
	if !objType.Valid() {
		return "", fmt.Errorf("object write: %w: unknown type %q", ErrInvalidArgument, objType)
	}
	raw := append(Header(objType, len(data)), data...)
	h := HashObject(objType, data)

	// Fast path: already exists.
	if s.Has(h) {
		s.logger.Debug("object exists", "hash", h, "type", objType)
		return h, nil
	}

	compressed, err := compressZlibLevel(raw, s.level)
	if err != nil {
		return "", fmt.Errorf("object write %s: compress: %w", h, err)
	}

	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write %s: %w: %w", h, ErrIO, err)
	}

	// Atomic write via temp + rename.
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write %s: %w: %w", h, ErrIO, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write %s: %w: %w", h, ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write %s: close: %w: %w", h, ErrIO, err)
	}
	if err := os.Chmod(tmpName, 0o444); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write %s: chmod: %w: %w", h, ErrIO, err)
	}
	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write %s: rename: %w: %w", h, ErrIO, err)
	}

	s.logger.Debug("object written", "hash", h, "type", objType, "size", len(data))
	return h, nil
}

// Read retrieves an object by hash, returning its type and raw content.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	h, err := ParseHash(string(h))
	if err != nil {
		return "", nil, fmt.Errorf("object read: %w", err)
	}

	compressed, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("object read %s: %w", h, ErrObjectNotFound)
		}
		return "", nil, fmt.Errorf("object read %s: %w: %w", h, ErrIO, err)
	}

	raw, err := decompressZlib(compressed)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w: inflate: %v", h, ErrCorruptObject, err)
	}

	objType, content, err := parseEnvelope(raw)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return objType, content, nil
}

// Stat returns an object's type and payload size.
func (s *Store) Stat(h Hash) (ObjectType, int, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return "", 0, err
	}
	return objType, len(data), nil
}

// parseEnvelope splits "type len\0content" and checks the declared length.
func parseEnvelope(raw []byte) (ObjectType, []byte, error) {
	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("%w: invalid format (no NUL)", ErrCorruptObject)
	}
	header := string(raw[:nulIdx])
	content := raw[nulIdx+1:]

	kind, size, ok := strings.Cut(header, " ")
	if !ok {
		return "", nil, fmt.Errorf("%w: invalid header %q", ErrCorruptObject, header)
	}
	objType := ObjectType(kind)
	if !objType.Valid() {
		return "", nil, fmt.Errorf("%w: unknown type %q", ErrCorruptObject, kind)
	}
	length, err := strconv.ParseUint(size, 10, 63)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid length %q", ErrCorruptObject, size)
	}
	if uint64(len(content)) != length {
		return "", nil, fmt.Errorf("%w: length mismatch (header=%d, actual=%d)", ErrCorruptObject, length, len(content))
	}
	return objType, content, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

func (s *Store) readTyped(h Hash, want ObjectType) ([]byte, error) {
	objType, data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != want {
		return nil, fmt.Errorf("object %s: %w: type mismatch: got %q, want %q", h, ErrInvalidArgument, objType, want)
	}
	return data, nil
}

// WriteBlob serializes and stores a Blob.
func (s *Store) WriteBlob(b *Blob) (Hash, error) {
	return s.Write(TypeBlob, MarshalBlob(b))
}

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	data, err := s.readTyped(h, TypeBlob)
	if err != nil {
		return nil, err
	}
	return UnmarshalBlob(data)
}

// WriteTree serializes and stores a TreeObj.
func (s *Store) WriteTree(tr *TreeObj) (Hash, error) {
	data, err := MarshalTree(tr)
	if err != nil {
		return "", err
	}
	return s.Write(TypeTree, data)
}

// ReadTree reads and deserializes a TreeObj.
func (s *Store) ReadTree(h Hash) (*TreeObj, error) {
	data, err := s.readTyped(h, TypeTree)
	if err != nil {
		return nil, err
	}
	tr, err := UnmarshalTree(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	return tr, nil
}

// WriteCommit serializes and stores a CommitObj.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	data, err := MarshalCommit(c)
	if err != nil {
		return "", err
	}
	return s.Write(TypeCommit, data)
}

// ReadCommit reads and deserializes a CommitObj.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	data, err := s.readTyped(h, TypeCommit)
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalCommit(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	return c, nil
}
