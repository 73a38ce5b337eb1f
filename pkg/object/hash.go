package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// HashSize is the length in bytes of a raw object hash.
const HashSize = sha1.Size

// Hash is a 40-character lowercase hex-encoded SHA-1 digest.
type Hash string

// ParseHash validates s as a full 40-character hex object name and returns it
// lowercased.
func ParseHash(s string) (Hash, error) {
	if len(s) != 2*HashSize {
		return "", fmt.Errorf("%w: object name %q: want %d hex characters", ErrInvalidArgument, s, 2*HashSize)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: object name %q: not hex", ErrInvalidArgument, s)
	}
	return Hash(hex.EncodeToString(raw)), nil
}

// HashFromRaw converts a raw 20-byte digest into its hex form.
func HashFromRaw(raw []byte) (Hash, error) {
	if len(raw) != HashSize {
		return "", fmt.Errorf("%w: raw hash has %d bytes, want %d", ErrInvalidArgument, len(raw), HashSize)
	}
	return Hash(hex.EncodeToString(raw)), nil
}

// Raw returns the 20 raw bytes of h.
func (h Hash) Raw() ([HashSize]byte, error) {
	var out [HashSize]byte
	if len(h) != 2*HashSize {
		return out, fmt.Errorf("%w: object name %q: want %d hex characters", ErrInvalidArgument, string(h), 2*HashSize)
	}
	if _, err := hex.Decode(out[:], []byte(h)); err != nil {
		return out, fmt.Errorf("%w: object name %q: not hex", ErrInvalidArgument, string(h))
	}
	return out, nil
}

// String returns the hex form of h.
func (h Hash) String() string {
	return string(h)
}

// Header returns the framing prefix "type len\0" for a payload of the given
// length.
func Header(objType ObjectType, size int) []byte {
	return []byte(fmt.Sprintf("%s %d\x00", objType, size))
}

// HashObject computes the SHA-1 of the envelope "type len\0content". This is
// the object's identity and storage key.
func HashObject(objType ObjectType, data []byte) Hash {
	h := sha1.New()
	h.Write(Header(objType, len(data)))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}
