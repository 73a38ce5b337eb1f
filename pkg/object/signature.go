package object

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Signature is the identity and timestamp recorded on author and committer
// lines of a commit.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// String renders the signature the way git does:
//
//	Name <email> 1700000000 +0100
func (s Signature) String() string {
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, s.When.Unix(), s.When.Format("-0700"))
}

// Validate rejects identities that would break the line-oriented commit
// header.
func (s Signature) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: signature name is empty", ErrInvalidArgument)
	}
	if strings.ContainsAny(s.Name, "<>\n\x00") {
		return fmt.Errorf("%w: signature name %q contains a reserved character", ErrInvalidArgument, s.Name)
	}
	if strings.ContainsAny(s.Email, "<>\n\x00") {
		return fmt.Errorf("%w: signature email %q contains a reserved character", ErrInvalidArgument, s.Email)
	}
	return nil
}

// ParseSignature parses the value of an author or committer header line.
func ParseSignature(line string) (Signature, error) {
	lt := strings.IndexByte(line, '<')
	gt := strings.LastIndexByte(line, '>')
	if lt < 0 || gt < lt {
		return Signature{}, fmt.Errorf("parse signature %q: missing <email>", line)
	}
	sig := Signature{
		Name:  strings.TrimSpace(line[:lt]),
		Email: line[lt+1 : gt],
	}

	fields := strings.Fields(line[gt+1:])
	if len(fields) != 2 {
		return Signature{}, fmt.Errorf("parse signature %q: want timestamp and timezone", line)
	}
	secs, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Signature{}, fmt.Errorf("parse signature %q: bad timestamp: %w", line, err)
	}
	loc, err := ParseTimezone(fields[1])
	if err != nil {
		return Signature{}, fmt.Errorf("parse signature %q: %w", line, err)
	}
	sig.When = time.Unix(secs, 0).In(loc)
	return sig, nil
}

// ParseTimezone parses a "+hhmm" or "-hhmm" offset into a fixed zone.
func ParseTimezone(tz string) (*time.Location, error) {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return nil, fmt.Errorf("bad timezone %q", tz)
	}
	hh, err := strconv.Atoi(tz[1:3])
	if err != nil || hh < 0 {
		return nil, fmt.Errorf("bad timezone %q", tz)
	}
	mm, err := strconv.Atoi(tz[3:5])
	if err != nil || mm < 0 || mm >= 60 {
		return nil, fmt.Errorf("bad timezone %q", tz)
	}
	offset := hh*3600 + mm*60
	if tz[0] == '-' {
		offset = -offset
	}
	return time.FixedZone("", offset), nil
}
