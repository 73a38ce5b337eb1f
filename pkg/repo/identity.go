package repo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/minigit/pkg/object"
)

// Identity resolves the signature used for both the author and committer
// lines of a new commit. Precedence, highest first: GIT_AUTHOR_NAME /
// GIT_AUTHOR_EMAIL / GIT_AUTHOR_DATE from getenv, then [user] in config, then
// $USER with an "@localhost" email. now supplies the timestamp when
// GIT_AUTHOR_DATE is unset.
func (c *Config) Identity(getenv func(string) string, now time.Time) (object.Signature, error) {
	name := firstNonEmpty(getenv("GIT_AUTHOR_NAME"), c.User.Name, getenv("USER"), "unknown")
	email := firstNonEmpty(getenv("GIT_AUTHOR_EMAIL"), c.User.Email, name+"@localhost")

	when := now
	if raw := strings.TrimSpace(getenv("GIT_AUTHOR_DATE")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return object.Signature{}, fmt.Errorf("identity: GIT_AUTHOR_DATE: %w", err)
		}
		when = parsed
	}

	sig := object.Signature{Name: name, Email: email, When: when}
	if err := sig.Validate(); err != nil {
		return object.Signature{}, fmt.Errorf("identity: %w", err)
	}
	return sig, nil
}

// parseDate accepts "<unix-seconds>" or "<unix-seconds> <+hhmm>".
func parseDate(raw string) (time.Time, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 || len(fields) > 2 {
		return time.Time{}, fmt.Errorf("bad date %q", raw)
	}
	secs, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", raw, err)
	}
	loc := time.UTC
	if len(fields) == 2 {
		loc, err = object.ParseTimezone(fields[1])
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Unix(secs, 0).In(loc), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
