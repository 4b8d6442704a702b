package app

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// envReader reads typed env vars with defaults and remembers which keys held unparseable values,
// so LoadConfig can fail once with the full list instead of silently falling back.
type envReader struct {
	bad []string
}

func (e *envReader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func (e *envReader) invalid(key string) {
	e.bad = append(e.bad, key)
}

// String reads a string env var with a default.
func (e *envReader) String(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

// Bool reads a bool env var with a default.
func (e *envReader) Bool(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.invalid(key)
		return def
	}
	return b
}

// Int reads a positive int env var with a default.
func (e *envReader) Int(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		e.invalid(key)
		return def
	}
	return n
}

// Int32 reads a non-negative int32 env var with a default.
func (e *envReader) Int32(key string, def int32) int32 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 0 {
		e.invalid(key)
		return def
	}
	return int32(n)
}

// Duration reads a positive duration env var with a default.
func (e *envReader) Duration(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.invalid(key)
		return def
	}
	return d
}

// OneOf reads a lowercased enum value with a default.
func (e *envReader) OneOf(key, def string, allowed ...string) string {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	v = strings.ToLower(v)
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	e.invalid(key)
	return def
}

func (e *envReader) Err() error {
	if len(e.bad) == 0 {
		return nil
	}
	keys := append([]string(nil), e.bad...)
	sort.Strings(keys)
	return fmt.Errorf("%w: invalid value for %s", ErrMisconfigured, strings.Join(keys, ", "))
}
