// Package slug decides which storefront identifiers are well-formed, reserved or free.
package slug

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
)

const (
	DefaultMinLength   = 2
	DefaultMaxLength   = 63
	DefaultMaxAttempts = 1000
)

var (
	formatPattern   = regexp.MustCompile(`^[a-z0-9-]+$`)
	disallowedChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	hyphenRun       = regexp.MustCompile(`-+`)
)

// Lookup answers the two questions the authority needs from storage. Transaction-bound
// repositories satisfy it so checks can run inside the caller's transaction.
type Lookup interface {
	IsRestricted(ctx context.Context, word string) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// Options bounds slug length and allocation attempts. Zero values fall back to defaults.
type Options struct {
	MinLength   int
	MaxLength   int
	MaxAttempts int
}

// Authority validates and allocates storefront slugs.
type Authority struct {
	minLength   int
	maxLength   int
	maxAttempts int
}

// NewAuthority creates an Authority with the given options.
func NewAuthority(opts Options) *Authority {
	a := &Authority{
		minLength:   opts.MinLength,
		maxLength:   opts.MaxLength,
		maxAttempts: opts.MaxAttempts,
	}
	if a.minLength <= 0 {
		a.minLength = DefaultMinLength
	}
	if a.maxLength <= 0 || a.maxLength > DefaultMaxLength {
		a.maxLength = DefaultMaxLength
	}
	if a.minLength > a.maxLength {
		a.minLength = a.maxLength
	}
	if a.maxAttempts <= 0 {
		a.maxAttempts = DefaultMaxAttempts
	}

	return a
}

// Normalize turns a free-form store name into slug form. The result is not validated.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = disallowedChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// ValidateFormat checks the character set and length bounds only.
func (a *Authority) ValidateFormat(candidate string) error {
	if len(candidate) < a.minLength || len(candidate) > a.maxLength || !formatPattern.MatchString(candidate) {
		return domainerrors.ErrSlugInvalidFormat.WithDetails(candidate)
	}

	return nil
}

// Validate checks candidate as given. Rejections are reported in a fixed order:
// invalid format, then reserved word, then already taken.
func (a *Authority) Validate(ctx context.Context, lookup Lookup, candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if err := a.ValidateFormat(candidate); err != nil {
		return "", err
	}

	restricted, err := lookup.IsRestricted(ctx, candidate)
	if err != nil {
		return "", errors.Wrap(err, "check restricted slug")
	}
	if restricted {
		return "", domainerrors.ErrSlugReserved.WithDetails(candidate)
	}

	taken, err := lookup.SlugExists(ctx, candidate)
	if err != nil {
		return "", errors.Wrap(err, "check slug usage")
	}
	if taken {
		return "", domainerrors.ErrSlugTaken.WithDetails(candidate)
	}

	return candidate, nil
}

// Allocate derives a free slug from name: base, base-1, base-2, ... A reserved base
// goes straight to suffixed candidates.
func (a *Authority) Allocate(ctx context.Context, lookup Lookup, name string) (string, error) {
	base := Normalize(name)
	if len(base) > a.maxLength {
		base = strings.TrimRight(base[:a.maxLength], "-")
	}
	if err := a.ValidateFormat(base); err != nil {
		return "", err
	}

	restricted, err := lookup.IsRestricted(ctx, base)
	if err != nil {
		return "", errors.Wrap(err, "check restricted slug")
	}

	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		if attempt == 0 && restricted {
			continue
		}

		candidate, ok := a.withSuffix(base, attempt)
		if !ok || a.ValidateFormat(candidate) != nil {
			// Longer suffixes leave even less room for the base.
			break
		}

		if attempt > 0 {
			reserved, err := lookup.IsRestricted(ctx, candidate)
			if err != nil {
				return "", errors.Wrap(err, "check restricted slug")
			}
			if reserved {
				continue
			}
		}

		taken, err := lookup.SlugExists(ctx, candidate)
		if err != nil {
			return "", errors.Wrap(err, "check slug usage")
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", domainerrors.ErrSlugExhausted.WithDetails(base)
}

// withSuffix appends -n, trimming the base so the result stays within maxLength.
// It reports false when no part of the base would survive the trim.
func (a *Authority) withSuffix(base string, n int) (string, bool) {
	if n == 0 {
		return base, true
	}

	suffix := "-" + strconv.Itoa(n)
	if len(base)+len(suffix) > a.maxLength {
		room := a.maxLength - len(suffix)
		if room < 1 {
			return "", false
		}
		base = strings.TrimRight(base[:room], "-")
	}
	if base == "" {
		return "", false
	}

	return base + suffix, true
}
