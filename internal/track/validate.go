package track

import (
	"fmt"
	"math"
	"strings"
)

// Default validation bounds. These guard the registry against malformed or
// abusive input from the UI layer; they are not tunable per element.
const (
	DefaultMaxIdentifierLen = 256
	DefaultMaxCoordinate    = 1e7
	DefaultMaxContextBytes  = 4096
)

// DefaultDenylist is the set of sensitive-term fragments rejected in context
// keys and values. Matching is case-insensitive substring.
var DefaultDenylist = []string{
	"password",
	"secret",
	"token",
	"apikey",
	"api_key",
	"credential",
	"auth",
}

// Policy bundles the validation rules applied by Registry.Upsert. Tests can
// construct a relaxed policy; the zero value is not usable, use
// DefaultPolicy.
type Policy struct {
	MaxIdentifierLen int
	MaxCoordinate    float64
	MaxContextBytes  int
	Denylist         []string
}

// DefaultPolicy returns the standard validation policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxIdentifierLen: DefaultMaxIdentifierLen,
		MaxCoordinate:    DefaultMaxCoordinate,
		MaxContextBytes:  DefaultMaxContextBytes,
		Denylist:         DefaultDenylist,
	}
}

// ValidateIdentifier checks that id is non-empty, within length bounds, and
// restricted to letters, digits, underscore, hyphen, and period.
func (p Policy) ValidateIdentifier(id string) error {
	if id == "" {
		return &InvalidIdentifierError{Reason: "identifier is empty"}
	}
	if len(id) > p.MaxIdentifierLen {
		return &InvalidIdentifierError{
			Reason: fmt.Sprintf("identifier length %d exceeds %d", len(id), p.MaxIdentifierLen),
		}
	}
	for _, r := range id {
		if !isIdentifierRune(r) {
			return &InvalidIdentifierError{
				Reason: fmt.Sprintf("identifier contains disallowed character %q", r),
			}
		}
	}
	return nil
}

func isIdentifierRune(r rune) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z' ||
		r >= '0' && r <= '9' ||
		r == '_' || r == '-' || r == '.'
}

// ValidateFrame checks that all frame fields are finite, the size is
// non-negative, and no coordinate exceeds the configured magnitude bound.
func (p Policy) ValidateFrame(f Frame) error {
	for _, v := range [4]float64{f.X, f.Y, f.Width, f.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidFrameError{Reason: "frame contains a non-finite value"}
		}
		if math.Abs(v) > p.MaxCoordinate {
			return &InvalidFrameError{
				Reason: fmt.Sprintf("frame value %g exceeds magnitude bound %g", v, p.MaxCoordinate),
			}
		}
	}
	if f.Width < 0 || f.Height < 0 {
		return &InvalidFrameError{Reason: "frame has negative size"}
	}
	return nil
}

// ValidateContext checks metadata keys and values: keys must be non-empty,
// the total serialized size must stay within bounds, and neither keys nor
// values may contain a denylisted sensitive-term fragment.
func (p Policy) ValidateContext(ctx map[string]string) error {
	total := 0
	for k, v := range ctx {
		if k == "" {
			return &ValidationError{Reason: "context contains an empty key"}
		}
		total += len(k) + len(v)
		if err := p.checkSensitive(k, "key"); err != nil {
			return err
		}
		if err := p.checkSensitive(v, "value"); err != nil {
			return err
		}
	}
	if total > p.MaxContextBytes {
		return &ValidationError{
			Reason: fmt.Sprintf("context size %d exceeds %d bytes", total, p.MaxContextBytes),
		}
	}
	return nil
}

func (p Policy) checkSensitive(s, kind string) error {
	lower := strings.ToLower(s)
	for _, term := range p.Denylist {
		if strings.Contains(lower, term) {
			return &ValidationError{
				Reason: fmt.Sprintf("context %s contains sensitive term %q", kind, term),
			}
		}
	}
	return nil
}

// Validate runs all three checks in order: identifier, frame, context.
func (p Policy) Validate(id string, frame Frame, ctx map[string]string) error {
	if err := p.ValidateIdentifier(id); err != nil {
		return err
	}
	if err := p.ValidateFrame(frame); err != nil {
		return err
	}
	return p.ValidateContext(ctx)
}
