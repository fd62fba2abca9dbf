package permission

import (
	"fmt"
	"strings"
)

// Set is a bitmask of capabilities. A role carries one Set; an actor's
// effective Set is the OR of every role it holds.
type Set uint32

const (
	Login Set = 1 << iota
	Comment
	WriteArticles
	Editor
	Operator
	Administer
)

const (
	None Set = 0
	All  Set = Login | Comment | WriteArticles | Editor | Operator | Administer
)

var names = []struct {
	bit  Set
	name string
}{
	{Login, "LOGIN"},
	{Comment, "COMMENT"},
	{WriteArticles, "WRITE_ARTICLES"},
	{Editor, "EDITOR"},
	{Operator, "OPERATOR"},
	{Administer, "ADMINISTER"},
}

// Combine ORs the given sets together.
func Combine(sets ...Set) Set {
	var out Set
	for _, s := range sets {
		out |= s
	}
	return out
}

// With returns s with the bits of other added.
func (s Set) With(other Set) Set { return s | other }

// Has reports whether every bit of target is present in s.
func (s Set) Has(target Set) bool { return s&target == target }

// Satisfies reports whether s meets the required tier.
//
// The comparison is numeric, not a subset test: a mask of EDITOR (8)
// satisfies a requirement of LOGIN|WRITE_ARTICLES (5) even though it holds
// neither bit. Permission bits are ordered by privilege so that a higher
// tier always compares greater than the tiers below it.
func (s Set) Satisfies(required Set) bool {
	return s >= required
}

// Names lists the known bits present in s, lowest first.
func (s Set) Names() []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if s&n.bit != 0 {
			out = append(out, n.name)
		}
	}
	return out
}

func (s Set) String() string {
	if s == None {
		return "NONE"
	}
	parts := s.Names()
	if rest := s &^ All; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// Parse converts a single bit name (case-insensitive) to its Set.
func Parse(name string) (Set, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, n := range names {
		if n.name == name {
			return n.bit, true
		}
	}
	return None, false
}

// ParseList ORs a list of bit names. Unknown names are an error.
func ParseList(list []string) (Set, error) {
	var out Set
	for _, name := range list {
		bit, ok := Parse(name)
		if !ok {
			return None, fmt.Errorf("permission: unknown permission %q", name)
		}
		out |= bit
	}
	return out, nil
}
