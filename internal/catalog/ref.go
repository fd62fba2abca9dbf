package catalog

import (
	"strconv"
	"strings"
)

type refKind uint8

const (
	refByID refKind = iota + 1
	refByTitle
)

// Ref addresses a variant or product either by primary key or by title.
type Ref struct {
	kind  refKind
	id    uint
	title string
}

func ByID(id uint) Ref { return Ref{kind: refByID, id: id} }

func ByTitle(title string) Ref { return Ref{kind: refByTitle, title: strings.TrimSpace(title)} }

// ParseRef reads a URL segment: a positive integer is an id, anything else a title.
func ParseRef(segment string) Ref {
	if n, err := strconv.ParseUint(segment, 10, 64); err == nil && n > 0 {
		return ByID(uint(n))
	}
	return ByTitle(segment)
}

// TitleFromSlug undoes the hyphenation used in product URLs.
func TitleFromSlug(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// Slug is the inverse of TitleFromSlug.
func Slug(title string) string {
	return strings.ReplaceAll(title, " ", "-")
}

func (r Ref) IsID() bool { return r.kind == refByID }

func (r Ref) ID() uint { return r.id }

func (r Ref) Title() string { return r.title }

func (r Ref) valid() bool {
	switch r.kind {
	case refByID:
		return r.id > 0
	case refByTitle:
		return r.title != ""
	}
	return false
}

func (r Ref) String() string {
	switch r.kind {
	case refByID:
		return "id:" + strconv.FormatUint(uint64(r.id), 10)
	case refByTitle:
		return "title:" + strconv.Quote(r.title)
	}
	return "ref:empty"
}
