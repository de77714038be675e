package encoding

import "strings"

// Element is one piece of a decoded string-table entry: Text, Tag, TagEnd or Raw.
type Element interface {
	element()
}

// Text is a literal run of decoded characters.
type Text string

// Tag opens a formatting directive. Group and Type identify the directive;
// Params is its raw parameter block, at most 65535 bytes.
type Tag struct {
	Group  uint16
	Type   uint16
	Params []byte
}

// TagEnd closes the directive identified by Group and Type.
type TagEnd struct {
	Group uint16
	Type  uint16
}

// Raw holds bytes that do not decode in the entry's encoding.
type Raw []byte

func (Text) element()   {}
func (Tag) element()    {}
func (TagEnd) element() {}
func (Raw) element()    {}

// FromText returns the elements of a plain NUL-terminated entry holding s.
func FromText(s string) []Element {
	return []Element{Text(s + "\x00")}
}

// PlainText concatenates the literal text of elems, dropping directives, raw
// bytes and the trailing NUL terminator.
func PlainText(elems []Element) string {
	var sb strings.Builder
	for _, el := range elems {
		if t, ok := el.(Text); ok {
			sb.WriteString(string(t))
		}
	}

	return strings.TrimRight(sb.String(), "\x00")
}
