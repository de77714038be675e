package format

// SectionTag identifies one of the six section kinds a container may hold.
type SectionTag uint8

const (
	TagLBL1 SectionTag = iota + 1 // TagLBL1 is the label hash table.
	TagNLI1                       // TagNLI1 is the global ID table.
	TagATO1                       // TagATO1 is an opaque attribute offset blob.
	TagATR1                       // TagATR1 is an opaque attribute blob.
	TagTSY1                       // TagTSY1 is an opaque style blob.
	TagTXT2                       // TagTXT2 is the string table.
)

var (
	tagMagics = map[SectionTag][4]byte{
		TagLBL1: {'L', 'B', 'L', '1'},
		TagNLI1: {'N', 'L', 'I', '1'},
		TagATO1: {'A', 'T', 'O', '1'},
		TagATR1: {'A', 'T', 'R', '1'},
		TagTSY1: {'T', 'S', 'Y', '1'},
		TagTXT2: {'T', 'X', 'T', '2'},
	}

	magicTags = func() map[[4]byte]SectionTag {
		m := make(map[[4]byte]SectionTag, len(tagMagics))
		for tag, magic := range tagMagics {
			m[magic] = tag
		}

		return m
	}()
)

// AllSectionTags lists every section kind in the canonical on-disk order.
func AllSectionTags() []SectionTag {
	return []SectionTag{TagLBL1, TagNLI1, TagATO1, TagATR1, TagTSY1, TagTXT2}
}

// ParseSectionTag maps the 4 raw tag bytes of a section envelope to its SectionTag.
func ParseSectionTag(magic [4]byte) (SectionTag, bool) {
	tag, ok := magicTags[magic]
	return tag, ok
}

// Magic returns the 4 raw tag bytes written at the start of the section envelope.
func (t SectionTag) Magic() [4]byte {
	return tagMagics[t]
}

// IsValid reports whether t is a known section kind.
func (t SectionTag) IsValid() bool {
	_, ok := tagMagics[t]
	return ok
}

// IsOpaque reports whether sections of this kind are kept as pass-through bytes.
func (t SectionTag) IsOpaque() bool {
	return t == TagATO1 || t == TagATR1 || t == TagTSY1
}

func (t SectionTag) String() string {
	magic, ok := tagMagics[t]
	if !ok {
		return "Unknown"
	}

	return string(magic[:])
}
