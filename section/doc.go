// Package section defines the binary structures of the MsgStdBn message table container.
//
// This package provides the header and envelope codecs, one Section implementation
// per section kind, and the scoped editors that keep derived section metadata valid
// after mutation.
//
// # File Structure
//
// A file is a fixed header followed by a sequence of framed sections. Every
// section, including the last one, is padded up to the next 16-byte file offset:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Magic "MsgStdBn" (8 bytes)                           │
//	│  - Byte order mark (2 bytes): FE FF big, FF FE little   │
//	│  - Reserved (2 bytes)                                   │
//	│  - Encoding (1 byte): 0 UTF-8, 1 UTF-16                 │
//	│  - Reserved (1 byte)                                    │
//	│  - Section count (2 bytes), Reserved (2 bytes)          │
//	│  - File size (4 bytes), Padding (10 bytes)              │
//	├─────────────────────────────────────────────────────────┤
//	│ Section envelope (16 bytes)                             │
//	│  - Tag (4 bytes), payload size (4 bytes)                │
//	│  - Reserved (8 bytes)                                   │
//	│ Payload (payload size bytes)                            │
//	│ Padding (0-15 bytes, value = file pad byte)             │
//	├─────────────────────────────────────────────────────────┤
//	│ ... one envelope + payload + padding per section ...    │
//	└─────────────────────────────────────────────────────────┘
//
// # Sections
//
//   - LBL1 (LabelTable): a hash table of label names. Payload is a bucket count,
//     (label count, offset) per bucket, then (length byte, name, index) per label
//     in bucket order. A label lives in bucket hash(name) % bucket count.
//   - NLI1 (GlobalIDTable): count, then (index, id) pairs.
//   - TXT2 (StringTable): count, one offset per entry relative to the payload
//     start, then the concatenated entry bytes.
//   - ATO1, ATR1, TSY1 (Opaque): carried as raw bytes.
//
// Labels, strings and global IDs share one message index space: label i, entry i
// and every global ID bound to i describe the same message.
//
// # Editing
//
// The derived fields (LBL1 bucket list, TXT2 offsets, envelope sizes, header
// section count and file size) are never edited directly. A table is mutated
// through an editor obtained from its Edit method; releasing the editor restores
// the derived state and then runs the caller's release hook:
//
//	ed := labels.Edit(nil)
//	defer ed.Release()
//	if err := ed.SetName(0, "Greeting"); err != nil {
//		return err
//	}
//
// # Byte Order
//
// Every multi-byte field follows the byte order mark in the header. Section
// codecs take an endian.EndianEngine instead of assuming a byte order.
package section
