package isla

import (
	"bytes"
	"encoding/binary"
	"math"
)

// EncodeBinary serializes v as an ISLA binary document: the magic and
// version bytes followed by the encoded top value. Unlike the text
// encoder, a bare leaf is a valid top value; only the text-only none
// sentinel is rejected.
func EncodeBinary(v BinValue) ([]byte, error) {
	if v.kind == KindNone {
		return nil, &NotEncodableError{Reason: "none at top"}
	}
	var buf bytes.Buffer
	buf.WriteString(binMagic)
	buf.Write([]byte{
		byte(binVersion >> 16),
		byte(binVersion >> 8),
		byte(binVersion),
	})
	if err := encodeBinValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBinWord(buf *bytes.Buffer, word uint32) {
	var w [4]byte
	binary.LittleEndian.PutUint32(w[:], word)
	buf.Write(w[:])
}

func encodeBinValue(buf *bytes.Buffer, v BinValue) error {
	switch v.kind {
	case KindLeaf:
		if len(v.leaf) > maxBinLen {
			return &EncodeTooLongError{What: "leaf", Len: int64(len(v.leaf)), Max: maxBinLen}
		}
		writeBinWord(buf, binTagLeaf<<28|uint32(len(v.leaf)))
		buf.Write(v.leaf)

	case KindList:
		if len(v.list) > maxBinLen {
			return &EncodeTooLongError{What: "list", Len: int64(len(v.list)), Max: maxBinLen}
		}
		writeBinWord(buf, binTagList<<28|uint32(len(v.list)))
		for _, e := range v.list {
			if err := encodeBinValue(buf, e); err != nil {
				return err
			}
		}

	case KindMap:
		if len(v.entries) > maxBinLen {
			return &EncodeTooLongError{What: "map", Len: int64(len(v.entries)), Max: maxBinLen}
		}
		writeBinWord(buf, binTagMap<<28|uint32(len(v.entries)))
		for _, e := range v.entries {
			if int64(len(e.Key)) > math.MaxUint32 {
				return &EncodeTooLongError{What: "map key", Len: int64(len(e.Key)), Max: math.MaxUint32}
			}
			// Key lengths use the full 32-bit word; keys carry no type
			// tag of their own.
			writeBinWord(buf, uint32(len(e.Key)))
			buf.Write(e.Key)
			if err := encodeBinValue(buf, e.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
