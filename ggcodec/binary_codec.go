package ggcodec

import (
	"encoding/binary"
	"fmt"
)

// BinaryCodec is the default codec: a compact, self-describing tagged
// binary format for the record domain. Each value is a one-byte type tag
// followed by a big-endian length-prefixed payload, applied recursively,
// since an envelope's exception, an avatar's discovery reply, and
// invocation args/kwargs are each shaped differently and no fixed struct
// layout could carry all of them.
type BinaryCodec struct {
	jsonPayload
}

func (c *BinaryCodec) Type() CodecType { return CodecTypeBinary }

const (
	tagNil byte = iota
	tagBool
	tagString
	tagInt64
	tagBytes
	tagList
	tagRecord
)

func (c *BinaryCodec) EncodeRecord(rec Record) ([]byte, error) {
	buf := &byteBuf{}
	if err := encodeValue(buf, rec); err != nil {
		return nil, err
	}
	return buf.b, nil
}

func (c *BinaryCodec) DecodeRecord(data []byte) (Record, error) {
	r := &byteReader{data: data}
	v, err := decodeValue(r)
	if err != nil {
		return nil, err
	}
	rec, ok := v.(Record)
	if !ok {
		return nil, notInstantiable("top-level value is not a record")
	}
	return rec, nil
}

type byteBuf struct{ b []byte }

func (w *byteBuf) writeByte(b byte) { w.b = append(w.b, b) }
func (w *byteBuf) writeUint32(n uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], n)
	w.b = append(w.b, tmp[:]...)
}
func (w *byteBuf) writeInt64(n int64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(n))
	w.b = append(w.b, tmp[:]...)
}
func (w *byteBuf) writeBytes(p []byte) {
	w.writeUint32(uint32(len(p)))
	w.b = append(w.b, p...)
}
func (w *byteBuf) writeString(s string) { w.writeBytes([]byte(s)) }

type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, notInstantiable("unexpected end of buffer")
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *byteReader) readUint32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, notInstantiable("truncated length prefix")
	}
	n := binary.BigEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return n, nil
}

func (r *byteReader) readInt64() (int64, error) {
	if r.pos+8 > len(r.data) {
		return 0, notInstantiable("truncated int64")
	}
	n := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return int64(n), nil
}

func (r *byteReader) readBytes() ([]byte, error) {
	n, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	if r.pos+int(n) > len(r.data) {
		return nil, notInstantiable("truncated byte string")
	}
	b := r.data[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

func (r *byteReader) readString() (string, error) {
	b, err := r.readBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func encodeValue(w *byteBuf, v any) error {
	switch val := v.(type) {
	case nil:
		w.writeByte(tagNil)
	case bool:
		w.writeByte(tagBool)
		if val {
			w.writeByte(1)
		} else {
			w.writeByte(0)
		}
	case string:
		w.writeByte(tagString)
		w.writeString(val)
	case int:
		w.writeByte(tagInt64)
		w.writeInt64(int64(val))
	case int64:
		w.writeByte(tagInt64)
		w.writeInt64(val)
	case []byte:
		w.writeByte(tagBytes)
		w.writeBytes(val)
	case []any:
		w.writeByte(tagList)
		w.writeUint32(uint32(len(val)))
		for _, item := range val {
			if err := encodeValue(w, item); err != nil {
				return err
			}
		}
	case Record:
		w.writeByte(tagRecord)
		w.writeUint32(uint32(len(val)))
		for k, item := range val {
			w.writeString(k)
			if err := encodeValue(w, item); err != nil {
				return err
			}
		}
	default:
		return notSerializable(v)
	}
	return nil
}

func decodeValue(r *byteReader) (any, error) {
	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNil:
		return nil, nil
	case tagBool:
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}
		return b != 0, nil
	case tagString:
		return r.readString()
	case tagInt64:
		return r.readInt64()
	case tagBytes:
		b, err := r.readBytes()
		if err != nil {
			return nil, err
		}
		cp := make([]byte, len(b))
		copy(cp, b)
		return cp, nil
	case tagList:
		n, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		list := make([]any, 0, n)
		for i := uint32(0); i < n; i++ {
			item, err := decodeValue(r)
			if err != nil {
				return nil, err
			}
			list = append(list, item)
		}
		return list, nil
	case tagRecord:
		n, err := r.readUint32()
		if err != nil {
			return nil, err
		}
		rec := make(Record, n)
		for i := uint32(0); i < n; i++ {
			key, err := r.readString()
			if err != nil {
				return nil, err
			}
			item, err := decodeValue(r)
			if err != nil {
				return nil, err
			}
			rec[key] = item
		}
		return rec, nil
	default:
		return nil, notInstantiable(fmt.Sprintf("unknown type tag %d", tag))
	}
}
