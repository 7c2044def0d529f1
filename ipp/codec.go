package ipp

import (
	"encoding/binary"
	"fmt"
)

// entry is one raw tag/name/value record as it appears on the wire.
type entry struct {
	tag   Tag
	name  string
	value []byte
}

// EncodeAttribute encodes a into its wire form: one entry per value, the first
// carrying the name and the rest carrying an empty name.
func EncodeAttribute(a Attribute) ([]byte, error) {
	return appendAttribute(nil, a)
}

// EncodeGroup encodes the group delimiter followed by every attribute.
func EncodeGroup(g Group) ([]byte, error) {
	return appendGroup(nil, g)
}

func appendGroup(b []byte, g Group) ([]byte, error) {
	if !g.Tag.IsGroup() {
		return nil, fmt.Errorf("ipp: %s is not a group tag", g.Tag)
	}
	b = append(b, byte(g.Tag))
	for _, a := range g.Attrs {
		var err error
		if b, err = appendAttribute(b, a); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func appendAttribute(b []byte, a Attribute) ([]byte, error) {
	if a.Name == "" {
		return nil, fmt.Errorf("ipp: attribute without name")
	}
	if len(a.Values) == 0 {
		return nil, fmt.Errorf("ipp: attribute %q has no values", a.Name)
	}

	name := a.Name
	for _, tv := range a.Values {
		var err error
		if b, err = appendValue(b, name, tv); err != nil {
			return nil, fmt.Errorf("ipp: encoding %q: %w", a.Name, err)
		}
		name = ""
	}
	return b, nil
}

func appendValue(b []byte, name string, tv TagValue) ([]byte, error) {
	if tv.T.IsDelimiter() {
		return nil, fmt.Errorf("%s is not a value tag", tv.T)
	}

	if coll, ok := tv.V.(Collection); ok {
		return appendCollection(b, name, coll)
	}

	data, err := tv.V.encode()
	if err != nil {
		return nil, err
	}
	return appendEntry(b, tv.T, name, data)
}

func appendCollection(b []byte, name string, coll Collection) ([]byte, error) {
	b, err := appendEntry(b, TagBeginCollection, name, nil)
	if err != nil {
		return nil, err
	}
	for _, member := range coll {
		if b, err = appendEntry(b, TagMemberName, "", []byte(member.Name)); err != nil {
			return nil, err
		}
		for _, tv := range member.Values {
			if b, err = appendValue(b, "", tv); err != nil {
				return nil, err
			}
		}
	}
	return appendEntry(b, TagEndCollection, "", nil)
}

func appendEntry(b []byte, tag Tag, name string, value []byte) ([]byte, error) {
	if len(name) > 0xffff {
		return nil, fmt.Errorf("name too long (%d bytes)", len(name))
	}
	if len(value) > 0xffff {
		return nil, fmt.Errorf("value too long (%d bytes)", len(value))
	}
	b = append(b, byte(tag))
	b = binary.BigEndian.AppendUint16(b, uint16(len(name)))
	b = append(b, name...)
	b = binary.BigEndian.AppendUint16(b, uint16(len(value)))
	return append(b, value...), nil
}

// readEntry reads the raw record at off. On success next points to the byte
// after the record. A buffer that stops before the name length is truncated;
// a declared length that overruns the buffer is malformed.
func readEntry(buf []byte, off int) (e entry, next int, err error) {
	if off >= len(buf) {
		return e, off, &TruncatedMessageError{Offset: off, Len: len(buf)}
	}
	e.tag = Tag(buf[off])
	if e.tag.IsDelimiter() {
		return e, off, &MalformedAttributeError{Offset: off, Tag: e.tag, Err: ErrDelimiterTag}
	}
	// No name length yet, so nothing was declared that could overrun.
	if off+3 > len(buf) {
		return e, off, &TruncatedMessageError{Offset: off, Len: len(buf)}
	}

	p := off + 1
	n := int(binary.BigEndian.Uint16(buf[p:]))
	p += 2
	if p+n+2 > len(buf) {
		return e, off, &MalformedAttributeError{Offset: off, Tag: e.tag, Err: ErrValueLength}
	}
	e.name = string(buf[p : p+n])
	p += n

	n = int(binary.BigEndian.Uint16(buf[p:]))
	p += 2
	if p+n > len(buf) {
		return e, off, &MalformedAttributeError{Offset: off, Tag: e.tag, Name: e.name, Err: ErrValueLength}
	}
	e.value = buf[p : p+n]

	return e, p + n, nil
}

// DecodeAttribute decodes exactly one wire entry starting at off. The
// returned attribute holds a single value, or a whole Collection when the
// entry opens one; its Name is empty for continuation entries.
//
// When the entry carries a tag this package does not know, the error wraps
// ErrUnknownTag and next still points past the entry so the caller can skip
// it.
func DecodeAttribute(buf []byte, off int) (Attribute, int, error) {
	e, next, err := readEntry(buf, off)
	if err != nil {
		return Attribute{}, off, err
	}

	if e.tag == TagBeginCollection {
		coll, next, err := decodeCollection(buf, next)
		if err != nil {
			return Attribute{}, off, err
		}
		return MakeAttribute(e.name, TagBeginCollection, coll), next, nil
	}

	v, err := decodeValue(e.tag, e.value)
	if err != nil {
		merr := &MalformedAttributeError{Offset: off, Tag: e.tag, Name: e.name, Err: err}
		if err == ErrUnknownTag {
			return Attribute{Name: e.name}, next, merr
		}
		return Attribute{}, off, merr
	}

	return MakeAttribute(e.name, e.tag, v), next, nil
}

func decodeCollection(buf []byte, off int) (Collection, int, error) {
	var (
		coll   Collection
		member *Attribute
	)
	for {
		start := off
		e, next, err := readEntry(buf, off)
		if err != nil {
			return nil, off, err
		}

		switch e.tag {
		case TagEndCollection:
			return coll, next, nil

		case TagMemberName:
			coll = append(coll, Attribute{Name: string(e.value)})
			member = &coll[len(coll)-1]
			off = next

		case TagBeginCollection:
			if member == nil {
				return nil, start, &MalformedAttributeError{Offset: start, Tag: e.tag, Err: ErrBadValue}
			}
			nested, after, err := decodeCollection(buf, next)
			if err != nil {
				return nil, start, err
			}
			member.Values.Add(TagBeginCollection, nested)
			off = after

		default:
			if member == nil {
				return nil, start, &MalformedAttributeError{Offset: start, Tag: e.tag, Err: ErrBadValue}
			}
			v, err := decodeValue(e.tag, e.value)
			switch {
			case err == ErrUnknownTag:
				// skipped, same as at top level
			case err != nil:
				return nil, start, &MalformedAttributeError{Offset: start, Tag: e.tag, Name: member.Name, Err: err}
			default:
				member.Values.Add(e.tag, v)
			}
			off = next
		}
	}
}

// DecodeGroup decodes the group that starts with the delimiter at off and
// runs until the next delimiter or the end of buf. Continuation entries are
// folded into the attribute before them; entries with unknown tags are
// skipped.
func DecodeGroup(buf []byte, off int) (Group, int, error) {
	if off >= len(buf) || !Tag(buf[off]).IsGroup() {
		return Group{}, off, fmt.Errorf("ipp: no group delimiter at offset %d", off)
	}
	g := Group{Tag: Tag(buf[off])}
	attrs, next, err := decodeAttributes(buf, off+1, nil)
	if err != nil {
		return Group{}, off, err
	}
	g.Attrs = attrs
	return g, next, nil
}

// decodeAttributes reads attributes until a delimiter tag or the end of buf.
// skip, when set, is told about every entry dropped for an unknown tag.
func decodeAttributes(buf []byte, off int, skip func(error)) ([]Attribute, int, error) {
	var (
		attrs    []Attribute
		skipping bool
	)
	for off < len(buf) && !Tag(buf[off]).IsDelimiter() {
		a, next, err := DecodeAttribute(buf, off)
		if err != nil {
			if !isUnknownTag(err) {
				return nil, off, err
			}
			if skip != nil {
				skip(err)
			}
			// Continuations of a dropped attribute go with it.
			if a.Name != "" {
				skipping = true
			}
			off = next
			continue
		}

		switch {
		case a.Name != "":
			skipping = false
			attrs = append(attrs, a)
		case skipping:
		case len(attrs) == 0:
			return nil, off, &MalformedAttributeError{Offset: off, Tag: a.Tag(), Err: ErrBadValue}
		default:
			last := &attrs[len(attrs)-1]
			last.Values = append(last.Values, a.Values...)
		}
		off = next
	}
	return attrs, off, nil
}

func isUnknownTag(err error) bool {
	merr, ok := err.(*MalformedAttributeError)
	return ok && merr.Err == ErrUnknownTag
}
