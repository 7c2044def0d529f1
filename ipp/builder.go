package ipp

import "fmt"

const (
	DefaultCharset  = "utf-8"
	DefaultLanguage = "en-us"
)

// Request describes an operation request. Build turns it into wire bytes.
type Request struct {
	// Version defaults to 1.1.
	Version   Version
	Op        Op
	RequestID uint32

	// Charset and Language fill attributes-charset and
	// attributes-natural-language; empty means utf-8 and en-us.
	Charset  string
	Language string

	// Target. PrinterURI may be combined with JobID; JobURI stands alone.
	PrinterURI string
	JobURI     string
	JobID      uint32

	// User fills requesting-user-name when set.
	User string

	// Operation holds further operation attributes, written after the
	// target and user.
	Operation []Attribute

	// Groups are written after the operation group, typically one job or
	// printer group.
	Groups []Group

	// Data is appended after end-of-attributes-tag.
	Data []byte
}

// Message assembles the operation group and returns the message to encode.
func (r Request) Message() (*Message, error) {
	if r.RequestID == 0 {
		return nil, fmt.Errorf("ipp: %s: request-id must be non-zero", r.Op)
	}
	if r.JobURI != "" && r.PrinterURI != "" {
		return nil, fmt.Errorf("ipp: %s: printer-uri and job-uri are mutually exclusive", r.Op)
	}
	if r.JobID != 0 && r.PrinterURI == "" {
		return nil, fmt.Errorf("ipp: %s: job-id needs printer-uri", r.Op)
	}

	version := r.Version
	if version == (Version{}) {
		version = Version11
	}
	charset := r.Charset
	if charset == "" {
		charset = DefaultCharset
	}
	language := r.Language
	if language == "" {
		language = DefaultLanguage
	}

	// attributes-charset and attributes-natural-language must come first,
	// in this order.
	op := Group{Tag: TagOperationGroup}
	op.Add(MakeAttribute("attributes-charset", TagCharset, String(charset)))
	op.Add(MakeAttribute("attributes-natural-language", TagLanguage, String(language)))

	switch {
	case r.PrinterURI != "":
		op.Add(MakeAttribute("printer-uri", TagURI, String(r.PrinterURI)))
		if r.JobID != 0 {
			op.Add(MakeAttribute("job-id", TagInteger, Integer(r.JobID)))
		}
	case r.JobURI != "":
		op.Add(MakeAttribute("job-uri", TagURI, String(r.JobURI)))
	}

	if r.User != "" {
		op.Add(MakeAttribute("requesting-user-name", TagName, String(r.User)))
	}
	op.Attrs = append(op.Attrs, r.Operation...)

	groups := make([]Group, 0, 1+len(r.Groups))
	groups = append(groups, op)
	for _, g := range r.Groups {
		if g.Tag == TagOperationGroup {
			return nil, fmt.Errorf("ipp: %s: extra operation group", r.Op)
		}
		groups = append(groups, g)
	}

	return &Message{
		Version:   version,
		Code:      uint16(r.Op),
		RequestID: r.RequestID,
		Groups:    groups,
		Data:      r.Data,
	}, nil
}

// Build encodes r.
func Build(r Request) ([]byte, error) {
	m, err := r.Message()
	if err != nil {
		return nil, err
	}
	return m.Encode()
}
