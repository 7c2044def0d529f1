package ipp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name        string
		req         Request
		wantOp      []string
		wantErr     bool
		errContains string
	}{
		{
			name: "pause printer",
			req: Request{
				Op:         OpPausePrinter,
				RequestID:  1,
				PrinterURI: "ipp://localhost:631/printers/PDF",
				User:       "alice",
			},
			wantOp: []string{"attributes-charset", "attributes-natural-language", "printer-uri", "requesting-user-name"},
		},
		{
			name: "cancel job by id",
			req: Request{
				Op:         OpCancelJob,
				RequestID:  7,
				Charset:    "utf-8",
				Language:   "fr-fr",
				PrinterURI: "ipp://localhost:631/printers/PDF",
				JobID:      42,
			},
			wantOp: []string{"attributes-charset", "attributes-natural-language", "printer-uri", "job-id"},
		},
		{
			name: "get printers without target",
			req: Request{
				Op:        OpCupsGetPrinters,
				RequestID: 3,
				Operation: []Attribute{
					MakeAttribute("requested-attributes", TagKeyword, String("printer-name"), String("printer-state")),
				},
			},
			wantOp: []string{"attributes-charset", "attributes-natural-language", "requested-attributes"},
		},
		{
			name:        "zero request id",
			req:         Request{Op: OpGetJobs},
			wantErr:     true,
			errContains: "request-id must be non-zero",
		},
		{
			name: "both printer and job uri",
			req: Request{
				Op:         OpCancelJob,
				RequestID:  1,
				PrinterURI: "ipp://localhost/printers/a",
				JobURI:     "ipp://localhost/jobs/1",
			},
			wantErr:     true,
			errContains: "mutually exclusive",
		},
		{
			name:        "job id without printer",
			req:         Request{Op: OpCancelJob, RequestID: 1, JobID: 4},
			wantErr:     true,
			errContains: "job-id needs printer-uri",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Build(tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)

			m, err := Parse(b)
			require.NoError(t, err)
			assert.Equal(t, Version11, m.Version)
			assert.Equal(t, tt.req.Op, m.Op())
			assert.Equal(t, tt.req.RequestID, m.RequestID)

			require.NotEmpty(t, m.Groups)
			op := m.Groups[0]
			assert.Equal(t, TagOperationGroup, op.Tag)

			names := make([]string, 0, len(op.Attrs))
			for _, a := range op.Attrs {
				names = append(names, a.Name)
			}
			assert.Equal(t, tt.wantOp, names)
		})
	}
}

func TestBuild_HeaderLayout(t *testing.T) {
	b, err := Build(Request{
		Version:    Version20,
		Op:         OpResumePrinter,
		RequestID:  0x01020304,
		PrinterURI: "ipp://localhost/printers/PDF",
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{2, 0, 0x00, 0x11, 1, 2, 3, 4, byte(TagOperationGroup)}, b[:9])
	assert.Equal(t, byte(TagEnd), b[len(b)-1])
}

func TestParse_RoundTrip(t *testing.T) {
	job := Group{Tag: TagJobGroup}
	job.Add(MakeAttribute("job-name", TagName, String("report")))
	job.Add(MakeAttribute("copies", TagInteger, Integer(2)))
	job.Add(MakeAttribute("sides", TagKeyword, String("two-sided-long-edge")))

	req := Request{
		Op:         OpPrintJob,
		RequestID:  99,
		PrinterURI: "ipp://localhost:631/printers/PDF",
		User:       "bob",
		Operation: []Attribute{
			MakeAttribute("document-format", TagMimeType, String("application/pdf")),
		},
		Groups: []Group{job},
		Data:   []byte("%PDF-1.4 ..."),
	}
	want, err := req.Message()
	require.NoError(t, err)

	b, err := Build(req)
	require.NoError(t, err)

	got, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParse_Truncated(t *testing.T) {
	full, err := (&Message{
		Version:   Version11,
		Code:      uint16(StatusOK),
		RequestID: 1,
		Groups: []Group{{
			Tag:   TagOperationGroup,
			Attrs: []Attribute{MakeAttribute("attributes-charset", TagCharset, String("utf-8"))},
		}},
	}).Encode()
	require.NoError(t, err)

	tests := []struct {
		name string
		buf  []byte
	}{
		{name: "empty", buf: nil},
		{name: "short header", buf: full[:5]},
		{name: "header only", buf: full[:8]},
		{name: "missing end tag", buf: full[:len(full)-1]},
		{name: "cut after value tag", buf: append(bytes.Clone(full[:len(full)-1]), byte(TagName))},
		{name: "cut inside name length", buf: append(bytes.Clone(full[:len(full)-1]), byte(TagName), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.buf)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTruncatedMessage))

			var terr *TruncatedMessageError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, len(tt.buf), terr.Len)
		})
	}
}

func TestParse_SkipsUnknownTags(t *testing.T) {
	b := []byte{1, 1, 0, 0, 0, 0, 0, 5, byte(TagPrinterGroup)}
	b = append(b, rawEntry(TagName, "printer-name", []byte("PDF"))...)
	b = append(b, rawEntry(Tag(0x2f), "x-vendor-thing", []byte{0xde, 0xad})...)
	b = append(b, rawEntry(Tag(0x2f), "", []byte{0xbe, 0xef})...)
	b = append(b, rawEntry(TagKeyword, "printer-state-reasons", []byte("none"))...)
	b = append(b, rawEntry(TagKeyword, "", []byte("paused"))...)
	b = append(b, byte(TagEnd))

	var skipped []error
	m, err := Parse(b, WithSkipHook(func(err error) { skipped = append(skipped, err) }))
	require.NoError(t, err)
	assert.Len(t, skipped, 2)

	g, ok := m.Group(TagPrinterGroup)
	require.True(t, ok)
	require.Len(t, g.Attrs, 2)
	assert.Equal(t, "printer-name", g.Attrs[0].Name)
	assert.Equal(t, []string{"none", "paused"}, g.Attrs[1].Strings())
}

func TestParse_MalformedAttributeFails(t *testing.T) {
	b := []byte{1, 1, 0, 0, 0, 0, 0, 5, byte(TagPrinterGroup)}
	b = append(b, rawEntry(TagInteger, "printer-state", []byte{0, 3})...)
	b = append(b, byte(TagEnd))

	_, err := Parse(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedAttribute))
	assert.False(t, errors.Is(err, ErrTruncatedMessage))
}

func TestMessage_Groups(t *testing.T) {
	op := Group{Tag: TagOperationGroup}
	op.Add(MakeAttribute("status-message", TagText, String("successful-ok")))

	m := &Message{
		Code: uint16(StatusOK),
		Groups: []Group{
			op,
			{Tag: TagPrinterGroup, Attrs: []Attribute{MakeAttribute("printer-name", TagName, String("a"))}},
			{Tag: TagPrinterGroup, Attrs: []Attribute{MakeAttribute("printer-name", TagName, String("b"))}},
		},
	}

	assert.Equal(t, "successful-ok", m.StatusMessage())
	assert.Len(t, m.GroupsOf(TagPrinterGroup), 2)
	_, ok := m.Group(TagJobGroup)
	assert.False(t, ok)
}

func TestStatus_Class(t *testing.T) {
	tests := []struct {
		status Status
		want   StatusClass
	}{
		{StatusOK, StatusClassSuccessful},
		{StatusOKConflicting, StatusClassSuccessful},
		{0x00ff, StatusClassSuccessful},
		{0x0100, StatusClassInformational},
		{0x0200, StatusClassRedirection},
		{StatusErrorBadRequest, StatusClassClientError},
		{StatusErrorNotFound, StatusClassClientError},
		{0x04ff, StatusClassClientError},
		{StatusErrorInternal, StatusClassServerError},
		{StatusErrorBusy, StatusClassServerError},
		{0x0300, StatusClassUnknown},
		{0x0600, StatusClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Class())
			assert.Equal(t, tt.want == StatusClassSuccessful, tt.status.Successful())
		})
	}
}
