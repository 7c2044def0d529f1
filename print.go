package cups

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/enthus-golang/cups/ipp"
)

const defaultDocumentFormat = "application/octet-stream"

// Document is one file of a job.
type Document struct {
	Name   string
	Format string // MIME type, defaults to application/octet-stream
	Data   []byte
}

// PrintOptions represents common job template attributes.
type PrintOptions struct {
	Copies      int
	Color       bool
	Duplex      string // "none", "long-edge", "short-edge"
	PageRanges  []ipp.Range
	Orientation string // "portrait", "landscape"
}

// Apply stores the options on j as job template attributes.
func (o PrintOptions) Apply(j *Job) {
	if j.Attributes == nil {
		j.Attributes = make(map[string]ipp.Attribute)
	}
	set := func(a ipp.Attribute) {
		j.Attributes[a.Name] = a
	}

	if o.Copies > 0 {
		set(ipp.MakeAttribute("copies", ipp.TagInteger, ipp.Integer(o.Copies)))
	}

	mode := "monochrome"
	if o.Color {
		mode = "color"
	}
	set(ipp.MakeAttribute("print-color-mode", ipp.TagKeyword, ipp.String(mode)))

	switch o.Duplex {
	case "none":
		set(ipp.MakeAttribute("sides", ipp.TagKeyword, ipp.String("one-sided")))
	case "long-edge":
		set(ipp.MakeAttribute("sides", ipp.TagKeyword, ipp.String("two-sided-long-edge")))
	case "short-edge":
		set(ipp.MakeAttribute("sides", ipp.TagKeyword, ipp.String("two-sided-short-edge")))
	}

	if len(o.PageRanges) > 0 {
		a := ipp.Attribute{Name: "page-ranges"}
		for _, r := range o.PageRanges {
			a.Values.Add(ipp.TagRange, r)
		}
		set(a)
	}

	switch o.Orientation {
	case "portrait":
		set(ipp.MakeAttribute("orientation-requested", ipp.TagEnum, ipp.Integer(3)))
	case "landscape":
		set(ipp.MakeAttribute("orientation-requested", ipp.TagEnum, ipp.Integer(4)))
	}
}

// Submit prints data as a single-document job (Print-Job) and returns the job
// the server created. The Attributes of j are sent as job template
// attributes; an empty name is replaced by a generated one.
func (m *Manager) Submit(ctx context.Context, p *Printer, j *Job, data []byte) (*Job, error) {
	return m.SubmitDocument(ctx, p, j, Document{Data: data})
}

// SubmitDocument is Submit with control over document name and format.
func (m *Manager) SubmitDocument(ctx context.Context, p *Printer, j *Job, doc Document) (*Job, error) {
	req, name, err := createRequest(ipp.OpPrintJob, p, j, m.requestingUser())
	if err != nil {
		return nil, fmt.Errorf("submitting job: %w", err)
	}
	req.Operation = append(req.Operation, documentAttributes(doc, name)...)
	req.Data = doc.Data

	resp, err := m.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("submitting job: %w", err)
	}
	return createdJob(ipp.OpPrintJob, resp, p, name)
}

// SubmitDocuments creates a job (Create-Job) and then sends every document
// with Send-Document, the last one flagged last-document. A failure part-way
// leaves the job on the server; cancel it if that matters.
func (m *Manager) SubmitDocuments(ctx context.Context, p *Printer, j *Job, docs ...Document) (*Job, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("submitting job: no documents")
	}

	req, name, err := createRequest(ipp.OpCreateJob, p, j, m.requestingUser())
	if err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}
	resp, err := m.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}
	job, err := createdJob(ipp.OpCreateJob, resp, p, name)
	if err != nil {
		return nil, err
	}
	if job.ID == 0 {
		return nil, fmt.Errorf("creating job: response without job-id")
	}

	for i, doc := range docs {
		last := i == len(docs)-1
		req := ipp.Request{
			Op:         ipp.OpSendDocument,
			PrinterURI: p.URI,
			JobID:      job.ID,
			User:       m.requestingUser(),
			Operation:  documentAttributes(doc, fmt.Sprintf("%s-%d", name, i+1)),
			Data:       doc.Data,
		}
		req.Operation = append(req.Operation, ipp.MakeAttribute("last-document", ipp.TagBoolean, ipp.Boolean(last)))

		resp, err := m.do(ctx, req)
		if err != nil {
			return job, fmt.Errorf("sending document %d of job %d: %w", i+1, job.ID, err)
		}
		if g, ok := resp.Group(ipp.TagJobGroup); ok {
			updated := JobFromGroup(g)
			if updated.State != JobStateUnknown {
				job.State = updated.State
				job.StateReasons = updated.StateReasons
			}
		}
	}

	return job, nil
}

func createRequest(op ipp.Op, p *Printer, j *Job, user string) (ipp.Request, string, error) {
	if p == nil || p.URI == "" {
		return ipp.Request{}, "", ErrNoPrinterURI
	}

	name := "job-" + uuid.NewString()
	req := ipp.Request{Op: op, PrinterURI: p.URI, User: user}
	if j != nil {
		if j.Name != "" {
			name = j.Name
		}
		if g, ok := j.templateGroup(); ok {
			req.Groups = append(req.Groups, g)
		}
	}
	req.Operation = append(req.Operation, ipp.MakeAttribute("job-name", ipp.TagName, ipp.String(name)))

	return req, name, nil
}

func documentAttributes(doc Document, fallbackName string) []ipp.Attribute {
	name := doc.Name
	if name == "" {
		name = fallbackName
	}
	format := doc.Format
	if format == "" {
		format = defaultDocumentFormat
	}
	return []ipp.Attribute{
		ipp.MakeAttribute("document-name", ipp.TagName, ipp.String(name)),
		ipp.MakeAttribute("document-format", ipp.TagMimeType, ipp.String(format)),
	}
}

func createdJob(op ipp.Op, resp *ipp.Message, p *Printer, name string) (*Job, error) {
	g, ok := resp.Group(ipp.TagJobGroup)
	if !ok {
		return nil, fmt.Errorf("%s: response without job attributes: %w", op, ErrNotFound)
	}

	job := JobFromGroup(g)
	if job.PrinterURI == "" {
		job.PrinterURI = p.URI
	}
	if job.Name == "" {
		job.Name = name
	}
	return &job, nil
}
