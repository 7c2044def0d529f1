package cups

import (
	"context"
	"errors"
	"fmt"

	"github.com/enthus-golang/cups/ipp"
)

// PrinterState is the printer-state enum.
type PrinterState int

const (
	PrinterStateUnknown    PrinterState = 0
	PrinterStateIdle       PrinterState = 3
	PrinterStateProcessing PrinterState = 4
	PrinterStateStopped    PrinterState = 5
)

func (s PrinterState) String() string {
	switch s {
	case PrinterStateIdle:
		return "idle"
	case PrinterStateProcessing:
		return "processing"
	case PrinterStateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Printer represents a print queue as described by its printer attributes.
type Printer struct {
	URI           string
	Name          string
	State         PrinterState
	StateReasons  []string
	StateMessage  string
	Info          string
	Location      string
	MakeAndModel  string
	AcceptingJobs bool

	// Attributes holds every attribute not mapped to a field above.
	Attributes map[string]ipp.Attribute

	// acceptingKnown records that AcceptingJobs came from the server, so a
	// false value is written back by Group.
	acceptingKnown bool
}

// Printers lists all printers known to the server (CUPS-Get-Printers).
func (m *Manager) Printers(ctx context.Context) ([]Printer, error) {
	resp, err := m.do(ctx, ipp.Request{Op: ipp.OpCupsGetPrinters})
	if err != nil {
		return nil, fmt.Errorf("getting printers: %w", err)
	}

	groups := resp.GroupsOf(ipp.TagPrinterGroup)
	printers := make([]Printer, 0, len(groups))
	for _, g := range groups {
		printers = append(printers, PrinterFromGroup(g))
	}
	return printers, nil
}

// DefaultPrinter returns the server's default destination (CUPS-Get-Default).
func (m *Manager) DefaultPrinter(ctx context.Context) (*Printer, error) {
	resp, err := m.do(ctx, ipp.Request{Op: ipp.OpCupsGetDefault})
	if err != nil {
		return nil, fmt.Errorf("getting default printer: %w", err)
	}

	g, ok := resp.Group(ipp.TagPrinterGroup)
	if !ok {
		return nil, fmt.Errorf("getting default printer: %w", ErrNotFound)
	}
	p := PrinterFromGroup(g)
	return &p, nil
}

// Printer fetches the attributes of one printer (Get-Printer-Attributes).
func (m *Manager) Printer(ctx context.Context, uri string) (*Printer, error) {
	if uri == "" {
		return nil, fmt.Errorf("getting printer: %w", ErrNoPrinterURI)
	}

	resp, err := m.do(ctx, ipp.Request{Op: ipp.OpGetPrinterAttributes, PrinterURI: uri})
	if err != nil {
		return nil, fmt.Errorf("getting printer: %w", err)
	}

	g, ok := resp.Group(ipp.TagPrinterGroup)
	if !ok {
		return nil, fmt.Errorf("getting printer %s: %w", uri, ErrNotFound)
	}
	p := PrinterFromGroup(g)
	if p.URI == "" {
		p.URI = uri
	}
	return &p, nil
}

// Pause stops the printer (Pause-Printer). On success p.State becomes
// stopped. A client or server error status yields false with a nil error and
// leaves p untouched; transport and decoding failures are returned.
func (m *Manager) Pause(ctx context.Context, p *Printer) (bool, error) {
	return m.control(ctx, ipp.OpPausePrinter, p, PrinterStateStopped)
}

// Resume restarts the printer (Resume-Printer). On success p.State becomes
// idle.
func (m *Manager) Resume(ctx context.Context, p *Printer) (bool, error) {
	return m.control(ctx, ipp.OpResumePrinter, p, PrinterStateIdle)
}

// Purge removes every job queued on the printer (Purge-Jobs). The printer
// state is not touched.
func (m *Manager) Purge(ctx context.Context, p *Printer) (bool, error) {
	return m.control(ctx, ipp.OpPurgeJobs, p, PrinterStateUnknown)
}

func (m *Manager) control(ctx context.Context, op ipp.Op, p *Printer, state PrinterState) (bool, error) {
	if p == nil || p.URI == "" {
		return false, fmt.Errorf("%s: %w", op, ErrNoPrinterURI)
	}

	_, err := m.do(ctx, ipp.Request{Op: op, PrinterURI: p.URI})

	var perr *ProtocolError
	switch {
	case errors.As(err, &perr):
		return false, nil
	case err != nil:
		return false, err
	}

	if state != PrinterStateUnknown {
		p.State = state
	}
	return true, nil
}
