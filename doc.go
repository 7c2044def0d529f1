// Package cups provides a client for CUPS print servers speaking IPP/1.1.
//
// A Manager turns printer and job operations into IPP request/response
// exchanges. The wire format lives in the ipp sub-package; the Manager only
// needs a Sender that delivers the encoded request and hands back the
// response bytes. HTTPTransport is the Sender for a real server, reachable
// over a Unix socket or TCP.
//
// Basic usage:
//
//	transport, err := cups.NewHTTPTransport("unix:///var/run/cups/cups.sock")
//	manager := cups.New(transport, cups.WithUsername("alice"))
//
//	// List printers
//	printers, err := manager.Printers(ctx)
//
//	// Print a PDF on the default printer
//	p, err := manager.DefaultPrinter(ctx)
//	job, err := manager.Submit(ctx, p, &cups.Job{Name: "report"}, pdf)
//
// Servers can also be configured from a YAML or INI file, or from the
// CUPS_SERVER, CUPS_USER, CUPS_PASSWORD and CUPS_LOG_LEVEL environment
// variables:
//
//	cfg, err := cups.LoadConfig("/etc/cups-client.yaml")
//	manager, err := cups.NewFromConfig(cfg)
//
// Operations that carry a status-code outside the successful band return a
// *ProtocolError; failures to reach the server return a *TransportError.
// Pause, Resume and Purge instead report a rejected request as false with a
// nil error.
package cups
