package cups

import (
	"sort"

	"github.com/enthus-golang/cups/ipp"
)

// Attribute names the mapper understands.
const (
	attrPrinterURISupported = "printer-uri-supported"
	attrPrinterName         = "printer-name"
	attrPrinterState        = "printer-state"
	attrPrinterStateReasons = "printer-state-reasons"
	attrPrinterStateMessage = "printer-state-message"
	attrPrinterInfo         = "printer-info"
	attrPrinterLocation     = "printer-location"
	attrPrinterMakeModel    = "printer-make-and-model"
	attrPrinterAccepting    = "printer-is-accepting-jobs"

	attrJobID         = "job-id"
	attrJobURI        = "job-uri"
	attrJobPrinterURI = "job-printer-uri"
	attrJobState      = "job-state"
	attrJobReasons    = "job-state-reasons"
	attrJobName       = "job-name"
	attrJobOriginator = "job-originating-user-name"
)

// PrinterFromGroup maps a printer attribute group. Attributes that are not
// held by a Printer field, or whose shape does not fit the field exactly,
// are kept in Attributes.
func PrinterFromGroup(g ipp.Group) Printer {
	p := Printer{Attributes: make(map[string]ipp.Attribute)}
	for _, a := range g.Attrs {
		if !p.set(a) {
			p.Attributes[a.Name] = a
		}
	}
	return p
}

// set copies a into the matching field and reports whether the field holds
// it without loss.
func (p *Printer) set(a ipp.Attribute) bool {
	switch a.Name {
	case attrPrinterURISupported:
		p.URI = firstString(a)
		return single(a, ipp.TagURI)
	case attrPrinterName:
		p.Name = firstString(a)
		return single(a, ipp.TagName)
	case attrPrinterState:
		if v, ok := a.Value().(ipp.Integer); ok {
			p.State = PrinterState(v)
		}
		return single(a, ipp.TagEnum)
	case attrPrinterStateReasons:
		p.StateReasons = a.Strings()
		return all(a, ipp.TagKeyword)
	case attrPrinterStateMessage:
		p.StateMessage = firstString(a)
		return single(a, ipp.TagText)
	case attrPrinterInfo:
		p.Info = firstString(a)
		return single(a, ipp.TagText)
	case attrPrinterLocation:
		p.Location = firstString(a)
		return single(a, ipp.TagText)
	case attrPrinterMakeModel:
		p.MakeAndModel = firstString(a)
		return single(a, ipp.TagText)
	case attrPrinterAccepting:
		if v, ok := a.Value().(ipp.Boolean); ok {
			p.AcceptingJobs = bool(v)
		}
		p.acceptingKnown = single(a, ipp.TagBoolean)
		return p.acceptingKnown
	}
	return false
}

// Group rebuilds the printer attribute group: mapped fields first, then the
// overflow attributes sorted by name. An overflow attribute replaces the
// field of the same name.
func (p Printer) Group() ipp.Group {
	g := ipp.Group{Tag: ipp.TagPrinterGroup}
	add := func(a ipp.Attribute) {
		if _, ok := p.Attributes[a.Name]; !ok {
			g.Add(a)
		}
	}

	if p.URI != "" {
		add(ipp.MakeAttribute(attrPrinterURISupported, ipp.TagURI, ipp.String(p.URI)))
	}
	if p.Name != "" {
		add(ipp.MakeAttribute(attrPrinterName, ipp.TagName, ipp.String(p.Name)))
	}
	if p.State != PrinterStateUnknown {
		add(ipp.MakeAttribute(attrPrinterState, ipp.TagEnum, ipp.Integer(p.State)))
	}
	if len(p.StateReasons) > 0 {
		add(ipp.MakeAttribute(attrPrinterStateReasons, ipp.TagKeyword, stringValues(p.StateReasons)...))
	}
	if p.StateMessage != "" {
		add(ipp.MakeAttribute(attrPrinterStateMessage, ipp.TagText, ipp.String(p.StateMessage)))
	}
	if p.Info != "" {
		add(ipp.MakeAttribute(attrPrinterInfo, ipp.TagText, ipp.String(p.Info)))
	}
	if p.Location != "" {
		add(ipp.MakeAttribute(attrPrinterLocation, ipp.TagText, ipp.String(p.Location)))
	}
	if p.MakeAndModel != "" {
		add(ipp.MakeAttribute(attrPrinterMakeModel, ipp.TagText, ipp.String(p.MakeAndModel)))
	}
	if p.AcceptingJobs || p.acceptingKnown {
		add(ipp.MakeAttribute(attrPrinterAccepting, ipp.TagBoolean, ipp.Boolean(p.AcceptingJobs)))
	}

	g.Attrs = append(g.Attrs, overflow(p.Attributes)...)
	return g
}

// JobFromGroup maps a job attribute group the same way PrinterFromGroup maps
// a printer group.
func JobFromGroup(g ipp.Group) Job {
	j := Job{Attributes: make(map[string]ipp.Attribute)}
	for _, a := range g.Attrs {
		if !j.set(a) {
			j.Attributes[a.Name] = a
		}
	}
	return j
}

func (j *Job) set(a ipp.Attribute) bool {
	switch a.Name {
	case attrJobID:
		if v, ok := a.Value().(ipp.Integer); ok && v > 0 {
			j.ID = uint32(v)
			return single(a, ipp.TagInteger)
		}
	case attrJobURI:
		j.URI = firstString(a)
		return single(a, ipp.TagURI)
	case attrJobPrinterURI:
		j.PrinterURI = firstString(a)
		return single(a, ipp.TagURI)
	case attrJobState:
		if v, ok := a.Value().(ipp.Integer); ok {
			j.State = JobState(v)
		}
		return single(a, ipp.TagEnum)
	case attrJobReasons:
		j.StateReasons = a.Strings()
		return all(a, ipp.TagKeyword)
	case attrJobName:
		j.Name = firstString(a)
		return single(a, ipp.TagName)
	case attrJobOriginator:
		j.Originator = firstString(a)
		return single(a, ipp.TagName)
	}
	return false
}

// Group rebuilds the job attribute group.
func (j Job) Group() ipp.Group {
	g := ipp.Group{Tag: ipp.TagJobGroup}
	add := func(a ipp.Attribute) {
		if _, ok := j.Attributes[a.Name]; !ok {
			g.Add(a)
		}
	}

	if j.ID != 0 {
		add(ipp.MakeAttribute(attrJobID, ipp.TagInteger, ipp.Integer(j.ID)))
	}
	if j.URI != "" {
		add(ipp.MakeAttribute(attrJobURI, ipp.TagURI, ipp.String(j.URI)))
	}
	if j.PrinterURI != "" {
		add(ipp.MakeAttribute(attrJobPrinterURI, ipp.TagURI, ipp.String(j.PrinterURI)))
	}
	if j.State != JobStateUnknown {
		add(ipp.MakeAttribute(attrJobState, ipp.TagEnum, ipp.Integer(j.State)))
	}
	if len(j.StateReasons) > 0 {
		add(ipp.MakeAttribute(attrJobReasons, ipp.TagKeyword, stringValues(j.StateReasons)...))
	}
	if j.Name != "" {
		add(ipp.MakeAttribute(attrJobName, ipp.TagName, ipp.String(j.Name)))
	}
	if j.Originator != "" {
		add(ipp.MakeAttribute(attrJobOriginator, ipp.TagName, ipp.String(j.Originator)))
	}

	g.Attrs = append(g.Attrs, overflow(j.Attributes)...)
	return g
}

// templateGroup returns the job attributes a Print-Job or Create-Job request
// carries: the overflow attributes of j (copies, sides, media...). ok is
// false when there are none.
func (j Job) templateGroup() (ipp.Group, bool) {
	if len(j.Attributes) == 0 {
		return ipp.Group{}, false
	}
	return ipp.Group{Tag: ipp.TagJobGroup, Attrs: overflow(j.Attributes)}, true
}

func overflow(m map[string]ipp.Attribute) []ipp.Attribute {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ipp.Attribute, 0, len(names))
	for _, name := range names {
		out = append(out, m[name])
	}
	return out
}

func single(a ipp.Attribute, tag ipp.Tag) bool {
	return len(a.Values) == 1 && a.Values[0].T == tag
}

func all(a ipp.Attribute, tag ipp.Tag) bool {
	if len(a.Values) == 0 {
		return false
	}
	for _, v := range a.Values {
		if v.T != tag {
			return false
		}
	}
	return true
}

// firstString returns the first value as text; for the with-language
// variants only the text part.
func firstString(a ipp.Attribute) string {
	switch v := a.Value().(type) {
	case nil:
		return ""
	case ipp.TextWithLang:
		return v.Text
	default:
		return v.String()
	}
}

func stringValues(ss []string) []ipp.Value {
	out := make([]ipp.Value, 0, len(ss))
	for _, s := range ss {
		out = append(out, ipp.String(s))
	}
	return out
}
