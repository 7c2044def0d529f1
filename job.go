package cups

import (
	"context"
	"fmt"

	"github.com/enthus-golang/cups/ipp"
)

// JobState is the job-state enum.
type JobState int

const (
	JobStateUnknown    JobState = 0
	JobStatePending    JobState = 3
	JobStateHeld       JobState = 4
	JobStateProcessing JobState = 5
	JobStateStopped    JobState = 6
	JobStateCanceled   JobState = 7
	JobStateAborted    JobState = 8
	JobStateCompleted  JobState = 9
)

func (s JobState) String() string {
	switch s {
	case JobStatePending:
		return "pending"
	case JobStateHeld:
		return "held"
	case JobStateProcessing:
		return "processing"
	case JobStateStopped:
		return "stopped"
	case JobStateCanceled:
		return "canceled"
	case JobStateAborted:
		return "aborted"
	case JobStateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Job represents a print job.
type Job struct {
	ID           uint32
	URI          string
	PrinterURI   string
	State        JobState
	StateReasons []string
	Name         string
	Originator   string

	// Attributes holds every attribute not mapped to a field above. When a
	// Job is submitted they are sent as job template attributes.
	Attributes map[string]ipp.Attribute
}

// Which-jobs values for Get-Jobs.
const (
	WhichJobsNotCompleted = "not-completed"
	WhichJobsCompleted    = "completed"
	WhichJobsAll          = "all"
)

// GetJobsOptions represents options for listing jobs.
type GetJobsOptions struct {
	WhichJobs string // defaults to not-completed on the server
	MyJobs    bool
	Limit     int
}

// Jobs lists the jobs of a printer (Get-Jobs).
func (m *Manager) Jobs(ctx context.Context, p *Printer, opts *GetJobsOptions) ([]Job, error) {
	if p == nil || p.URI == "" {
		return nil, fmt.Errorf("getting jobs: %w", ErrNoPrinterURI)
	}

	req := ipp.Request{Op: ipp.OpGetJobs, PrinterURI: p.URI}
	if opts != nil {
		if opts.WhichJobs != "" {
			req.Operation = append(req.Operation, ipp.MakeAttribute("which-jobs", ipp.TagKeyword, ipp.String(opts.WhichJobs)))
		}
		if opts.MyJobs {
			req.Operation = append(req.Operation, ipp.MakeAttribute("my-jobs", ipp.TagBoolean, ipp.Boolean(true)))
		}
		if opts.Limit > 0 {
			req.Operation = append(req.Operation, ipp.MakeAttribute("limit", ipp.TagInteger, ipp.Integer(opts.Limit)))
		}
	}

	resp, err := m.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("getting jobs: %w", err)
	}

	groups := resp.GroupsOf(ipp.TagJobGroup)
	jobs := make([]Job, 0, len(groups))
	for _, g := range groups {
		j := JobFromGroup(g)
		if j.PrinterURI == "" {
			j.PrinterURI = p.URI
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// Job fetches the current attributes of j (Get-Job-Attributes).
func (m *Manager) Job(ctx context.Context, j *Job) (*Job, error) {
	req, err := jobTarget(ipp.OpGetJobAttributes, j)
	if err != nil {
		return nil, fmt.Errorf("getting job: %w", err)
	}

	resp, err := m.do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("getting job %d: %w", j.ID, err)
	}

	g, ok := resp.Group(ipp.TagJobGroup)
	if !ok {
		return nil, fmt.Errorf("getting job %d: %w", j.ID, ErrNotFound)
	}
	got := JobFromGroup(g)
	if got.PrinterURI == "" {
		got.PrinterURI = j.PrinterURI
	}
	return &got, nil
}

// Cancel cancels a print job (Cancel-Job). On success j.State becomes
// canceled.
func (m *Manager) Cancel(ctx context.Context, j *Job) error {
	req, err := jobTarget(ipp.OpCancelJob, j)
	if err != nil {
		return fmt.Errorf("cancelling job: %w", err)
	}

	if _, err := m.do(ctx, req); err != nil {
		return fmt.Errorf("cancelling job %d: %w", j.ID, err)
	}

	j.State = JobStateCanceled
	return nil
}

// Hold keeps a pending job from being scheduled (Hold-Job). On success
// j.State becomes held.
func (m *Manager) Hold(ctx context.Context, j *Job) error {
	return m.jobControl(ctx, ipp.OpHoldJob, j, JobStateHeld)
}

// Release lets a held job be scheduled again (Release-Job). On success
// j.State becomes pending.
func (m *Manager) Release(ctx context.Context, j *Job) error {
	return m.jobControl(ctx, ipp.OpReleaseJob, j, JobStatePending)
}

func (m *Manager) jobControl(ctx context.Context, op ipp.Op, j *Job, state JobState) error {
	req, err := jobTarget(op, j)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := m.do(ctx, req); err != nil {
		return fmt.Errorf("%s job %d: %w", op, j.ID, err)
	}

	j.State = state
	return nil
}

// jobTarget addresses j by printer-uri and job-id when both are known, and
// by job-uri otherwise.
func jobTarget(op ipp.Op, j *Job) (ipp.Request, error) {
	switch {
	case j == nil:
		return ipp.Request{}, ErrNoJobTarget
	case j.PrinterURI != "" && j.ID != 0:
		return ipp.Request{Op: op, PrinterURI: j.PrinterURI, JobID: j.ID}, nil
	case j.URI != "":
		return ipp.Request{Op: op, JobURI: j.URI}, nil
	}
	return ipp.Request{}, ErrNoJobTarget
}
