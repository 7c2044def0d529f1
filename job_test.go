package cups

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enthus-golang/cups/ipp"
)

func TestManager_Jobs(t *testing.T) {
	srv := &fakeServer{handle: func(*ipp.Message) *ipp.Message {
		return response(ipp.StatusOK,
			jobGroup(7, JobStateProcessing),
			jobGroup(8, JobStatePending),
		)
	}}
	m := New(srv)
	p := &Printer{URI: "ipp://localhost/printers/a"}

	jobs, err := m.Jobs(context.Background(), p, &GetJobsOptions{WhichJobs: WhichJobsAll, MyJobs: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, uint32(7), jobs[0].ID)
	assert.Equal(t, JobStateProcessing, jobs[0].State)
	assert.Equal(t, p.URI, jobs[0].PrinterURI)
	assert.Equal(t, uint32(8), jobs[1].ID)
	assert.Equal(t, JobStatePending, jobs[1].State)

	req := srv.last(t)
	assert.Equal(t, ipp.OpGetJobs, req.Op())
	assert.Equal(t, "all", opAttr(t, req, "which-jobs").Value().String())
	assert.Equal(t, ipp.Boolean(true), opAttr(t, req, "my-jobs").Value())
	assert.Equal(t, ipp.Integer(10), opAttr(t, req, "limit").Value())
}

func TestManager_JobsWithoutOptions(t *testing.T) {
	srv := &fakeServer{handle: okHandler}
	m := New(srv)

	jobs, err := m.Jobs(context.Background(), &Printer{URI: "ipp://localhost/printers/a"}, nil)
	require.NoError(t, err)
	assert.Empty(t, jobs)

	g, ok := srv.last(t).Group(ipp.TagOperationGroup)
	require.True(t, ok)
	_, found := g.Get("which-jobs")
	assert.False(t, found)

	_, err = m.Jobs(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNoPrinterURI)
}

func TestManager_Job(t *testing.T) {
	tests := []struct {
		name        string
		job         *Job
		wantTarget  string
		wantJobID   bool
		wantErr     error
		respondWith *ipp.Message
	}{
		{
			name:        "by printer and id",
			job:         &Job{ID: 7, PrinterURI: "ipp://localhost/printers/a"},
			wantTarget:  "printer-uri",
			wantJobID:   true,
			respondWith: response(ipp.StatusOK, jobGroup(7, JobStateCompleted)),
		},
		{
			name:        "by job uri",
			job:         &Job{URI: "ipp://localhost/jobs/7"},
			wantTarget:  "job-uri",
			respondWith: response(ipp.StatusOK, jobGroup(7, JobStateCompleted)),
		},
		{
			name:    "no target",
			job:     &Job{ID: 7},
			wantErr: ErrNoJobTarget,
		},
		{
			name:        "unknown job",
			job:         &Job{URI: "ipp://localhost/jobs/99"},
			wantTarget:  "job-uri",
			wantErr:     ErrNotFound,
			respondWith: errorResponse(ipp.StatusErrorNotFound, "Job #99 does not exist."),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := &fakeServer{handle: func(*ipp.Message) *ipp.Message { return tt.respondWith }}
			m := New(srv)

			got, err := m.Job(context.Background(), tt.job)
			if tt.wantTarget == "" {
				assert.Empty(t, srv.requests)
			} else {
				req := srv.last(t)
				assert.Equal(t, ipp.OpGetJobAttributes, req.Op())
				opAttr(t, req, tt.wantTarget)
				if tt.wantJobID {
					assert.Equal(t, ipp.Integer(7), opAttr(t, req, "job-id").Value())
				}
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint32(7), got.ID)
			assert.Equal(t, JobStateCompleted, got.State)
		})
	}
}

func TestManager_Cancel(t *testing.T) {
	srv := &fakeServer{handle: okHandler}
	m := New(srv, WithUsername("alice"))
	j := &Job{ID: 12, PrinterURI: "ipp://localhost/printers/a", State: JobStateProcessing}

	require.NoError(t, m.Cancel(context.Background(), j))
	assert.Equal(t, JobStateCanceled, j.State)

	req := srv.last(t)
	assert.Equal(t, ipp.OpCancelJob, req.Op())
	assert.Equal(t, ipp.Integer(12), opAttr(t, req, "job-id").Value())
	assert.Equal(t, "alice", opAttr(t, req, "requesting-user-name").Value().String())
}

func TestManager_CancelRejected(t *testing.T) {
	srv := &fakeServer{handle: func(*ipp.Message) *ipp.Message {
		return errorResponse(ipp.StatusErrorNotPossible, "Job #12 is already completed - can't cancel.")
	}}
	m := New(srv)
	j := &Job{ID: 12, PrinterURI: "ipp://localhost/printers/a", State: JobStateCompleted}

	err := m.Cancel(context.Background(), j)

	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ipp.OpCancelJob, perr.Op)
	assert.Equal(t, ipp.StatusErrorNotPossible, perr.Code)
	assert.Equal(t, JobStateCompleted, j.State)
}

func TestManager_HoldRelease(t *testing.T) {
	tests := []struct {
		name      string
		call      func(*Manager, context.Context, *Job) error
		wantOp    ipp.Op
		status    ipp.Status
		wantState JobState
		wantErr   bool
	}{
		{
			name:      "hold",
			call:      (*Manager).Hold,
			wantOp:    ipp.OpHoldJob,
			status:    ipp.StatusOK,
			wantState: JobStateHeld,
		},
		{
			name:      "release",
			call:      (*Manager).Release,
			wantOp:    ipp.OpReleaseJob,
			status:    ipp.StatusOK,
			wantState: JobStatePending,
		},
		{
			name:      "hold rejected",
			call:      (*Manager).Hold,
			wantOp:    ipp.OpHoldJob,
			status:    ipp.StatusErrorNotPossible,
			wantState: JobStateProcessing,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := &fakeServer{handle: func(*ipp.Message) *ipp.Message { return response(tt.status) }}
			m := New(srv)
			j := &Job{ID: 5, PrinterURI: "ipp://localhost/printers/a", State: JobStateProcessing}

			err := tt.call(m, context.Background(), j)
			if tt.wantErr {
				var perr *ProtocolError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, tt.wantOp, perr.Op)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, j.State)

			req := srv.last(t)
			assert.Equal(t, tt.wantOp, req.Op())
			assert.Equal(t, ipp.Integer(5), opAttr(t, req, "job-id").Value())
		})
	}

	m := New(&fakeServer{handle: okHandler})
	assert.ErrorIs(t, m.Hold(context.Background(), &Job{ID: 5}), ErrNoJobTarget)
}

func TestJobTarget(t *testing.T) {
	tests := []struct {
		name    string
		job     *Job
		want    ipp.Request
		wantErr bool
	}{
		{
			name: "printer and id win over uri",
			job:  &Job{ID: 3, PrinterURI: "ipp://h/printers/a", URI: "ipp://h/jobs/3"},
			want: ipp.Request{Op: ipp.OpCancelJob, PrinterURI: "ipp://h/printers/a", JobID: 3},
		},
		{
			name: "uri only",
			job:  &Job{URI: "ipp://h/jobs/3"},
			want: ipp.Request{Op: ipp.OpCancelJob, JobURI: "ipp://h/jobs/3"},
		},
		{
			name:    "printer without id",
			job:     &Job{PrinterURI: "ipp://h/printers/a"},
			wantErr: true,
		},
		{
			name:    "nil job",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jobTarget(ipp.OpCancelJob, tt.job)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoJobTarget)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
