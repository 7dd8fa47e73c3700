package console_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/devserver"
	"github.com/rshade/schoolconsole/internal/lifecycle"
	"github.com/rshade/schoolconsole/internal/liststate"
	"github.com/rshade/schoolconsole/internal/record"
	"github.com/rshade/schoolconsole/internal/repository"
	"github.com/rshade/schoolconsole/internal/school"
	"github.com/rshade/schoolconsole/internal/validate"
)

type noticeLog struct {
	notices []lifecycle.Notice
}

func (n *noticeLog) Notify(notice lifecycle.Notice) { n.notices = append(n.notices, notice) }

func openSession(t *testing.T, name string, gateway lifecycle.Gateway) (console.Session, *noticeLog) {
	t.Helper()
	srv := httptest.NewServer(devserver.New(devserver.NewSeededStore()))
	t.Cleanup(srv.Close)

	client, err := repository.NewClient(srv.URL, repository.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	module, err := school.Registry().Lookup(name)
	require.NoError(t, err)

	notices := &noticeLog{}
	session := module.Open(console.Env{
		Client:   client,
		Gateway:  gateway,
		Notifier: notices,
		PerPage:  8,
	})
	require.NoError(t, session.Reload(context.Background()))
	return session, notices
}

func rowIDs(snap console.Snapshot) []string {
	out := make([]string, len(snap.Rows))
	for i, r := range snap.Rows {
		out[i] = r.ID
	}
	return out
}

func TestStudentsPaging(t *testing.T) {
	session, _ := openSession(t, "students", lifecycle.AutoConfirm{})

	snap := session.Snapshot(5)
	assert.Equal(t, 3, snap.Meta.TotalPages)
	assert.Equal(t, 23, snap.Meta.TotalItems)
	assert.Equal(t, []string{"1", "2", "3"}, snap.Window.Strings())

	session.GoToPage(2)
	snap = session.Snapshot(5)
	require.Len(t, snap.Rows, 8)
	assert.Equal(t, "stu-009", snap.Rows[0].ID)
	assert.Equal(t, "stu-016", snap.Rows[7].ID)

	session.RequestPage(4)
	snap = session.Snapshot(5)
	assert.Equal(t, 3, snap.Meta.CurrentPage)
	require.Len(t, snap.Rows, 7)
	assert.Equal(t, "stu-017", snap.Rows[0].ID)
	assert.Equal(t, "stu-023", snap.Rows[6].ID)

	session.GoToPage(0)
	assert.Equal(t, 3, session.Snapshot(5).Meta.CurrentPage)
	session.GoToPage(4)
	assert.Equal(t, 3, session.Snapshot(5).Meta.CurrentPage)
}

func TestStudentsFilter(t *testing.T) {
	session, _ := openSession(t, "pupils", lifecycle.AutoConfirm{})

	session.SetFilter(liststate.Filter{Search: "SOFÍA"})
	snap := session.Snapshot(5)
	require.NotEmpty(t, snap.Rows)
	for _, row := range snap.Rows {
		assert.Contains(t, row.Label, "Sofía")
	}

	session.SetFilter(liststate.Filter{Category: "5"})
	snap = session.Snapshot(5)
	for _, rec := range snap.Records {
		assert.Equal(t, "5", rec.(school.Student).Grade)
	}
	assert.Equal(t, []string{"5", "6", "7", "8"}, session.Categories())
}

func TestDeleteRestoreRoundTrip(t *testing.T) {
	session, notices := openSession(t, "students", lifecycle.AutoConfirm{})
	ctx := context.Background()

	before, err := session.Get(ctx, "stu-001")
	require.NoError(t, err)

	outcome, err := session.Delete(ctx, "stu-001")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.OutcomeCommitted, outcome)
	snap := session.Snapshot(5)
	assert.Equal(t, 22, snap.Meta.TotalItems)
	assert.NotContains(t, rowIDs(snap), "stu-001")

	require.NoError(t, session.ToggleVisibility(ctx))
	snap = session.Snapshot(5)
	assert.Equal(t, record.VisibilityInactive, snap.Visibility)
	assert.Equal(t, 4, snap.Meta.TotalItems)
	assert.Contains(t, rowIDs(snap), "stu-001")

	outcome, err = session.Restore(ctx, "stu-001")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.OutcomeCommitted, outcome)
	snap = session.Snapshot(5)
	assert.Equal(t, record.VisibilityActive, snap.Visibility)
	assert.Equal(t, 23, snap.Meta.TotalItems)

	after, err := session.Get(ctx, "stu-001")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	require.Len(t, notices.notices, 2)
	assert.Equal(t, `Student "Ana Gómez" deactivated`, notices.notices[0].Message)
	assert.Equal(t, `Student "Ana Gómez" restored`, notices.notices[1].Message)
}

func TestDelete_Declined(t *testing.T) {
	session, notices := openSession(t, "courses", lifecycle.AutoDecline{})
	before := session.Snapshot(5)

	outcome, err := session.Delete(context.Background(), "crs-001")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.OutcomeDeclined, outcome)
	assert.Equal(t, before, session.Snapshot(5))
	assert.Empty(t, notices.notices)
}

func TestDelete_NotFound(t *testing.T) {
	session, _ := openSession(t, "courses", lifecycle.AutoConfirm{})
	_, err := session.Delete(context.Background(), "crs-999")
	require.Error(t, err)
	assert.True(t, repository.IsNotFound(err))
}

func TestCreateAndUpdate(t *testing.T) {
	session, _ := openSession(t, "events", lifecycle.AutoConfirm{})
	ctx := context.Background()

	created, outcome, err := session.Create(ctx, map[string]any{
		"title":       "Book week",
		"description": "A week of reading activities.",
		"type":        "CULTURAL",
		"startDate":   "2026-09-01",
		"endDate":     "2026-09-05",
	})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.OutcomeCommitted, outcome)
	event := created.(school.Event)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, record.StatusActive, event.Status)
	assert.Equal(t, 4, session.Snapshot(5).Meta.TotalItems)

	updated, _, err := session.Update(ctx, event.ID, map[string]any{"location": "Library", "status": "INACTIVE"})
	require.NoError(t, err)
	assert.Equal(t, "Library", updated.(school.Event).Location)
	assert.Equal(t, "Book week", updated.(school.Event).Title)
	assert.Equal(t, record.StatusActive, updated.(school.Event).Status)
}

func TestCreate_ValidationFailure(t *testing.T) {
	session, _ := openSession(t, "events", lifecycle.AutoConfirm{})

	_, outcome, err := session.Create(context.Background(), map[string]any{
		"title":       "Hi",
		"description": "short",
		"type":        "SPORTS",
		"startDate":   "2026-09-05",
		"endDate":     "2026-09-01",
	})
	assert.Equal(t, lifecycle.OutcomeFailed, outcome)
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	msg, ok := verrs.Field("endDate")
	require.True(t, ok)
	assert.Equal(t, "must not be before startDate", msg)
	_, ok = verrs.Field("title")
	assert.True(t, ok)
	assert.Equal(t, 3, session.Snapshot(5).Meta.TotalItems)
}

func TestUpdate_InactiveRefused(t *testing.T) {
	session, _ := openSession(t, "courses", lifecycle.AutoConfirm{})
	_, _, err := session.Update(context.Background(), "crs-005", map[string]any{"name": "Latin II"})
	require.ErrorIs(t, err, lifecycle.ErrNotEditable)
}

func TestCounts(t *testing.T) {
	session, _ := openSession(t, "users", lifecycle.AutoConfirm{})
	counts, err := session.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, console.Counts{Active: 5, Inactive: 1}, counts)
}

func TestCounts_MalformedEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		active   string
		inactive string
		status   int
		want     console.Counts
		wantErr  bool
	}{
		{
			name:     "active data is an object",
			active:   `{"data":{"oops":1}}`,
			inactive: `{"data":[{"id":"stu-024","status":"INACTIVE"}]}`,
			status:   http.StatusOK,
			want:     console.Counts{Active: 0, Inactive: 1},
		},
		{
			name:     "both collections malformed",
			active:   `{"data":"nope"}`,
			inactive: `{"data":42}`,
			status:   http.StatusOK,
			want:     console.Counts{},
		},
		{
			name:     "server error still fails",
			active:   `{"message":"boom"}`,
			inactive: `{"data":[]}`,
			status:   http.StatusInternalServerError,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if r.URL.Path == "/students/inactive" {
					_, _ = w.Write([]byte(tt.inactive))
					return
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.active))
			}))
			t.Cleanup(srv.Close)

			client, err := repository.NewClient(srv.URL, repository.WithHTTPClient(srv.Client()))
			require.NoError(t, err)
			module, err := school.Registry().Lookup("students")
			require.NoError(t, err)
			session := module.Open(console.Env{Client: client, Gateway: lifecycle.AutoDecline{}, Notifier: &noticeLog{}, PerPage: 8})

			counts, err := session.Counts(context.Background())
			if tt.wantErr {
				var httpErr *repository.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, counts)

			// Loading the same collection agrees with the count.
			require.NoError(t, session.Reload(context.Background()))
			snap := session.Snapshot(5)
			assert.Empty(t, snap.Rows)
			assert.NotEmpty(t, snap.Diagnostic)
		})
	}
}

func TestRegistry(t *testing.T) {
	reg := school.Registry()

	tests := []struct {
		name    string
		want    string
		wantErr string
	}{
		{name: "students", want: "students"},
		{name: "Behaviour", want: "behavior-records"},
		{name: "staff", want: "users"},
		{name: "studnets", wantErr: `did you mean "students"`},
		{name: "xyzzyplugh", wantErr: `unknown module "xyzzyplugh"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := reg.Lookup(tt.name)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, console.ErrUnknownModule)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Name())
		})
	}

	assert.Len(t, reg.All(), 5)
	assert.Equal(t, 0, reg.Index(reg.All()[0]))
}
