package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/scheduler/internal/calendar"
	"github.com/dori/scheduler/internal/criteria"
	"github.com/dori/scheduler/internal/db"
	"github.com/dori/scheduler/internal/model"
	"github.com/dori/scheduler/internal/render"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	db  *db.DB
	out *bytes.Buffer
	d   *Dispatcher
}

// newFixture opens a fresh store and a JSON renderer, which is easy to
// decode in assertions.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := db.Open(filepath.Join(t.TempDir(), "schedule.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	d := New(store, render.New(out, render.FormatJSON), nil)
	d.Clock = calendar.FixedClock(time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))

	return &fixture{db: store, out: out, d: d}
}

func (f *fixture) seed(t *testing.T, events ...model.Event) {
	t.Helper()
	for _, e := range events {
		_, err := f.db.CreateEvent(model.Event{Date: e.Date, Time: e.Time, Name: e.Name, Note: e.Note})
		require.NoError(t, err)
		if e.Complete {
			_, err := f.db.UpdateEvents(criteria.Criteria{Name: &e.Name}, model.Patch{Complete: ptr(true)})
			require.NoError(t, err)
		}
	}
}

func (f *fixture) run(t *testing.T, cmd Command) {
	t.Helper()
	f.out.Reset()
	require.NoError(t, f.d.Run(cmd))
}

func (f *fixture) listed(t *testing.T) []model.Listed {
	t.Helper()
	var got []model.Listed
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &got))
	return got
}

func (f *fixture) affected(t *testing.T) int64 {
	t.Helper()
	var got struct {
		Affected int64 `json:"affected"`
	}
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &got))
	return got.Affected
}

func namesOf(listed []model.Listed) []string {
	out := []string{}
	for _, l := range listed {
		out = append(out, l.Name)
	}
	return out
}

func (f *fixture) all(t *testing.T) map[string]model.Event {
	t.Helper()
	events, err := f.db.ListEvents()
	require.NoError(t, err)
	m := map[string]model.Event{}
	for _, e := range events {
		m[e.Name] = e
	}
	return m
}

func TestShowClearThenCompleteByDate(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		model.Event{Date: "2024-03-01", Name: "A"},
		model.Event{Date: "2024-03-01", Name: "B", Complete: true},
	)

	f.run(t, Command{Kind: KindEventShow, Criteria: criteria.Criteria{Complete: ptr(true)}})
	got := f.listed(t)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, 1, got[0].ID)

	f.run(t, Command{Kind: KindClearByDate, Date: "2024-03-01"})
	assert.EqualValues(t, 1, f.affected(t))
	all := f.all(t)
	assert.Contains(t, all, "A")
	assert.NotContains(t, all, "B")

	f.run(t, Command{Kind: KindCompleteByDate, Date: "2024-03-01"})
	assert.EqualValues(t, 1, f.affected(t))
	assert.True(t, f.all(t)["A"].Complete)
}

func TestListOrdinalsAreContiguousAfterSort(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		model.Event{Date: "2024-03-03", Name: "c"},
		model.Event{Date: "2024-03-01", Name: "a"},
		model.Event{Date: "2024-03-02", Name: "b"},
	)

	f.run(t, Command{Kind: KindList})
	assert.Equal(t, []string{"c", "a", "b"}, namesOf(f.listed(t)))

	f.run(t, Command{Kind: KindList, Sort: model.SortDate})
	got := f.listed(t)
	assert.Equal(t, []string{"a", "b", "c"}, namesOf(got))
	for i, l := range got {
		assert.Equal(t, i+1, l.ID)
	}

	f.seed(t, model.Event{Date: "2024-02-01", Name: "z"})
	f.run(t, Command{Kind: KindList, Sort: model.SortDate})
	got = f.listed(t)
	assert.Equal(t, "z", got[0].Name)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 4, got[3].ID)
}

func TestEventShowWithoutCriteriaListsAll(t *testing.T) {
	f := newFixture(t)
	f.seed(t, model.Event{Date: "2024-03-01", Name: "A"}, model.Event{Date: "2024-03-02", Name: "B"})

	f.run(t, Command{Kind: KindEventShow})
	assert.Equal(t, []string{"A", "B"}, namesOf(f.listed(t)))
}

func TestMutationsWithoutCriteriaChangeNothing(t *testing.T) {
	f := newFixture(t)
	f.seed(t, model.Event{Date: "2024-03-01", Name: "A"})
	before := f.all(t)

	for _, kind := range []Kind{KindEventComplete, KindEventRemove, KindEventUpdate} {
		f.run(t, Command{Kind: kind, Patch: model.Patch{Note: ptr("changed")}})
		assert.EqualValues(t, 0, f.affected(t), kind)
	}
	assert.Equal(t, before, f.all(t))
}

func TestEventCreateAndDuplicate(t *testing.T) {
	f := newFixture(t)

	cmd := Command{Kind: KindEventCreate, Date: "2024-03-01", Time: ptr("09:00:00"), Name: "Dentist"}
	f.run(t, cmd)

	var created model.Event
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &created))
	assert.Equal(t, "Dentist", created.Name)
	assert.Equal(t, model.DefaultNote, created.Note)
	assert.False(t, created.Complete)

	err := f.d.Run(cmd)
	assert.ErrorIs(t, err, model.ErrConstraintViolation)
}

func TestEventCreateNote(t *testing.T) {
	f := newFixture(t)

	f.run(t, Command{Kind: KindEventCreate, Date: "2024-03-01", Name: "A", Note: ptr("")})
	f.run(t, Command{Kind: KindEventCreate, Date: "2024-03-01", Name: "B", Note: ptr("gym")})

	all := f.all(t)
	assert.Equal(t, "", all["A"].Note)
	assert.Equal(t, "gym", all["B"].Note)
}

func TestEventCreateRequiresDateAndName(t *testing.T) {
	f := newFixture(t)
	err := f.d.Run(Command{Kind: KindEventCreate, Name: "x"})
	assert.ErrorIs(t, err, model.ErrMalformedInput)
	err = f.d.Run(Command{Kind: KindEventCreate, Date: "2024-03-01"})
	assert.ErrorIs(t, err, model.ErrMalformedInput)
}

func TestEventCompleteRemoveUpdate(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		model.Event{Date: "2024-03-01", Name: "A"},
		model.Event{Date: "2024-03-02", Name: "B"},
	)

	f.run(t, Command{Kind: KindEventComplete, Criteria: criteria.Criteria{Name: ptr("A")}})
	assert.EqualValues(t, 1, f.affected(t))
	assert.True(t, f.all(t)["A"].Complete)
	assert.False(t, f.all(t)["B"].Complete)

	f.run(t, Command{
		Kind:     KindEventUpdate,
		Criteria: criteria.Criteria{Date: ptr("2024-03-02")},
		Patch:    model.Patch{Note: ptr("moved"), Time: ptr("08:00:00")},
	})
	assert.EqualValues(t, 1, f.affected(t))
	assert.Equal(t, "moved", f.all(t)["B"].Note)

	f.run(t, Command{Kind: KindEventRemove, Criteria: criteria.Criteria{Complete: ptr(true)}})
	assert.EqualValues(t, 1, f.affected(t))
	assert.NotContains(t, f.all(t), "A")
}

func TestShowDate(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		model.Event{Date: "2024-03-01", Time: ptr("09:00:00"), Name: "A"},
		model.Event{Date: "2024-03-01", Time: ptr("10:00:00"), Name: "B"},
		model.Event{Date: "2024-03-02", Name: "C"},
	)

	var block render.Day

	f.run(t, Command{Kind: KindShowDate, Date: "2024-03-01"})
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &block))
	assert.Equal(t, "2024-03-01", block.Date)
	assert.Equal(t, []string{"A", "B"}, namesOf(block.Events))

	f.run(t, Command{Kind: KindShowDate, Date: "2024-03-01", Time: ptr("10:00:00")})
	block = render.Day{}
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &block))
	assert.Equal(t, []string{"B"}, namesOf(block.Events))

	err := f.d.Run(Command{Kind: KindShowDate})
	assert.ErrorIs(t, err, model.ErrMalformedInput)
}

func TestShowCalendarCurrentMonth(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		model.Event{Date: "2024-03-01", Name: "A"},
		model.Event{Date: "2024-03-31", Name: "B"},
		model.Event{Date: "2024-04-01", Name: "C"},
	)

	f.run(t, Command{Kind: KindShowCalendar})

	var got struct {
		Month string       `json:"month"`
		Days  []render.Day `json:"days"`
	}
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &got))
	assert.Equal(t, "2024-03", got.Month)
	require.Len(t, got.Days, 31)
	assert.Equal(t, "2024-03-01", got.Days[0].Date)
	assert.Equal(t, []string{"A"}, namesOf(got.Days[0].Events))
	assert.Empty(t, got.Days[1].Events)
	assert.Equal(t, []string{"B"}, namesOf(got.Days[30].Events))
}

func TestShowCalendarOffsetsCompose(t *testing.T) {
	f := newFixture(t)

	f.run(t, Command{Kind: KindShowCalendar, Prev: 1, Next: 3})

	var got struct {
		Month string       `json:"month"`
		Days  []render.Day `json:"days"`
	}
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &got))
	assert.Equal(t, "2024-05", got.Month)
	assert.Len(t, got.Days, 31)
}

type fakeBrowser struct{ first time.Time }

func (b *fakeBrowser) Browse(first time.Time) error {
	b.first = first
	return nil
}

func TestShowCalendarInteractive(t *testing.T) {
	f := newFixture(t)
	b := &fakeBrowser{}
	f.d.Browser = b

	f.run(t, Command{Kind: KindShowCalendar, Next: 1, Interactive: true})
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), b.first)
	assert.Empty(t, f.out.String())
}

type fakeNotifier struct {
	date    string
	pending []model.Event
	err     error
}

func (n *fakeNotifier) SendReminder(date string, pending []model.Event) error {
	n.date = date
	n.pending = pending
	return n.err
}

func TestRemindDefaultsToToday(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		model.Event{Date: "2024-03-15", Name: "pending"},
		model.Event{Date: "2024-03-15", Name: "done", Complete: true},
		model.Event{Date: "2024-03-16", Name: "tomorrow"},
	)
	n := &fakeNotifier{}
	f.d.Notifier = n

	f.run(t, Command{Kind: KindRemind})
	assert.Equal(t, "2024-03-15", n.date)
	require.Len(t, n.pending, 1)
	assert.Equal(t, "pending", n.pending[0].Name)
}

func TestRemindSurvivesNotifierFailure(t *testing.T) {
	f := newFixture(t)
	f.seed(t, model.Event{Date: "2024-03-20", Name: "x"})
	f.d.Notifier = &fakeNotifier{err: errors.New("no display")}

	f.run(t, Command{Kind: KindRemind, Date: "2024-03-20"})
	assert.Contains(t, f.out.String(), `"x"`)
}

func TestExportToFile(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		model.Event{Date: "2024-03-01", Time: ptr("09:00:00"), Name: "A"},
		model.Event{Date: "2024-03-02", Name: "B"},
	)

	path := filepath.Join(t.TempDir(), "out.ics")
	f.run(t, Command{Kind: KindExport, Criteria: criteria.Criteria{Date: ptr("2024-03-01")}, Out: path})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "BEGIN:VEVENT"))
	assert.Contains(t, string(data), "SUMMARY:A")
	assert.Contains(t, f.out.String(), "Exported 1 events")
}

func TestExportToOutput(t *testing.T) {
	f := newFixture(t)
	f.seed(t, model.Event{Date: "2024-03-01", Name: "A"}, model.Event{Date: "2024-03-02", Name: "B"})

	f.run(t, Command{Kind: KindExport})
	assert.Equal(t, 2, strings.Count(f.out.String(), "BEGIN:VEVENT"))
}

func TestUnknownKind(t *testing.T) {
	f := newFixture(t)
	err := f.d.Run(Command{Kind: "bogus"})
	assert.ErrorIs(t, err, model.ErrMalformedInput)
}
