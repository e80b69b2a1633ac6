package db

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dori/scheduler/internal/criteria"
	"github.com/dori/scheduler/internal/model"
)

const selectEvents = `SELECT date, time, name, note, complete, uid FROM events`

// ListEvents returns every event in storage order
func (db *DB) ListEvents() ([]model.Event, error) {
	rows, err := db.Query(selectEvents + ` ORDER BY rowid`)
	if err != nil {
		return nil, classify("list events", err)
	}
	defer rows.Close()

	return db.scanEvents(rows)
}

// QueryEvents returns the events matching c in storage order.
// Empty criteria select everything.
func (db *DB) QueryEvents(c criteria.Criteria) ([]model.Event, error) {
	if c.Empty() {
		return db.ListEvents()
	}

	where, args := c.Where()
	db.log.Debug("query events", zap.Stringer("criteria", c))

	rows, err := db.Query(selectEvents+` WHERE `+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, classify("query events", err)
	}
	defer rows.Close()

	return db.scanEvents(rows)
}

// CreateEvent inserts a new event with its note as given. The event always
// starts incomplete.
func (db *DB) CreateEvent(e model.Event) (*model.Event, error) {
	e.Complete = false
	e.UID = uuid.New().String()

	_, err := db.Exec(`
		INSERT INTO events (date, time, name, note, complete, uid)
		VALUES (?, ?, ?, ?, 0, ?)
	`, e.Date, e.Time, e.Name, e.Note, e.UID)
	if err != nil {
		return nil, classify("create event", err)
	}

	db.log.Debug("event created", zap.String("name", e.Name), zap.String("date", e.Date))
	return &e, nil
}

// UpdateEvents applies p to the events matching c and returns the number of
// rows changed. Empty criteria or an empty patch change nothing.
func (db *DB) UpdateEvents(c criteria.Criteria, p model.Patch) (int64, error) {
	if c.Empty() || p.Empty() {
		db.log.Debug("update skipped", zap.Bool("no_criteria", c.Empty()), zap.Bool("no_fields", p.Empty()))
		return 0, nil
	}

	set, setArgs := assignments(p)
	where, whereArgs := c.Where()

	res, err := db.Exec(`UPDATE events SET `+set+` WHERE `+where, append(setArgs, whereArgs...)...)
	if err != nil {
		return 0, classify("update events", err)
	}
	return db.affected("update events", res, c)
}

// DeleteEvents removes the events matching c and returns the number removed.
// Empty criteria remove nothing.
func (db *DB) DeleteEvents(c criteria.Criteria) (int64, error) {
	if c.Empty() {
		db.log.Debug("delete skipped", zap.Bool("no_criteria", true))
		return 0, nil
	}

	where, args := c.Where()
	res, err := db.Exec(`DELETE FROM events WHERE `+where, args...)
	if err != nil {
		return 0, classify("delete events", err)
	}
	return db.affected("delete events", res, c)
}

// ClearCompleted removes the completed events of one date
func (db *DB) ClearCompleted(date string) (int64, error) {
	done := true
	return db.DeleteEvents(criteria.Criteria{Date: &date, Complete: &done})
}

// CompleteAll marks every event of one date complete
func (db *DB) CompleteAll(date string) (int64, error) {
	done := true
	return db.UpdateEvents(criteria.ForDate(date), model.Patch{Complete: &done})
}

// DeleteAll removes every event of one date
func (db *DB) DeleteAll(date string) (int64, error) {
	return db.DeleteEvents(criteria.ForDate(date))
}

// Helper functions

func (db *DB) affected(op string, res sql.Result, c criteria.Criteria) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(op, err)
	}
	db.log.Debug(op, zap.Stringer("criteria", c), zap.Int64("rows", n))
	return n, nil
}

// assignments renders the SET list of an update in fixed field order
func assignments(p model.Patch) (string, []any) {
	var cols []string
	var args []any
	add := func(col string, v any) {
		cols = append(cols, col+" = ?")
		args = append(args, v)
	}
	if p.Date != nil {
		add("date", *p.Date)
	}
	if p.Time != nil {
		add("time", *p.Time)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Note != nil {
		add("note", *p.Note)
	}
	if p.Complete != nil {
		v := 0
		if *p.Complete {
			v = 1
		}
		add("complete", v)
	}
	return strings.Join(cols, ", "), args
}

func (db *DB) scanEvents(rows *sql.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		e, err := scanEventRow(rows)
		if err != nil {
			return nil, classify("read event", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("read events", err)
	}
	return events, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEventRow(s scanner) (*model.Event, error) {
	var e model.Event
	var clock, uid *string
	var complete int

	if err := s.Scan(&e.Date, &clock, &e.Name, &e.Note, &complete, &uid); err != nil {
		return nil, err
	}

	e.Time = clock
	e.Complete = complete == 1
	if uid != nil {
		e.UID = *uid
	}
	return &e, nil
}
