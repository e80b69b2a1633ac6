package db

import (
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/dori/scheduler/internal/model"
)

// classify wraps a storage error with its kind. Unique constraint failures
// become ErrConstraintViolation, everything else ErrQueryFailure.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	kind := model.ErrQueryFailure
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) {
		switch {
		case sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique:
			kind = model.ErrConstraintViolation
		case sqlErr.Code == sqlite3.ErrCantOpen, sqlErr.Code == sqlite3.ErrIoErr, sqlErr.Code == sqlite3.ErrNotADB:
			kind = model.ErrStorageUnavailable
		}
	}
	return &model.Error{Kind: kind, Op: op, Err: err}
}
