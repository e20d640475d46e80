package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adanyl0v/taskwise/internal/models"
	"github.com/adanyl0v/taskwise/internal/store"
)

func TestMapError(t *testing.T) {
	other := errors.New("boom")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, store.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), store.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}, store.ErrAlreadyExists},
		{"foreign key violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, store.ErrNotFound},
		{"other", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapError(tt.in); !errors.Is(got, tt.want) {
				t.Fatalf("mapError() err=%v, want %v", got, tt.want)
			}
		})
	}

	if got := mapError(nil); got != nil {
		t.Fatalf("mapError(nil)=%v, want nil", got)
	}
}

func TestExpectAffected(t *testing.T) {
	if err := expectAffected(pgconn.NewCommandTag("DELETE 0"), nil); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expectAffected(0) err=%v, want %v", err, store.ErrNotFound)
	}
	if err := expectAffected(pgconn.NewCommandTag("UPDATE 1"), nil); err != nil {
		t.Fatalf("expectAffected(1) err=%v, want nil", err)
	}
}

func TestNonNilTags(t *testing.T) {
	if got := nonNilTags(nil); got == nil || len(got) != 0 {
		t.Fatalf("nonNilTags(nil)=%#v, want empty slice", got)
	}
}

// taskRow feeds scanTask the columns of a single tasks row.
type taskRow struct {
	status     string
	assigneeID *string
}

func (r taskRow) Scan(dest ...any) error {
	name := "Kim"
	values := []any{
		"t1", "p1", "Write docs", (*string)(nil), r.status, []string{"docs"},
		r.assigneeID, &name, (*string)(nil), time.Unix(0, 0), (*time.Time)(nil),
	}
	if len(dest) != len(values) {
		return fmt.Errorf("scan: got %d destinations, want %d", len(dest), len(values))
	}
	for i, d := range dest {
		switch d := d.(type) {
		case *string:
			*d = values[i].(string)
		case **string:
			*d = values[i].(*string)
		case *[]string:
			*d = values[i].([]string)
		case *time.Time:
			*d = values[i].(time.Time)
		case **time.Time:
			*d = values[i].(*time.Time)
		default:
			return fmt.Errorf("scan: unexpected destination %T", d)
		}
	}
	return nil
}

func TestScanTask(t *testing.T) {
	id := "u1"
	var task models.Task
	if err := scanTask(taskRow{status: "in-progress", assigneeID: &id}, &task); err != nil {
		t.Fatalf("scanTask() err=%v, want nil", err)
	}
	if task.Status != models.StatusInProgress {
		t.Fatalf("scanTask() status=%q, want %q", task.Status, models.StatusInProgress)
	}
	if task.Assignee == nil || task.Assignee.ID != "u1" || task.Assignee.Name != "Kim" {
		t.Fatalf("scanTask() assignee=%+v, want u1/Kim", task.Assignee)
	}

	task = models.Task{}
	if err := scanTask(taskRow{status: "in-progress"}, &task); err != nil || task.Assignee != nil {
		t.Fatalf("scanTask() assignee=%+v err=%v, want nil assignee", task.Assignee, err)
	}
}

func TestScanTask_RejectsUnknownStatus(t *testing.T) {
	var task models.Task
	err := scanTask(taskRow{status: "archived"}, &task)
	if !errors.Is(err, models.ErrInvalidTaskStatus) {
		t.Fatalf("scanTask() err=%v, want %v", err, models.ErrInvalidTaskStatus)
	}
}
