package views

import (
	"fmt"

	"github.com/adanyl0v/taskwise/internal/models"
)

// ErrInvalidStatus is returned for a status outside the closed set.
var ErrInvalidStatus = models.ErrInvalidTaskStatus

var statusLabels = map[models.TaskStatus]string{
	models.StatusTodo:       "To Do",
	models.StatusInProgress: "In Progress",
	models.StatusBlocked:    "Blocked",
	models.StatusDone:       "Done",
}

// FormatStatusLabel returns the human-readable label of status. Unknown
// values fail with ErrInvalidStatus.
func FormatStatusLabel(status models.TaskStatus) (string, error) {
	label, ok := statusLabels[status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return label, nil
}

// CountByStatus counts tasks per status. Every valid status is present in
// the result, with zero when no task has it.
func CountByStatus(tasks []models.Task) map[models.TaskStatus]int {
	counts := make(map[models.TaskStatus]int, len(models.TaskStatuses))
	for _, s := range models.TaskStatuses {
		counts[s] = 0
	}
	for _, t := range tasks {
		if t.Status.Valid() {
			counts[t.Status]++
		}
	}
	return counts
}
