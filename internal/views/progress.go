package views

import "github.com/adanyl0v/taskwise/internal/models"

// ComputeProgress returns the share of done tasks as a percentage in
// [0, 100], rounded half up. An empty collection has 0 progress.
//
// The result is 100 only when every task is done and 0 only when none is.
func ComputeProgress(tasks []models.Task) int {
	total := len(tasks)
	if total == 0 {
		return 0
	}

	done := 0
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			done++
		}
	}

	// round(100*done/total) with halves rounded up, in integers.
	progress := (200*done + total) / (2 * total)
	switch {
	case done > 0 && progress == 0:
		return 1
	case done < total && progress == 100:
		return 99
	}
	return progress
}
