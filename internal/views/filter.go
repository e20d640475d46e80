package views

import (
	"slices"
	"strings"

	"github.com/adanyl0v/taskwise/internal/models"
)

// StatusFilter is either StatusAll or one of the task statuses.
// The zero value behaves like StatusAll.
type StatusFilter string

const StatusAll StatusFilter = "all"

// StatusIs builds a filter matching exactly status.
func StatusIs(status models.TaskStatus) StatusFilter {
	return StatusFilter(status)
}

// ParseStatusFilter accepts "", "all" or a valid task status.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	if raw == "" || raw == string(StatusAll) {
		return StatusAll, nil
	}
	status, err := models.ParseTaskStatus(raw)
	if err != nil {
		return "", err
	}
	return StatusIs(status), nil
}

func (f StatusFilter) all() bool {
	return f == "" || f == StatusAll
}

// TaskCriteria selects the tasks to display. A task is kept only when it
// matches every active criterion:
//
//   - Query is ignored when blank after trimming. Otherwise the lower-cased
//     trimmed query must occur in the lower-cased title and description.
//   - Status is ignored when it is StatusAll or empty.
//   - Tag is ignored when nil. Otherwise the task must carry exactly that tag.
type TaskCriteria struct {
	Query  string
	Status StatusFilter
	Tag    *string
}

// FilterTasks returns the tasks matching c, in their original order.
func FilterTasks(tasks []models.Task, c TaskCriteria) []models.Task {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !c.Status.all() && t.Status != models.TaskStatus(c.Status) {
			continue
		}
		if c.Tag != nil && !slices.Contains(t.Tags, *c.Tag) {
			continue
		}
		if query != "" && !matchesQuery(t.Title+" "+t.DescriptionOrEmpty(), query) {
			continue
		}
		filtered = append(filtered, t.Clone())
	}
	return filtered
}

// FilterProjects keeps the projects whose title or description contains the
// trimmed query, ignoring case. A blank query keeps every project.
func FilterProjects(projects []models.Project, query string) []models.Project {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if query != "" && !matchesQuery(p.Title, query) && !matchesQuery(p.Description, query) {
			continue
		}
		filtered = append(filtered, p.Clone())
	}
	return filtered
}

// DistinctTags returns every tag carried by tasks, once, in first-seen order.
func DistinctTags(tasks []models.Task) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, t := range tasks {
		for _, tag := range t.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

// matchesQuery expects query to be lower-cased already.
func matchesQuery(text, query string) bool {
	return strings.Contains(strings.ToLower(text), query)
}
