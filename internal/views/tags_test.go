package views

import (
	"reflect"
	"slices"
	"testing"

	"github.com/adanyl0v/taskwise/internal/models"
)

func TestDistinctTags_FirstSeenOrder(t *testing.T) {
	got := DistinctTags(sampleTasks())
	want := []string{"ui", "mobile", "backend", "docs", "css"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DistinctTags()=%v, want %v", got, want)
	}
}

func TestDistinctTags_Empty(t *testing.T) {
	got := DistinctTags([]models.Task{{ID: "1"}, {ID: "2", Tags: []string{}}})
	if len(got) != 0 {
		t.Fatalf("DistinctTags()=%v, want empty", got)
	}
}

func TestDistinctTags_UnionOfTaskTags(t *testing.T) {
	tasks := sampleTasks()
	tags := DistinctTags(tasks)

	for _, tag := range tags {
		found := false
		for _, task := range tasks {
			if slices.Contains(task.Tags, tag) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("DistinctTags() returned %q which no task carries", tag)
		}
	}

	for _, task := range tasks {
		for _, tag := range task.Tags {
			if !slices.Contains(tags, tag) {
				t.Fatalf("DistinctTags() misses %q carried by %s", tag, task.ID)
			}
		}
	}
}
