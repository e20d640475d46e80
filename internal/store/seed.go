package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adanyl0v/taskwise/internal/models"
)

type seedTask struct {
	title       string
	description string
	status      models.TaskStatus
	tags        []string
	dueInDays   int
}

type seedProject struct {
	title       string
	description string
	tags        []string
	tasks       []seedTask
}

// seedProjects is listed newest first, the way ListProjects returns it.
var seedProjects = []seedProject{
	{
		title:       "TaskWise App Development",
		description: "The main development project for the TaskWise application.",
		tags:        []string{"app"},
		tasks: []seedTask{
			{title: "Design login", status: models.StatusDone, tags: []string{"ui"}},
			{title: "API integration", status: models.StatusTodo, tags: []string{"backend"}},
			{title: "E2E tests", status: models.StatusTodo, tags: []string{"qa"}},
		},
	},
	{
		title:       "Backend API Service",
		description: "Developing the backend services and APIs.",
		tags:        []string{"backend"},
		tasks: []seedTask{
			{title: "Auth", status: models.StatusDone, tags: []string{"backend"}},
			{title: "Reports", status: models.StatusDone, tags: []string{"backend"}},
		},
	},
	{
		title:       "Marketing Campaign Q3",
		description: "Planning and execution of the marketing campaign",
		tags:        []string{"marketing"},
	},
	{
		title:       "Website Redesign",
		description: "A complete overhaul of the public-facing corporate website.",
		tags:        []string{"web"},
		tasks: []seedTask{
			{
				title:       "Refactor ProjectCard for mobile",
				description: "Make project card responsive and add accessible labels",
				status:      models.StatusInProgress,
				tags:        []string{"ui", "mobile"},
				dueInDays:   3,
			},
			{
				title:       "Draft API contract for projects",
				description: "Finalize the POST/PUT payloads for projects endpoints",
				status:      models.StatusTodo,
				tags:        []string{"backend", "docs"},
			},
			{
				title:       "Audit global css variables",
				description: "Ensure dark mode variables are consistent across projects",
				status:      models.StatusBlocked,
				tags:        []string{"css", "infra"},
			},
		},
	},
}

type Seeder interface {
	ProjectStore
	TaskStore
}

// Seed fills s with demo projects owned by ownerID. Tasks with a
// description are assigned to assignee when it is not nil. Creation times
// count back from now so every store lists the data in the same order.
func Seed(ctx context.Context, s Seeder, ownerID string, assignee *models.Assignee, now time.Time) error {
	created := now.Add(-time.Hour)
	tick := func() time.Time {
		created = created.Add(time.Second)
		return created
	}

	for i := len(seedProjects) - 1; i >= 0; i-- {
		sp := seedProjects[i]
		projectID, err := uuid.NewV7()
		if err != nil {
			return err
		}
		project := models.Project{
			ID:          projectID.String(),
			OwnerID:     ownerID,
			Title:       sp.title,
			Description: sp.description,
			Tags:        sp.tags,
			CreatedAt:   tick(),
		}
		err = s.CreateProject(ctx, &project)
		if err != nil {
			return err
		}

		for j := len(sp.tasks) - 1; j >= 0; j-- {
			st := sp.tasks[j]
			taskID, err := uuid.NewV7()
			if err != nil {
				return err
			}
			task := models.Task{
				ID:        taskID.String(),
				ProjectID: project.ID,
				Title:     st.title,
				Status:    st.status,
				Tags:      st.tags,
				CreatedAt: tick(),
			}
			if st.description != "" {
				description := st.description
				task.Description = &description
				if assignee != nil {
					a := *assignee
					task.Assignee = &a
				}
			}
			if st.dueInDays > 0 {
				due := now.AddDate(0, 0, st.dueInDays).Format(models.DueDateLayout)
				task.DueDate = &due
			}
			err = s.CreateTask(ctx, &task)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
