package tools

import (
	"context"
	"fmt"

	"github.com/harborcrew/quarterdeck/internal/taskstore"
)

// TaskPayload is the wire shape of one task row.
type TaskPayload struct {
	TaskID      int    `json:"task_id"`
	Title       string `json:"title"`
	Assignee    string `json:"assignee"`
	Deadline    string `json:"deadline"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// TaskListPayload is the read_task_list result.
type TaskListPayload struct {
	Tasks      []TaskPayload `json:"tasks"`
	RawContent string        `json:"raw_content"`
}

// TaskOperationPayload is the write_task / edit_task result.
type TaskOperationPayload struct {
	Message string `json:"message"`
	TaskID  int    `json:"task_id"`
}

func toTaskPayload(task taskstore.Task) TaskPayload {
	return TaskPayload{
		TaskID:      task.ID,
		Title:       task.Title,
		Assignee:    task.Assignee,
		Deadline:    task.Deadline,
		Description: task.Description,
		Status:      task.Status,
	}
}

func (s Service) registerTaskTools(reg *Registry) {
	reg.MustRegister(Tool{
		Name:        "read_task_list",
		Description: "Reads the task list for the specified crew member.",
		Handler: func(_ context.Context, args Args) (any, error) {
			userName, err := args.requiredString("user_name")
			if err != nil {
				return nil, err
			}
			tasks, raw, err := s.Tasks.List(userName)
			if err != nil {
				return nil, err
			}
			payload := TaskListPayload{Tasks: make([]TaskPayload, 0, len(tasks)), RawContent: raw}
			for _, task := range tasks {
				payload.Tasks = append(payload.Tasks, toTaskPayload(task))
			}
			return payload, nil
		},
	})

	reg.MustRegister(Tool{
		Name:        "write_task",
		Description: "Adds a new task to the specified crew member's task list.",
		Handler: func(_ context.Context, args Args) (any, error) {
			userName, err := args.requiredString("user_name")
			if err != nil {
				return nil, err
			}
			title, err := args.requiredString("task_title")
			if err != nil {
				return nil, err
			}
			assignee, err := args.requiredString("assignee")
			if err != nil {
				return nil, err
			}
			deadline, err := args.requiredString("deadline")
			if err != nil {
				return nil, err
			}
			description, err := args.requiredString("description")
			if err != nil {
				return nil, err
			}
			created, err := s.Tasks.Append(userName, title, assignee, deadline, description)
			if err != nil {
				return nil, err
			}
			return TaskOperationPayload{
				Message: fmt.Sprintf("Successfully added task %q (ID: %d) to %s's list.", created.Title, created.ID, userName),
				TaskID:  created.ID,
			}, nil
		},
	})

	reg.MustRegister(Tool{
		Name:        "edit_task",
		Description: "Modifies or deletes an existing task in the specified crew member's list.",
		Handler: func(_ context.Context, args Args) (any, error) {
			userName, err := args.requiredString("user_name")
			if err != nil {
				return nil, err
			}
			taskID, err := args.requiredInt("task_id")
			if err != nil {
				return nil, err
			}
			action, err := args.requiredString("action")
			if err != nil {
				return nil, err
			}
			switch action {
			case "modify":
				updates, err := args.updatesMap("updates")
				if err != nil {
					return nil, err
				}
				updated, err := s.Tasks.Update(userName, taskID, updates)
				if err != nil {
					return nil, err
				}
				return TaskOperationPayload{
					Message: fmt.Sprintf("Successfully modified task %q (ID: %d) in %s's list.", updated.Title, taskID, userName),
					TaskID:  taskID,
				}, nil
			case "delete":
				if err := s.Tasks.Delete(userName, taskID); err != nil {
					return nil, err
				}
				return TaskOperationPayload{
					Message: fmt.Sprintf("Successfully deleted task ID %d from %s's list.", taskID, userName),
					TaskID:  taskID,
				}, nil
			default:
				return nil, fmt.Errorf("%w: action must be 'modify' or 'delete'", ErrValidation)
			}
		},
	})
}
