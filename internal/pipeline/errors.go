package pipeline

import (
	"fmt"
	"strings"

	"github.com/Tarunp72/SMART-SDLC/internal/domain"
)

// EmptyInputError reports a required text field that is blank after trimming.
type EmptyInputError struct {
	Task  domain.TaskKind
	Field string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: %s must not be empty", e.Task, e.Field)
}

// BackendError wraps whatever the model backend reported for a task.
type BackendError struct {
	Task    domain.TaskKind
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: backend %s failed: %v", e.Task, e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

type field struct {
	name  string
	value string
}

func requireText(task domain.TaskKind, fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &EmptyInputError{Task: task, Field: f.name}
		}
	}
	return nil
}
