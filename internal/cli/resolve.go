package cli

import (
	"context"
	"fmt"
	"strings"

	"backlog/internal/domain"
	"backlog/internal/service"
)

// resolveProject accepts a project key ("WEB") or a UUID / UUID prefix and
// returns the matching project.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	if input == "" {
		return nil, fmt.Errorf("project is required")
	}

	// 1. Exact key match (case-insensitive).
	if p, err := app.Projects.GetByKey(ctx, app.Identity, input); err == nil {
		return p, nil
	}

	projects, err := app.Projects.List(ctx, app.Identity)
	if err != nil {
		return nil, err
	}

	// 2. Exact UUID match.
	for _, p := range projects {
		if p.ID == input {
			return p, nil
		}
	}

	// 3. UUID prefix match.
	var matches []*domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("project %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveSprintID accepts a sprint UUID or prefix within a project.
func resolveSprintID(ctx context.Context, app *App, projectID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("sprint is required")
	}

	sprints, err := app.Sprints.ListByProject(ctx, app.Identity, projectID)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, sp := range sprints {
		if sp.ID == input {
			return sp.ID, nil
		}
		if strings.HasPrefix(sp.ID, input) || strings.EqualFold(sp.Name, input) {
			matches = append(matches, sp.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("sprint not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("sprint %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resultErr converts a failed envelope into a command error.
func resultErr(res service.Result) error {
	if res.Success {
		return nil
	}
	return fmt.Errorf("%s", res.Message)
}
