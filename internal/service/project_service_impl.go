package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"backlog/internal/domain"
	"backlog/internal/repository"

	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	guard    tenantGuard
}

func NewProjectService(projects repository.ProjectRepo, issues repository.IssueRepo) ProjectService {
	return &projectService{
		projects: projects,
		guard:    tenantGuard{projects: projects, issues: issues},
	}
}

func (s *projectService) Create(ctx context.Context, identity domain.Identity, key, name string) (*domain.Project, error) {
	if err := s.guard.requireIdentity(identity); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		OrgID:     identity.OrgID,
		Key:       strings.ToUpper(strings.TrimSpace(key)),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.projects.GetByKey(ctx, identity.OrgID, p.Key); err == nil {
		return nil, domain.NewValidationError("key", "already in use")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) GetByKey(ctx context.Context, identity domain.Identity, key string) (*domain.Project, error) {
	if err := s.guard.requireIdentity(identity); err != nil {
		return nil, err
	}
	p, err := s.projects.GetByKey(ctx, identity.OrgID, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("project")
		}
		return nil, err
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context, identity domain.Identity) ([]*domain.Project, error) {
	if err := s.guard.requireIdentity(identity); err != nil {
		return nil, err
	}
	return s.projects.ListByOrg(ctx, identity.OrgID)
}
