package org

import (
	"context"
	"fmt"

	common_models "go-hiring/internal/common/models"
)

// UserFinder is the slice of the user repository the directory needs.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*common_models.User, error)
}

// Directory answers "who occupies this role right now" questions against
// the organizational tree. A nil identity with a nil error means the role
// has no occupant, which callers translate into a skipped step.
type Directory struct {
	Repo  OrgRepository
	Users UserFinder
}

func NewDirectory(repo OrgRepository, users UserFinder) *Directory {
	return &Directory{Repo: repo, Users: users}
}

func (d *Directory) ManagerOfArea(ctx context.Context, areaID string) (*common_models.Identity, error) {
	area, err := d.Repo.FindArea(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("area lookup %s: %w", areaID, err)
	}
	if area == nil || area.ManagerUserID == "" {
		return nil, nil
	}
	return d.identityOf(ctx, area.ManagerUserID)
}

func (d *Directory) ManagerOfGerencia(ctx context.Context, gerenciaID string) (*common_models.Identity, error) {
	gerencia, err := d.Repo.FindGerencia(ctx, gerenciaID)
	if err != nil {
		return nil, fmt.Errorf("gerencia lookup %s: %w", gerenciaID, err)
	}
	if gerencia == nil || gerencia.ManagerUserID == "" {
		return nil, nil
	}
	return d.identityOf(ctx, gerencia.ManagerUserID)
}

func (d *Directory) RecruitmentLead(ctx context.Context, holdingID string) (*common_models.Identity, error) {
	holding, err := d.Repo.FindHolding(ctx, holdingID)
	if err != nil {
		return nil, fmt.Errorf("holding lookup %s: %w", holdingID, err)
	}
	if holding == nil || holding.RecruitmentLeadUserID == "" {
		return nil, nil
	}
	return d.identityOf(ctx, holding.RecruitmentLeadUserID)
}

func (d *Directory) identityOf(ctx context.Context, userID string) (*common_models.Identity, error) {
	user, err := d.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user lookup %s: %w", userID, err)
	}
	if user == nil || !user.Active {
		// Assignment points at a deactivated or removed user: treat the
		// role as unoccupied rather than freezing a dead identity.
		return nil, nil
	}
	identity := user.Identity()
	return &identity, nil
}
