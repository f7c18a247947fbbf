package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/features/audit"
	"go-hiring/pkg/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkflowService interface {
	CreateTemplate(ctx context.Context, template *WorkflowTemplate) error
	GetTemplate(ctx context.Context, id string) (*WorkflowTemplate, error)
	ListTemplates(ctx context.Context, holdingID string) ([]WorkflowTemplate, error)
	UpdateTemplate(ctx context.Context, id string, template *WorkflowTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	SetDefault(ctx context.Context, holdingID string, id string) error

	// SelectTemplate picks the template for a submission: explicit id wins,
	// then the first active template (by priority) whose match script
	// accepts the requisition, then the holding default.
	SelectTemplate(ctx context.Context, holdingID string, explicitID string, rqVars map[string]interface{}) (*WorkflowTemplate, error)
}

type WorkflowServiceImpl struct {
	Repo         WorkflowRepository
	AuditService audit.AuditService
}

func NewWorkflowService(repo WorkflowRepository, auditService audit.AuditService) WorkflowService {
	return &WorkflowServiceImpl{
		Repo:         repo,
		AuditService: auditService,
	}
}

func (s *WorkflowServiceImpl) CreateTemplate(ctx context.Context, template *WorkflowTemplate) error {
	for i := range template.Steps {
		if template.Steps[i].ID == "" {
			template.Steps[i].ID = uuid.NewString()
		}
	}

	if err := ValidateTemplate(template); err != nil {
		return err
	}

	if template.ID.IsZero() {
		template.ID = primitive.NewObjectID()
	}
	template.Slug = utils.Slugify(template.Name)
	// is_default is only ever granted through SetDefault
	template.IsDefault = false
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()

	err := s.Repo.Create(ctx, template)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionTemplate, "workflow_templates", template.ID.Hex(), map[string]common_models.Change{
			"template": {New: template.Name},
		})
	}
	return err
}

func (s *WorkflowServiceImpl) GetTemplate(ctx context.Context, id string) (*WorkflowTemplate, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *WorkflowServiceImpl) ListTemplates(ctx context.Context, holdingID string) ([]WorkflowTemplate, error) {
	return s.Repo.List(ctx, holdingID)
}

func (s *WorkflowServiceImpl) UpdateTemplate(ctx context.Context, id string, template *WorkflowTemplate) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("template not found")
	}

	for i := range template.Steps {
		if template.Steps[i].ID == "" {
			template.Steps[i].ID = uuid.NewString()
		}
	}
	template.HoldingID = existing.HoldingID
	if err := ValidateTemplate(template); err != nil {
		return err
	}
	template.Slug = utils.Slugify(template.Name)

	err = s.Repo.Update(ctx, id, template)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionTemplate, "workflow_templates", id, map[string]common_models.Change{
			"template": {Old: existing.Name, New: template.Name},
			"steps":    {Old: len(existing.Steps), New: len(template.Steps)},
		})
	}
	return err
}

func (s *WorkflowServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("template not found")
	}
	if existing.IsDefault {
		return fmt.Errorf("%w: the default template cannot be deleted", ErrInvalidTemplate)
	}

	err = s.Repo.Delete(ctx, id)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionTemplate, "workflow_templates", id, map[string]common_models.Change{
			"template": {Old: existing.Name, New: "DELETED"},
		})
	}
	return err
}

func (s *WorkflowServiceImpl) SetDefault(ctx context.Context, holdingID string, id string) error {
	err := s.Repo.SetDefault(ctx, holdingID, id)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionTemplate, "workflow_templates", id, map[string]common_models.Change{
			"is_default": {New: true},
		})
	}
	return err
}

func (s *WorkflowServiceImpl) SelectTemplate(ctx context.Context, holdingID string, explicitID string, rqVars map[string]interface{}) (*WorkflowTemplate, error) {
	if explicitID != "" {
		template, err := s.Repo.GetByID(ctx, explicitID)
		if err != nil {
			return nil, err
		}
		if template == nil || !template.Active {
			return nil, errors.New("requested workflow template not found or inactive")
		}
		if template.HoldingID != holdingID {
			return nil, errors.New("requested workflow template belongs to another holding")
		}
		return template, nil
	}

	candidates, err := s.Repo.ListActive(ctx, holdingID)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].MatchScript == "" {
			continue
		}
		ok, err := evalMatchScript(ctx, candidates[i].MatchScript, rqVars)
		if err != nil {
			// A broken script must not block submission; fall through
			// to the next candidate or the default.
			continue
		}
		if ok {
			return &candidates[i], nil
		}
	}

	template, err := s.Repo.GetDefault(ctx, holdingID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors.New("no default workflow template configured for holding")
	}
	return template, nil
}
