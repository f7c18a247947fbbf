package requisition

import (
	"context"
	"errors"
	"fmt"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/features/audit"
	"go-hiring/internal/features/org"
)

type RequisitionService interface {
	CreateRequisition(ctx context.Context, rq *Requisition) error
	GetRequisition(ctx context.Context, id string) (*Requisition, error)
	ListRequisitions(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Requisition, error)
}

type RequisitionServiceImpl struct {
	Repo         RequisitionRepository
	OrgRepo      org.OrgRepository
	AuditService audit.AuditService
}

func NewRequisitionService(repo RequisitionRepository, orgRepo org.OrgRepository, auditService audit.AuditService) RequisitionService {
	return &RequisitionServiceImpl{
		Repo:         repo,
		OrgRepo:      orgRepo,
		AuditService: auditService,
	}
}

// CreateRequisition walks puesto -> area -> gerencia once and freezes the
// coordinates on the document. The approval facet stays nil until the RQ
// is submitted.
func (s *RequisitionServiceImpl) CreateRequisition(ctx context.Context, rq *Requisition) error {
	if rq.Title == "" {
		return errors.New("title is required")
	}
	if rq.Positions <= 0 {
		rq.Positions = 1
	}
	if rq.PuestoID == "" {
		return errors.New("puesto_id is required")
	}

	puesto, err := s.OrgRepo.FindPuesto(ctx, rq.PuestoID)
	if err != nil {
		return err
	}
	if puesto == nil {
		return fmt.Errorf("puesto %s not found", rq.PuestoID)
	}

	area, err := s.OrgRepo.FindArea(ctx, puesto.AreaID)
	if err != nil {
		return err
	}
	if area == nil {
		return fmt.Errorf("area %s not found", puesto.AreaID)
	}

	gerencia, err := s.OrgRepo.FindGerencia(ctx, area.GerenciaID)
	if err != nil {
		return err
	}
	if gerencia == nil {
		return fmt.Errorf("gerencia %s not found", area.GerenciaID)
	}

	rq.AreaID = area.ID.Hex()
	rq.GerenciaID = gerencia.ID.Hex()
	rq.HoldingID = gerencia.HoldingID
	rq.Approval = nil

	if err := s.Repo.Create(ctx, rq); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "requisitions", rq.ID.Hex(), map[string]common_models.Change{
		"title":     {New: rq.Title},
		"puesto_id": {New: rq.PuestoID},
	})

	return nil
}

func (s *RequisitionServiceImpl) GetRequisition(ctx context.Context, id string) (*Requisition, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *RequisitionServiceImpl) ListRequisitions(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Requisition, error) {
	return s.Repo.List(ctx, filter, limit, offset)
}
