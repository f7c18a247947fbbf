package sync

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/features/audit"
	"go-hiring/internal/features/requisition"

	_ "github.com/lib/pq"
)

type SyncService interface {
	CreateSetting(ctx context.Context, setting *SyncSetting) error
	GetSetting(ctx context.Context, id string) (*SyncSetting, error)
	ListSettings(ctx context.Context) ([]SyncSetting, error)
	UpdateSetting(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteSetting(ctx context.Context, id string) error
	RunSync(ctx context.Context, id string) error
	ListLogs(ctx context.Context, settingID string, limit int64) ([]SyncLog, error)
}

type SyncServiceImpl struct {
	SyncRepo     SyncSettingRepository
	LogRepo      SyncLogRepository
	RQRepo       requisition.RequisitionRepository
	AuditService audit.AuditService
}

func NewSyncService(syncRepo SyncSettingRepository, logRepo SyncLogRepository, rqRepo requisition.RequisitionRepository, auditService audit.AuditService) SyncService {
	return &SyncServiceImpl{
		SyncRepo:     syncRepo,
		LogRepo:      logRepo,
		RQRepo:       rqRepo,
		AuditService: auditService,
	}
}

func (s *SyncServiceImpl) CreateSetting(ctx context.Context, setting *SyncSetting) error {
	if setting.TargetTable == "" {
		setting.TargetTable = "requisition_decisions"
	}
	err := s.SyncRepo.Create(ctx, setting)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionSync, "sync_settings", setting.Name, map[string]common_models.Change{
			"sync_setting": {New: setting},
		})
	}
	return err
}

func (s *SyncServiceImpl) GetSetting(ctx context.Context, id string) (*SyncSetting, error) {
	return s.SyncRepo.Get(ctx, id)
}

func (s *SyncServiceImpl) ListSettings(ctx context.Context) ([]SyncSetting, error) {
	return s.SyncRepo.List(ctx)
}

func (s *SyncServiceImpl) UpdateSetting(ctx context.Context, id string, updates map[string]interface{}) error {
	oldSetting, _ := s.GetSetting(ctx, id)

	err := s.SyncRepo.Update(ctx, id, updates)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionSync, "sync_settings", id, map[string]common_models.Change{
			"sync_setting": {Old: oldSetting, New: updates},
		})
	}
	return err
}

func (s *SyncServiceImpl) DeleteSetting(ctx context.Context, id string) error {
	oldSetting, _ := s.GetSetting(ctx, id)

	err := s.SyncRepo.Delete(ctx, id)
	if err == nil {
		name := id
		if oldSetting != nil {
			name = oldSetting.Name
		}
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionSync, "sync_settings", name, map[string]common_models.Change{
			"sync_setting": {Old: oldSetting, New: "DELETED"},
		})
	}
	return err
}

func (s *SyncServiceImpl) ListLogs(ctx context.Context, settingID string, limit int64) ([]SyncLog, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.LogRepo.List(ctx, settingID, limit)
}

func (s *SyncServiceImpl) RunSync(ctx context.Context, id string) error {
	setting, err := s.SyncRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.executeSync(setting)
}

func (s *SyncServiceImpl) executeSync(setting *SyncSetting) error {
	ctx := context.Background()

	log := &SyncLog{
		SyncSettingID: setting.ID,
		StartTime:     time.Now(),
		Status:        "in_progress",
	}
	_ = s.LogRepo.Create(ctx, log)

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionSync, "sync_settings", setting.Name, map[string]common_models.Change{
		"status": {New: "started"},
	})

	var totalProcessed int
	var syncError error

	defer func() {
		log.EndTime = time.Now()
		if syncError != nil {
			log.Status = "failed"
			log.Error = syncError.Error()
		} else {
			log.Status = "success"
		}
		log.ProcessedCount = totalProcessed

		_ = s.SyncRepo.Update(ctx, setting.ID.Hex(), map[string]interface{}{
			"last_sync_at": time.Now(),
		})
		_ = s.LogRepo.Update(ctx, log)

		auditStatus := "success"
		if syncError != nil {
			auditStatus = "failed"
		}
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionSync, "sync_settings", setting.Name, map[string]common_models.Change{
			"status":    {New: auditStatus},
			"processed": {New: totalProcessed},
			"error":     {New: log.Error},
		})
	}()

	rqs, err := s.RQRepo.ListDecidedSince(ctx, setting.LastSyncAt)
	if err != nil {
		syncError = fmt.Errorf("failed to fetch decided requisitions: %w", err)
		return syncError
	}

	totalProcessed, syncError = s.pushToPostgres(rqs, setting)
	return syncError
}

// pushToPostgres upserts one warehouse row per recorded decision, keyed
// by requisition id and step so reruns are idempotent.
func (s *SyncServiceImpl) pushToPostgres(rqs []requisition.Requisition, setting *SyncSetting) (int, error) {
	dbConfig := setting.TargetDBConfig
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbConfig["host"], dbConfig["port"], dbConfig["user"], dbConfig["password"], dbConfig["database"])

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return 0, fmt.Errorf("failed to ping postgres: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s
		(requisition_id, holding_id, title, workflow_name, step, step_name, approver_email, approver_name, action, reason, decided_at, final_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (requisition_id, step) DO UPDATE SET
		action = EXCLUDED.action, reason = EXCLUDED.reason, decided_at = EXCLUDED.decided_at, final_status = EXCLUDED.final_status`,
		setting.TargetTable)

	count := 0
	for _, rq := range rqs {
		if rq.Approval == nil {
			continue
		}
		for _, decision := range rq.Approval.Aprobaciones {
			_, err := db.Exec(query,
				rq.ID.Hex(),
				rq.HoldingID,
				rq.Title,
				rq.Approval.WorkflowName,
				decision.Step,
				decision.StepName,
				decision.ApproverEmail,
				decision.ApproverName,
				string(decision.Action),
				decision.Reason,
				decision.Timestamp,
				string(rq.Approval.Status),
			)
			if err != nil {
				continue
			}
			count++
		}
	}
	return count, nil
}
