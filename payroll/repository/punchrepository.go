package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"timekeeper.com/timekeeper/core"
	payroll "timekeeper.com/timekeeper/payroll/core"
	"timekeeper.com/timekeeper/payroll/model"
	"timekeeper.com/timekeeper/utils"

	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 20
	insertBatchSize     = 100
)

var ErrHistoryNotFound = errors.New("upload history not found")

// PunchRepository stores punch batches and reads them back per employee.
type PunchRepository interface {
	payroll.BatchStore

	ListHistory(ctx context.Context, limit int) ([]model.UploadHistory, error)
	// DeleteHistory removes one batch and every punch it committed.
	DeleteHistory(ctx context.Context, id int64) (*DeleteResult, error)
	// FindPunchesByEmployee returns punches ordered by date and time.
	FindPunchesByEmployee(ctx context.Context, employeeID string) ([]payroll.PunchEvent, error)
	// FindEmployee returns nil without error when the id has no profile.
	FindEmployee(ctx context.Context, employeeID string) (*model.Employee, error)
	ClearAll(ctx context.Context, removeEmployees bool) (*ClearResult, error)
}

type DeleteResult struct {
	History        model.UploadHistory `json:"history"`
	DeletedPunches int64               `json:"deletedPunches"`
}

type ClearResult struct {
	Punches   int64
	Histories int64
	Employees int64
}

type punchRepository struct {
	dm *core.DatabaseManager
}

func NewPunchRepository(dm *core.DatabaseManager) PunchRepository {
	return &punchRepository{dm: dm}
}

// Models lists the tables owned by the payroll module, parents first.
func Models() []interface{} {
	return []interface{}{
		&model.Employee{},
		&model.UploadHistory{},
		&model.PunchRecord{},
	}
}

// Migrate creates missing tables.
func Migrate(db *gorm.DB) error {
	for _, m := range Models() {
		if db.Migrator().HasTable(m) {
			continue
		}
		if err := db.Migrator().CreateTable(m); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", m, err)
		}
	}
	return nil
}

func (r *punchRepository) CommitBatch(ctx context.Context, history *model.UploadHistory, punches []payroll.PunchEvent) error {
	return r.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Punches").Create(history).Error; err != nil {
				return fmt.Errorf("failed to create upload history: %w", err)
			}

			records := ToPunchRecords(history.ID, punches)
			if len(records) == 0 {
				return nil
			}
			if err := tx.CreateInBatches(records, insertBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert punches: %w", err)
			}
			return nil
		})
	})
}

func (r *punchRepository) RecordFailedBatch(ctx context.Context, history *model.UploadHistory) error {
	return r.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Omit("Punches").Create(history).Error
	})
}

func (r *punchRepository) ListHistory(ctx context.Context, limit int) ([]model.UploadHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var histories []model.UploadHistory
	err := r.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Order("upload_time DESC, id DESC").Limit(limit).Find(&histories).Error
	})
	if err != nil {
		return nil, err
	}
	return histories, nil
}

func (r *punchRepository) DeleteHistory(ctx context.Context, id int64) (*DeleteResult, error) {
	result := &DeleteResult{}
	err := r.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&result.History, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrHistoryNotFound
				}
				return err
			}

			// explicit so the batch goes even where the FK was created without cascade
			deleted := tx.Where("upload_history_id = ?", id).Delete(&model.PunchRecord{})
			if deleted.Error != nil {
				return fmt.Errorf("failed to delete punches: %w", deleted.Error)
			}
			result.DeletedPunches = deleted.RowsAffected

			return tx.Delete(&model.UploadHistory{}, id).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *punchRepository) FindPunchesByEmployee(ctx context.Context, employeeID string) ([]payroll.PunchEvent, error) {
	var records []model.PunchRecord
	err := r.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("employee_id = ?", employeeID).
			Order("log_date ASC, log_time ASC, id ASC").
			Find(&records).Error
	})
	if err != nil {
		return nil, err
	}
	return utils.Map(records, ToPunchEvent), nil
}

func (r *punchRepository) FindEmployee(ctx context.Context, employeeID string) (*model.Employee, error) {
	key, ok := payroll.ProfileKey(employeeID)
	if !ok {
		return nil, nil
	}

	var employee model.Employee
	err := r.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("employee_id = ?", key).Take(&employee).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *punchRepository) ClearAll(ctx context.Context, removeEmployees bool) (*ClearResult, error) {
	result := &ClearResult{}
	err := r.dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

			res := all.Delete(&model.PunchRecord{})
			if res.Error != nil {
				return fmt.Errorf("failed to delete punches: %w", res.Error)
			}
			result.Punches = res.RowsAffected

			res = all.Delete(&model.UploadHistory{})
			if res.Error != nil {
				return fmt.Errorf("failed to delete upload history: %w", res.Error)
			}
			result.Histories = res.RowsAffected

			if removeEmployees {
				res = all.Delete(&model.Employee{})
				if res.Error != nil {
					return fmt.Errorf("failed to delete employees: %w", res.Error)
				}
				result.Employees = res.RowsAffected
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func ToPunchRecords(historyID int64, punches []payroll.PunchEvent) []model.PunchRecord {
	return utils.Map(punches, func(p payroll.PunchEvent) model.PunchRecord {
		return model.PunchRecord{
			EmployeeID:      p.EmployeeID,
			EmployeeName:    p.EmployeeName,
			LogCode:         p.RawCode,
			LogDate:         p.Date,
			LogTime:         p.Time,
			UploadHistoryID: historyID,
		}
	})
}

func ToPunchEvent(r model.PunchRecord) payroll.PunchEvent {
	y, m, d := r.LogDate.Date()
	return payroll.PunchEvent{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Code:         payroll.ParsePunchCode(r.LogCode),
		RawCode:      r.LogCode,
		Date:         time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Time:         r.LogTime,
	}
}
