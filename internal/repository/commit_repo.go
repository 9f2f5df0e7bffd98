package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"go-storefront-admin/internal/model"
)

const DefaultHistoryLimit = 50

// StockCommitRepository is the stock-commit journal. It satisfies stock.Journal.
type StockCommitRepository interface {
	Record(ctx context.Context, c *model.StockCommit) error
	FindByProduct(ctx context.Context, productID string, limit int) ([]model.StockCommit, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Migrate() error
}

type stockCommitRepo struct {
	db *gorm.DB
}

func NewStockCommitRepo(db *gorm.DB) StockCommitRepository {
	return &stockCommitRepo{db}
}

func (r *stockCommitRepo) Migrate() error {
	return errors.Wrap(r.db.AutoMigrate(&model.StockCommit{}), "error while migrating stock_commits")
}

func (r *stockCommitRepo) Record(ctx context.Context, c *model.StockCommit) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return errors.Wrap(err, "error while recording stock commit")
	}
	return nil
}

// FindByProduct returns the newest entries first.
func (r *stockCommitRepo) FindByProduct(ctx context.Context, productID string, limit int) ([]model.StockCommit, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var commits []model.StockCommit
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&commits).Error
	if err != nil {
		return nil, errors.Wrap(err, "error while listing stock commits")
	}
	return commits, nil
}

func (r *stockCommitRepo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.StockCommit{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "error while pruning stock commits")
	}
	return res.RowsAffected, nil
}
