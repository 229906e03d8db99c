package tradestore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IRepo interface {
	Trade() ITrade
}

type ITrade interface {
	Create(ctx context.Context, record *Trade) (*Trade, error)
	BulkCreate(ctx context.Context, records []*Trade) ([]*Trade, error)
	ListBySymbol(ctx context.Context, symbol string, limit int) ([]*Trade, error)
}

type Repo struct {
	tradeDB *gorm.DB
}

func NewRepo(tradeDB *gorm.DB) IRepo {
	return &Repo{
		tradeDB: tradeDB,
	}
}

func (r *Repo) Trade() ITrade {
	return NewTradeSQLRepo(r.tradeDB)
}

type TradeSQLRepo struct {
	db *gorm.DB
}

func NewTradeSQLRepo(db *gorm.DB) *TradeSQLRepo {
	return &TradeSQLRepo{
		db: db,
	}
}

func (s *TradeSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Create is idempotent on trade_id so the worker can replay unacked
// messages safely.
func (s *TradeSQLRepo) Create(ctx context.Context, record *Trade) (*Trade, error) {
	return record, s.dbWithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "trade_id"}}, DoNothing: true}).
		Create(record).Error
}

func (s *TradeSQLRepo) BulkCreate(ctx context.Context, records []*Trade) ([]*Trade, error) {
	return records, s.dbWithContext(ctx).Create(records).Error
}

func (s *TradeSQLRepo) ListBySymbol(ctx context.Context, symbol string, limit int) ([]*Trade, error) {
	var out []*Trade
	err := s.dbWithContext(ctx).
		Where("symbol = ?", symbol).
		Order("executed_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
