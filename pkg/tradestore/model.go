package tradestore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/exchange-dev/pkg/exchange"
)

// Trade is the persisted form of an executed match. Price and quantity are
// stored as exact decimals; Notional is precomputed for reporting queries.
type Trade struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	TradeID    string          `gorm:"uniqueIndex;size:36"`
	Symbol     string          `gorm:"index:idx_trades_symbol_executed_at;size:16"`
	Price      decimal.Decimal `gorm:"type:numeric(18,4)"`
	Quantity   decimal.Decimal `gorm:"type:numeric(18,0)"`
	Notional   decimal.Decimal `gorm:"type:numeric(24,4)"`
	ExecutedAt time.Time       `gorm:"index:idx_trades_symbol_executed_at"`
	CreatedAt  time.Time
}

func (Trade) TableName() string {
	return "trades"
}

// FromMatch converts a core trade into its persisted form.
func FromMatch(t exchange.Trade) *Trade {
	price := decimal.NewFromFloat(t.Price)
	qty := decimal.NewFromInt(t.Qty)
	return &Trade{
		TradeID:    t.ID,
		Symbol:     t.Symbol,
		Price:      price,
		Quantity:   qty,
		Notional:   price.Mul(qty),
		ExecutedAt: t.Time,
	}
}
