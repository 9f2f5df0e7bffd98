package model

// StockCommit is one journal row: the outcome of a single debounced stock write.
type StockCommit struct {
	BaseModel
	ProductID     string `gorm:"type:varchar(64);not null;index" json:"product_id"`
	Quantity      int    `gorm:"not null" json:"quantity"`
	Sequence      uint64 `gorm:"not null" json:"sequence"`
	Success       bool   `gorm:"not null" json:"success"`
	Error         string `gorm:"type:text" json:"error,omitempty"`
	CorrelationID string `gorm:"type:varchar(64);index" json:"correlation_id"`
	DurationMs    int64  `json:"duration_ms"`
}

func (StockCommit) TableName() string {
	return "stock_commits"
}
