package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusDraft        = "draft"
	StatusConfirmed    = "confirmed"
	StatusInProduction = "in_production"
	StatusCompleted    = "completed"
	StatusCancelled    = "cancelled"
)

type Order struct {
	ID              int             `json:"id"`
	BitrixDealID    DealID          `json:"bitrix_deal_id"`
	CustomerName    string          `json:"customer_name"`
	City            string          `json:"city"`
	RALColor        string          `json:"ral_color"`
	DiscountPercent float64         `json:"discount_percent"`
	WithGlass       bool            `json:"with_glass"`
	WithAssembly    bool            `json:"with_assembly"`
	WithInstall     bool            `json:"with_install"`
	Status          string          `json:"status"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Notes           string          `json:"notes"`
	SystemsCount    int             `json:"systems_count"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`

	Systems []System `json:"systems"`
}

// System - одна позиция заказа (окно/дверь).
type System struct {
	Position       int             `json:"position"`
	SystemType     string          `json:"system_type"`
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	Panels         decimal.Decimal `json:"panels"`
	Opening        string          `json:"opening"`
	LeftEdge       string          `json:"left_edge"`
	RightEdge      string          `json:"right_edge"`
	HandleType     string          `json:"handle_type"`
	HandleCount    int             `json:"handle_count"`
	GlassThickness int             `json:"glass_thickness"`
	Price          decimal.Decimal `json:"price"`
}

// SystemRequest - тело POST /api/orders/{id}/systems.
type SystemRequest struct {
	SystemType string  `json:"system_type" validate:"required"`
	Width      int     `json:"width" validate:"gt=0"`
	Height     int     `json:"height" validate:"gt=0"`
	Panels     float64 `json:"panels" validate:"gt=0"`
	Opening    string  `json:"opening"`
}

type SyncResult struct {
	BitrixDealID  DealID   `json:"bitrix_deal_id"`
	Action        string   `json:"action"`
	FilesUploaded []string `json:"files_uploaded"`
}

// DealID - идентификатор сделки в Битрикс24. Бэкенд отдаёт его то числом,
// то строкой, поэтому храним как строку.
type DealID string

// Present сообщает, привязан ли заказ к сделке. Пустой id и 0 означают "нет".
func (d DealID) Present() bool {
	return d != "" && d != "0"
}

func (d *DealID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DealID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("bitrix_deal_id: %w", err)
	}
	*d = DealID(n.String())

	return nil
}

const (
	ActionAddSystem  = "add_system"
	ActionBitrixSync = "bitrix_sync"
)

// JournalEntry - запись журнала действий по заказу.
type JournalEntry struct {
	ID        int64     `json:"id"`
	OrderID   int       `json:"order_id"`
	Action    string    `json:"action"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
