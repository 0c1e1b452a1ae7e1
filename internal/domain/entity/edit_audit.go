package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EditAudit records one successful booking save: who changed what, with
// the record before and after the merge.
type EditAudit struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OperatorID *uuid.UUID `gorm:"type:uuid;index" json:"operator_id,omitempty"`
	GuestName  string     `gorm:"type:varchar(255);not null;index" json:"guest_name"`
	HotelName  string     `gorm:"type:varchar(255);not null;index" json:"hotel_name"`
	CheckIn    string     `gorm:"type:varchar(32);not null" json:"check_in"`
	Metadata   JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	Operator *Operator `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
}

func (EditAudit) TableName() string {
	return "edit_audits"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}
