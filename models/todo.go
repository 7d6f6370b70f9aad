package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Tags is the ordered tag list of a todo, stored as a JSON array in relational stores.
type Tags []string

// Value implements the driver.Valuer interface for JSON text storage
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	bytes, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

// Scan implements the sql.Scanner interface for JSON text retrieval
func (t *Tags) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte or string failed")
	}
	return json.Unmarshal(bytes, (*[]string)(t))
}

// Contains reports whether tag is one of the todo's tags.
func (t Tags) Contains(tag string) bool {
	for _, candidate := range t {
		if candidate == tag {
			return true
		}
	}
	return false
}

type Todo struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `gorm:"not null" json:"completed"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime:false" json:"updatedAt"`
	DueDate     *time.Time `gorm:"index" json:"dueDate"`
	Priority    Priority   `gorm:"size:16;index" json:"priority"`
	Tags        Tags       `gorm:"type:text" json:"tags"`
	Category    string     `gorm:"index" json:"category"`
	Reminder    bool       `gorm:"not null" json:"reminder"`
	Notes       string     `json:"notes"`
}

func (Todo) TableName() string {
	return "todos"
}

// CopyMutableFields overwrites every caller-editable field of dst with the value in src:
// title, description, completed, dueDate, priority, tags, category, reminder, notes.
// Identity and timestamps are left untouched. Fields missing from src overwrite dst with
// their zero value; there is no partial update.
func CopyMutableFields(dst *Todo, src Todo) {
	dst.Title = src.Title
	dst.Description = src.Description
	dst.Completed = src.Completed
	dst.DueDate = src.DueDate
	dst.Priority = src.Priority
	dst.Tags = src.Tags
	dst.Category = src.Category
	dst.Reminder = src.Reminder
	dst.Notes = src.Notes
}

func (t *Todo) FromJSON(data []byte) error {
	return json.Unmarshal(data, t)
}

func (t *Todo) ToJSON() ([]byte, error) {
	return json.Marshal(t)
}
