package models

import "time"

type Row map[string]interface{}

type AlertEvent struct {
	TickID      string      `json:"tick_id"`
	Database    string      `json:"database"`
	Measurement string      `json:"measurement"`
	Query       string      `json:"ql"`
	Text        string      `json:"text"`
	Row         Row         `json:"row,omitempty"`
	Value       interface{} `json:"value,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// Fields flattens the event the way alert consumers read it: the row's fields
// with the event's own attributes on top.
func (e *AlertEvent) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, len(e.Row)+6)
	for k, v := range e.Row {
		fields[k] = v
	}
	if e.Value != nil {
		fields["value"] = e.Value
	}
	fields["tick_id"] = e.TickID
	fields["database"] = e.Database
	fields["measurement"] = e.Measurement
	fields["ql"] = e.Query
	fields["text"] = e.Text
	return fields
}
