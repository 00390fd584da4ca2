package models

import "time"

// GatewayEvent records every PayMongo webhook event we have processed, keyed
// by the gateway's event id. A redelivered event hits the primary key and is
// acknowledged without re-running its side effects.
type GatewayEvent struct {
	EventID    string    `gorm:"primaryKey;size:128" json:"event_id"`
	EventType  string    `gorm:"size:64;index" json:"event_type"`
	OrderRef   string    `gorm:"size:64;index" json:"order_ref"`
	ReceivedAt time.Time `json:"received_at"`
}
