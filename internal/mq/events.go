package mq

import "time"

const (
	ChannelWorkerRegistered    = "workers.registered"
	ChannelWorkerStatusChanged = "workers.status_changed"
)

// WorkerEvent is the payload published on the worker lifecycle channels.
type WorkerEvent struct {
	WorkerID   string    `json:"workerId"`
	UID        string    `json:"uid"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Status     string    `json:"status"`
	Verified   bool      `json:"verified"`
	OccurredAt time.Time `json:"occurredAt"`
}
