// Package queue defines message payloads exchanged over the message broker.
package queue

// ConfigChangedEvent is published after a configuration write commits.
// It contains enough information for downstream consumers to build an
// audit trail or trigger re-rendering without querying the primary
// database. Action is one of "create", "update" or "delete"; for
// deletes only the id and actor are meaningful.
type ConfigChangedEvent struct {
	ConfigurationID uint64 `json:"configuration_id"`
	Action          string `json:"action"`
	ActorUserID     uint64 `json:"actor_user_id"`
	Name            string `json:"name,omitempty"`
	EntityType      string `json:"entity_type,omitempty"`
	ButtonCount     int    `json:"button_count"`
	OccurredAt      string `json:"occurred_at"`
}
