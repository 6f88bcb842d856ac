// Package redis shares tour state between processes through Redis.
//
// Registry extends the one-active-tour rule across every process pointing at the
// same key prefix. Marker publishes the active tour id for external observers,
// and Locker serializes navigation on a tour across server replicas.
package redis
