/*
Package session serializes access to named tours shared by concurrent callers.

Tours are single-threaded state machines. Adapters that serve many clients at
once (HTTP, MCP) register their tours in a Manager and go through WithTour, which
holds a per-tour mutex (and, when configured, a distributed lock) for the whole
operation. Locks are reference counted and dropped once no caller holds them.
*/
package session
