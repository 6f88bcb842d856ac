/*
Package ports defines the driven ports (interfaces) of the tourguide engine.

These interfaces decouple the navigation state machine from the outside world, so the
same tour can be presented in a terminal, over HTTP, or to an MCP client.

# Key Interfaces

  - Renderer: mounts and unmounts step views.
  - Confirmer: the yes/no prompt consulted before cancelling a tour.
  - Marker: mirrors the active tour id for external styling or automation.
  - Registry: the single active-tour slot.
  - DistributedLocker: cross-replica locking for session managers.
*/
package ports
