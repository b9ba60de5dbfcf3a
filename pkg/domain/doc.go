/*
Package domain contains the core data model for workflow graphs.

It defines the fundamental entities of an automation workflow: Nodes,
Credentials, and the ConnectionMap that wires node outputs to node inputs.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Workflow: A named, directed graph of nodes plus its connection map.
  - Node: A single step in the graph (trigger, service call, branch, note).
  - Credential: A named reference to an externally managed secret.
  - ConnectionMap: Directed edges keyed by source node name and output port.
*/
package domain
