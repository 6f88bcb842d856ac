/*
Package domain contains the core types of the tourguide engine.

It defines the vocabulary shared by the state machine and its adapters: tour and step
events, step and tour options, the snapshot handed to renderers, and sentinel errors.
This package is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - StepOptions: configuration of one step, including its ShowOn eligibility predicate.
  - TourOptions: configuration of a tour (default step options, cancel confirmation).
  - StepView: what a renderer receives when a step mounts.
  - TourEvent / StepEvent: the closed event vocabularies.
*/
package domain
