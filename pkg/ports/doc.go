/*
Package ports defines the driven ports (interfaces) for the refinement
pipeline.

These interfaces decouple the pipeline from concrete collaborators: the
synthesizer that proposes candidate graphs and the retriever that supplies
reference material for the synthesis instruction. Adapters live under
pkg/adapters; tests use in-package fakes.
*/
package ports
