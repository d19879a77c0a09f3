// Package fmu implements the editing lifecycle for the modelDescription.xml
// member of an FMU archive: parse, query, mutate, and re-render.
//
// # Session model
//
// A Session owns two representations of the loaded document. The value model
// (internal/model) is the clean representation the public API operates on.
// The retained etree document is a private structural mirror kept only so the
// serializer can re-emit XML it does not otherwise understand (whitespace,
// attribute order, elements outside the modeled subset) with full fidelity.
// The two are reconciled in one direction only, value model to tree, at
// render time; queries and mutations never touch the tree.
//
// # Deferred removal
//
// Remove drops a variable from the value model immediately but only stages
// the matching tree node for deletion. The pending list is drained exactly
// once per render, so intermediate state stays consistent for further
// queries without redundant tree traversal.
//
// # Failure policy
//
//   - Structural defects in the source document abort parsing entirely; no
//     partially initialized session is ever returned.
//   - Model-exchange-only FMUs fail loudly with ErrUnsupportedSimulationType.
//   - Schema conformance findings (internal/schema) are advisory: logged,
//     never blocking.
//   - Mutations are all-or-nothing per call; a rejected call leaves the
//     session unchanged.
package fmu
