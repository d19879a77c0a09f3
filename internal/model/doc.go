// Package model defines the in-memory representation of an FMI 2.0 model
// description: the ScalarVariable collection, the DefaultExperiment section,
// the co-simulation capability flags, and the enumerations used by variable
// attributes.
//
// # Scope
//
// Only ScalarVariable-level metadata plus the top-level description
// attributes are modeled. The package is a pure data contract: parsing lives
// in internal/fmu, conformance checks in internal/schema.
//
// # Enum canonical form
//
// Enum members (Causality, Variability, Initial, DataType) are the canonical
// form everywhere in the public API. The XML tag and attribute spellings are a
// serialization detail confined to the parser and the serializer; DataType
// additionally knows its canonical value-element tag (Real, Integer, Boolean,
// String, Enumeration) for that purpose.
package model
