// Package schema performs advisory conformance checks against the FMI 2.0
// model-description schema shape.
//
// There is no maintained pure-Go XSD validation engine, and validation is a
// side diagnostic by contract anyway: findings are reported for logging and
// never block a structurally valid parse. The checks cover what the
// fmi2ModelDescription.xsd would catch for the modeled subset: the version
// string, GUID shape, required identifiers, naming convention values, name
// uniqueness, and per-variable start-value expectations.
package schema
