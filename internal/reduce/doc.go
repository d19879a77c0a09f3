// Package reduce implements batch reduction of FMU model descriptions.
//
// A parameter_reduction_config.json file in the processed directory names two
// glob-pattern lists, delete_elements and keep_elements. Every variable with
// parameter causality is first marked for deletion by a matching delete
// pattern, then unmarked by a matching keep pattern; keep patterns are
// evaluated last, so keep always wins on conflict. Ordering inside each list
// carries no meaning.
//
// The directory driver treats every .fmu file as an independent unit of work
// with no shared mutable state.
package reduce
