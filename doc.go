// Package jsonschema implements a JSON Schema Draft-07 validator.
//
// A schema document is compiled once into a tree of validator closures,
// keyed by absolute URI so that self- and mutually-recursive $ref cycles
// resolve without infinite recursion at compile time. The resulting Schema
// is immutable and safe for concurrent use against disjoint instances.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for several of
// the format validators, and to the two-phase compile/evaluate design of
// https://github.com/SuadeLabs/jsonscreamer.
package jsonschema
