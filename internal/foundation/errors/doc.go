// Package errors provides the classified error primitives used across apidocs.
//
// A ClassifiedError carries a category (what kind of failure), a severity
// (how far it propagates) and a small key/value context. Errors are built with
// a fluent builder and presented by the CLI and HTTP adapters, which map
// categories to exit codes and status codes respectively.
//
// Example usage:
//
//	err := errors.MetadataError("metadata document failed schema validation").
//		WithContext("file", path).
//		WithCause(schemaErr).
//		Build()
//
// Unresolved cross-references and missing metadata for a page are not errors
// and never pass through this package.
package errors
