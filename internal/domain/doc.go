// Package domain holds the core types shared across storekeys: classified
// app identifiers, locales and storefront countries, normalized metadata
// records, the provider capability interfaces, and the error taxonomy.
//
// Everything here is transient per CLI invocation; nothing is persisted and
// no shared mutable state crosses app or locale boundaries.
package domain
