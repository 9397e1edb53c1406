// Package commands defines the storekeys CLI and wires its dependencies
// before the lookup run starts.
//
// Usage
//
//	storekeys <app-id>... -l <locale>... [flags]
//
// App identifiers are App Store IDs (id123456789 or 123456789), bundle IDs
// (com.example.app), or — with management-API credentials configured —
// connect resource UUIDs.
//
// # Modes
//
// When KEY_ID, ISSUER_ID, and a private key are present in the environment
// (or a .env file), lookups use the management API and report the
// platform's authoritative keyword field. Without credentials, lookups use
// the public catalog API and a keyword string is synthesized from public
// metadata.
//
// # Exit codes
//
//	0  every (app, locale) pair succeeded
//	1  one or more pairs failed (remaining pairs still ran)
//	2  invalid arguments or credentials, detected before any network call
package commands
