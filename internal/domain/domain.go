// Package domain holds the core types and contracts shared between layers:
// crawled pages, indexed points, search results, answer bundles, and the
// sentinel errors each pipeline phase reports.
package domain

// KeyPrefix namespaces every Redis key written by docvoice.
const KeyPrefix = "docvoice:"

// DefaultLanguage is stamped on crawled pages whose metadata carries no language.
const DefaultLanguage = "en"
