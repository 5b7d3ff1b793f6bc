// Package repositories implements SQLite persistence for the moviex key/value state.
//
// The application persists exactly two values: the watchlist snapshot and the theme preference.
// Both are stored as opaque strings in the kv table created by the embedded migrations in the
// shared package.
//
// Key Implementations:
//   - [KVRepository] : string values addressed by key, with upsert semantics
//
// [KVRepository] satisfies [models.Storage], which is the only persistence capability the
// watchlist store and the preference helpers depend on.
package repositories
