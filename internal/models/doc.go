// Package models defines the domain values shared by the moviex search and watchlist components.
//
// The package contains two categories of types:
//
// 1. Domain values: immutable data handed between components
//   - [Movie] : one search result, identified by its IMDb id
//   - [WatchlistEntry] : a movie the user saved, with the time it was added
//   - [DetailRecord] : lazily fetched plot, cast, rating and genre of one movie
//   - [Theme] : the light or dark presentation preference
//
// 2. Wire records: the JSON shape OMDb uses, also used for the persisted watchlist snapshot
//   - [MovieRecord] : OMDb-shaped movie, "N/A" for an absent poster
//   - [WatchlistRecord] : a [MovieRecord] plus its addedAt timestamp
//
// The Storage interface is the key/value capability the watchlist and the theme preference are
// persisted through.
package models
