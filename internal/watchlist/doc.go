// Package watchlist implements the user-curated, ordered collection of saved movies.
//
// A [Store] owns its entries; there is no package-level state. Every effective mutation writes a
// full snapshot through the injected [models.Storage] and then notifies the [Renderer] with the
// whole ordered list. Idempotent calls (adding a saved movie, removing an unsaved one) change
// nothing, write nothing and render nothing.
//
// # Snapshot Format
//
// The snapshot is a JSON array of OMDb-shaped movie records with an extra addedAt field:
//
//	[{"Title":"The Shawshank Redemption","Year":"1994","imdbID":"tt0111161","Type":"movie","Poster":"N/A","addedAt":"2024-03-01T12:00:00Z"}]
//
// A missing, unreadable or malformed snapshot loads as an empty watchlist.
package watchlist
