// Package services defines the [MetadataClient] interface for movie metadata providers and implements it for OMDb.
//
// # OMDb Implementation
//
// [OMDbClient] issues one GET per call against the OMDb API, authenticating with the apikey query
// parameter. Search uses ?s=<title>, detail lookups use ?i=<imdbID>&plot=<short|full>.
//
// Every OMDb response carries a Response flag ("True"/"False") and, on failure, an Error message.
// The client decodes the body regardless of HTTP status and classifies failures into a
// [*SearchError]:
//   - [KindInvalidKey] : the message mentions an invalid API key
//   - [KindNotFound] : the message mentions "movie not found"
//   - [KindOther] : anything else, message kept verbatim
//   - [KindNetwork] : transport failure, unreadable body or undecodable JSON
//
// # Error Handling
//
// Each kind unwraps to a sentinel from the shared package:
//   - [shared.ErrInvalidAPIKey]
//   - [shared.ErrNotFound]
//   - [shared.ErrAPIRequest]
//   - [shared.ErrNetwork]
//
// Detail failures of any kind wrap [shared.ErrDetailUnavailable].
//
// No request is retried.
package services
