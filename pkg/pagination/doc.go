// Package pagination provides parallel window fetching for large
// collections.
//
// The façade fetches one _limit/_start window per call; BatchFetcher sits on
// top of it, derives the window count from the collection count endpoint,
// and fetches the remaining windows with a bounded worker pool while
// preserving collection order in the assembled result.
package pagination
