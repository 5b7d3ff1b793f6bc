// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [SearchView] : query input with a character counter, status line and result cards
//  2. [WatchlistView] : the saved movies as a filterable list
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
//
// Core components never touch the model directly. They report through a [Renderer], which turns
// every status, result list, control lock and watchlist change into a Msg delivered with
// [tea.Program.Send]. Searches, detail fetches and watchlist writes run as commands, so the
// update loop never blocks on the network or the database.
//
// Each result card owns a [tasks.DetailToggle]; the toggles are discarded when a new result list
// arrives.
//
// Light and dark palettes are switched with ctrl+t and the choice is persisted.
package ui
