// Package ui implements interactive terminal interfaces using bubbletea's Elm architecture.
//
// Two models are provided:
//  1. [PairModel] : Device pairing flow. Requests a pairing code, displays it,
//     and polls the server until the user confirms the code on another device.
//  2. [BrowseModel] : Library browser over the local cache, toggling between
//     playlist and track lists.
//
// Both models implement bubbletea's standard Init/Update/View pattern.
// Keyboard navigation uses vim-style bindings (j/k, tab, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
