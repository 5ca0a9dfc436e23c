// Package tui implements the dashboard's screen layer on top of the
// workflow form machine.
//
// Screens are the navigation unit: the App model owns a stack of them,
// routes every event to the top screen, and applies the Feedback the
// screen returns (push, pop, redirect, an optional dispatched task, an
// optional asynchronous command). Screens that embed forms translate
// form statuses into feedback at exactly one point each; the form layer
// itself knows nothing about navigation.
//
// The command palette is chrome, not workflow: it captures the key
// bindings the active screen advertises, fuzzy-matches over their
// labels, and re-emits the chosen binding's key as an ordinary event.
package tui
