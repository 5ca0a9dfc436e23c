// Package workflow implements the form state machine behind the opsdeck
// dashboard: single-field inputs composed into multi-step forms whose
// completion produces a backend task.
//
// # Protocol
//
// One key event flows Input -> Form -> embedding screen, producing
// exactly one status at each level:
//
//   - An Input answers Pending (still editing), Done (validated value
//     ready), Redirect (back out of the field), or Exit (abandon the
//     form).
//   - A Form maps that into FormPending, FormDone (task built, with a
//     block hint), FormRedirect (navigate away), or FormExit.
//
// Text inputs validate only at submit time through a ParseFunc; a
// rejected buffer is preserved unchanged with an in-place message.
// Selection inputs yield the element under the cursor and never involve
// a parser.
//
// # Forms
//
// Form drives a fixed-shape Controller: values accumulate by step index,
// the cursor advances by one per accepted step, and esc walks back one
// step (or exits at step 0). DelegatingForm covers branching workflows
// whose step count depends on the first choice: the selector step picks
// a Controller, and all translation between the inner form's statuses
// and the composite's happens at that single boundary.
//
// # Completion
//
// Free-text steps may carry a CompletionEngine. Engines are pure
// suggestion sources: querying never mutates history, and accepted
// values are recorded only when the input completes. HistoryEngine is
// the session-history backend, shared process-wide and passed explicitly
// into each input that opts in.
package workflow
