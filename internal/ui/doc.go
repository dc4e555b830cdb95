// Package ui contains the Bubble Tea program that renders the deployment
// checklist. Model focuses on message orchestration while dedicated helpers
// own input, navigation, layout, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Every message is
//     first offered to the prompt cursor and then routed through a typed
//     handler registry so each tea.Msg is handled by a focused function.
//   - Text input (internal/ui/input.go) edits the query. Every change
//     re-filters the tree and calls rebuild (internal/ui/document.go).
//   - Scrolling and section jumps (internal/ui/navigation.go) move the
//     viewport and report the new position to the visibility observer.
//
// State ownership:
//   - The filtered tree, the laid out document, the query, and the active
//     section all live on Model. Nothing is held in package globals.
//   - rebuild tears down the previous tracker and visibility subscription
//     before registering the new document's section anchors, so a batch from
//     an old subscription can never move the highlight.
//
// Asynchronous work:
//   - A tea.Cmd blocks on Subscription.Next and returns visibilityMsg values;
//     the handler applies them to the tracker and re-arms the wait.
//   - A backend.Watcher streams reloaded content; applying an event re-runs
//     rebuild with the current query while keeping the scroll position.
//   - Clipboard copies run through the internal/ui/command bus.
package ui
