// Package services implements the driving port interfaces.
// Services contain the catalog logic (loading, grouping, rendering and the
// view state machine) and orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO and no UI toolkit dependencies.
package services
