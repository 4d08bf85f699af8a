// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DatasetFetcher: Reads category and group datasets (HTTP or file)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DatasetWatcher: Reload on change. Without it, the dataset is read once.
//   - LinkOpener: Opens service links. Without it, links can only be copied.
//   - Clipboard: Copies service links. Without it, copying is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
