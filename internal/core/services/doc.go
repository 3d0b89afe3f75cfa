// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The question answering pipeline is:
//
//	URL -> video ID -> transcript -> chunks -> index -> retrieve -> prompt -> answer
//
// Services are pure Go with no CGO or external dependencies.
package services
