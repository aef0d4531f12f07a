// Package app contains the core application logic. It defines the App
// struct, its configuration, and the check lifecycle that runs every
// registered checker against a project, decoupled from any specific
// entrypoint like a CLI.
package app
