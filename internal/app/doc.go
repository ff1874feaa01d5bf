// Package app wires together a scheduler.TaskQueue, its configured
// rewriters, the optional live monitor, and the healthcheck HTTP server
// into the host process's lifecycle, decoupled from any specific
// entrypoint like cmd/flowsched.
package app
