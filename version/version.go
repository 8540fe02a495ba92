// Package version is the build version of the snake.
package version

// Version is overridden at build time with -ldflags "-X".
var Version = "0.0.1"
