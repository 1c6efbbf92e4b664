// Package web carries the embedded UI assets: page templates for the
// login, join, home, admin and my-page surfaces plus their static files.
package web

import "embed"

// Templates holds the layout, partial and page templates.
//
//go:embed templates/**/*.html
var Templates embed.FS

// Static holds stylesheets and other fixed assets served under /static.
//
//go:embed static/**/*
var Static embed.FS
