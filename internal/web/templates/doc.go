// Package templates holds the server-rendered HTML components.
//
// Components are written in .templ files; the *_templ.go files next to
// them are generated with `templ generate` and must not be edited.
package templates
