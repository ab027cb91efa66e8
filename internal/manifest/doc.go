// Package manifest reads the project manifest (package.json, composer.json, ...)
// that drives a verup run and locates it by walking up the directory tree.
package manifest
