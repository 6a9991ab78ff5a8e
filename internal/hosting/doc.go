// Package hosting describes the GitHub organizations whose repositories y2m
// manages, including module short-name normalization and remote URL layout.
package hosting
