// Package process stops the browser processes started for PDF export.
package process
