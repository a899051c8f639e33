// Package ioutils provides file system and image helpers for flstudio-hub.
//
// This package contains functions for:
//   - Atomic file writes (temp file + rename) for stores and exports
//   - Filename sanitization for exported templates and artwork
//   - Directory creation
//   - Cover art thumbnails for scanned sample packs
//
// # File Operations
//
//	// Write a template export
//	err := ioutils.WriteFileAtomic("/exports/fl-studio-template-1.json", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("Trap: Dark/808") // Returns "Trap_ Dark_808"
//
// # Thumbnails
//
//	svc := ioutils.NewImageService()
//	thumb, _ := svc.Thumbnail(ctx, apicPicture, 300)
package ioutils
