// Package samples scans a sample library for tagged MP3 files and
// summarizes it into a project template suggestion.
//
// # Scanner
//
// The Scanner coordinates a library scan:
//
//  1. Walk the root directory for .mp3 files
//  2. Read ID3 tags (title, genre, TBPM, TKEY) concurrently
//  3. Optionally write artwork thumbnails from embedded APIC frames
//  4. Report progress through ProgressEvent callbacks
//
// # Basic Usage
//
//	scanner := samples.NewScanner(settings, func(event samples.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	lib, err := scanner.Scan(ctx, "/path/to/samples")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	draft := lib.Summary().SuggestTemplate("My Kit", int(settings.DefaultBPM))
//
// # Concurrency
//
// Tag reads run on an errgroup limited by settings.ScanConcurrency. A file
// that fails to parse is reported at LevelError and skipped; it does not
// stop the scan.
//
// # Tagging
//
// Tagger writes BPM, key, genre and title frames back to a file, with a
// TagEditAction per frame:
//
//	tagger := samples.NewTagger(samples.DefaultTagConfig())
//	err := tagger.SaveTags(path, samples.Tags{BPM: "128", Key: "F Minor"}, nil)
//
// # Playlists
//
// WritePlaylist turns a scan into an audition playlist; the extension
// (.m3u, .pls, .wpl) picks the format.
package samples
