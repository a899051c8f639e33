package samples

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/handiism/flstudio-hub/internal/config"
	ioutils "github.com/handiism/flstudio-hub/internal/io"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	}
	return "info"
}

// ProgressEvent represents a scan progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Sample is one scanned file.
type Sample struct {
	Path string
	Tags
	HasArtwork bool
	// Thumbnail is the written artwork thumbnail, if any.
	Thumbnail string
}

// Name returns the title, or the file name without extension.
func (s Sample) Name() string {
	if s.Title != "" {
		return s.Title
	}
	return strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
}

// Library is the result of a scan, sorted by path.
type Library struct {
	Root    string
	Samples []Sample
	// Failed counts files whose tags could not be read.
	Failed int
}

// Scanner coordinates sample library scans.
type Scanner struct {
	settings     *config.Settings
	tagger       *Tagger
	imageService *ioutils.ImageService

	thumbnailDir string

	totalFiles   int32
	scannedFiles int32

	progressMu sync.Mutex
	onProgress func(ProgressEvent)
}

// NewScanner creates a new Scanner. onProgress may be nil. It is called
// serially, never from two workers at once, so it may write to a shared
// writer without locking.
func NewScanner(settings *config.Settings, onProgress func(ProgressEvent)) *Scanner {
	return &Scanner{
		settings:     settings,
		tagger:       NewTagger(nil),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// WithThumbnails makes Scan write a JPEG thumbnail of each embedded cover
// into dir, bounded by settings.ArtworkMaxSize.
func (s *Scanner) WithThumbnails(dir string) *Scanner {
	s.thumbnailDir = dir
	return s
}

// GetProgress returns how many files were read out of the total found.
func (s *Scanner) GetProgress() (scanned, total int32) {
	return atomic.LoadInt32(&s.scannedFiles), atomic.LoadInt32(&s.totalFiles)
}

// Scan walks root and reads every MP3 below it. Only a walk failure or
// context cancellation returns an error.
func (s *Scanner) Scan(ctx context.Context, root string) (*Library, error) {
	paths, err := findMP3s(root)
	if err != nil {
		return nil, err
	}
	atomic.StoreInt32(&s.totalFiles, int32(len(paths)))
	atomic.StoreInt32(&s.scannedFiles, 0)
	s.progress(ProgressEvent{Message: fmt.Sprintf("Found %d MP3 files in %s", len(paths), root), Level: LevelInfo})

	if s.thumbnailDir != "" {
		if err := ioutils.EnsureDir(s.thumbnailDir); err != nil {
			return nil, err
		}
	}

	lib := &Library{Root: root}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.settings.ScanConcurrency))

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sample, err := s.readSample(ctx, path)
			atomic.AddInt32(&s.scannedFiles, 1)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				lib.Failed++
				s.progress(ProgressEvent{Message: fmt.Sprintf("Error reading %s: %v", path, err), Level: LevelError})
				return nil // Continue with other files
			}
			lib.Samples = append(lib.Samples, sample)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(lib.Samples, func(a, b Sample) int { return strings.Compare(a.Path, b.Path) })

	if lib.Failed == 0 {
		s.progress(ProgressEvent{Message: fmt.Sprintf("Scanned %d samples", len(lib.Samples)), Level: LevelSuccess})
	} else {
		s.progress(ProgressEvent{Message: fmt.Sprintf("Scanned %d samples, %d failed", len(lib.Samples), lib.Failed), Level: LevelWarning})
	}
	return lib, nil
}

func (s *Scanner) readSample(ctx context.Context, path string) (Sample, error) {
	tags, artwork, err := s.tagger.ReadTags(path)
	if err != nil {
		return Sample{}, err
	}

	sample := Sample{Path: path, Tags: tags, HasArtwork: artwork != nil}
	if tags.BPMValue() == 0 {
		s.progress(ProgressEvent{Message: fmt.Sprintf("No BPM tag: %s", filepath.Base(path)), Level: LevelVerbose})
	}

	if artwork != nil && s.thumbnailDir != "" {
		thumb, err := s.writeThumbnail(ctx, path, artwork)
		if err != nil {
			s.progress(ProgressEvent{Message: fmt.Sprintf("Error creating thumbnail for %s: %v", filepath.Base(path), err), Level: LevelWarning})
		} else {
			sample.Thumbnail = thumb
		}
	}

	s.progress(ProgressEvent{Message: fmt.Sprintf("Read: %s", filepath.Base(path)), Level: LevelVerbose})
	return sample, nil
}

func (s *Scanner) writeThumbnail(ctx context.Context, path string, artwork []byte) (string, error) {
	data, err := s.imageService.Thumbnail(ctx, artwork, s.settings.ArtworkMaxSize)
	if err != nil {
		return "", err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".jpg"
	dest := filepath.Join(s.thumbnailDir, ioutils.SanitizeFileName(name))
	if err := ioutils.WriteFileAtomic(dest, data); err != nil {
		return "", err
	}
	return dest, nil
}

func (s *Scanner) progress(event ProgressEvent) {
	if s.onProgress == nil {
		return
	}
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	s.onProgress(event)
}

func findMP3s(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".mp3") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return paths, nil
}
