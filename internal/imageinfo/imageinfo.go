// Package imageinfo reads image dimensions for the overlay and works out how
// large the overlay window should be to show them.
package imageinfo

import (
	"container/list"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes one image file.
type Info struct {
	Path    string    `json:"path"`
	Format  string    `json:"format"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	ModTime time.Time `json:"mod_time"`
	Size    int64     `json:"size"`
}

// Service implements an LRU cache of decoded image headers keyed by path.
// An entry is reused only while the file's size and modification time match.
type Service struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*list.Element
	lruList *list.List
}

// New creates a new image info service
func New(maxSize int) *Service {
	if maxSize <= 0 {
		maxSize = 32 // Default cache size
	}

	return &Service{
		maxSize: maxSize,
		entries: make(map[string]*list.Element),
		lruList: list.New(),
	}
}

// Lookup returns the dimensions of the image at path, decoding only the
// header. Unknown formats and unreadable files are errors.
func (s *Service) Lookup(path string) (*Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	if info := s.get(path, st); info != nil {
		return info, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	info := &Info{
		Path:    path,
		Format:  format,
		Width:   cfg.Width,
		Height:  cfg.Height,
		ModTime: st.ModTime(),
		Size:    st.Size(),
	}
	s.put(info)
	return info, nil
}

func (s *Service) get(path string, st os.FileInfo) *Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, exists := s.entries[path]
	if !exists {
		return nil
	}

	info := elem.Value.(*Info)
	if !info.ModTime.Equal(st.ModTime()) || info.Size != st.Size() {
		// File changed on disk, remove stale entry
		s.lruList.Remove(elem)
		delete(s.entries, path)
		return nil
	}

	s.lruList.MoveToFront(elem)
	return info
}

func (s *Service) put(info *Info) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, exists := s.entries[info.Path]; exists {
		elem.Value = info
		s.lruList.MoveToFront(elem)
		return
	}

	s.entries[info.Path] = s.lruList.PushFront(info)

	// Enforce size limit
	for s.lruList.Len() > s.maxSize {
		elem := s.lruList.Back()
		s.lruList.Remove(elem)
		delete(s.entries, elem.Value.(*Info).Path)
	}
}

// Clear removes all entries from the cache
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*list.Element)
	s.lruList = list.New()
}

// Size returns the current cache size
func (s *Service) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lruList.Len()
}

// Fit scales width x height down, keeping the aspect ratio, until it fits
// within ratio of the screen. Images that already fit keep their size.
func Fit(width, height, screenWidth, screenHeight int, ratio float64) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}
	maxWidth := float64(screenWidth) * ratio
	maxHeight := float64(screenHeight) * ratio
	if float64(width) <= maxWidth && float64(height) <= maxHeight {
		return width, height
	}

	scale := math.Min(maxWidth/float64(width), maxHeight/float64(height))
	return int(math.Round(float64(width) * scale)), int(math.Round(float64(height) * scale))
}
