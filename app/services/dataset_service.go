package services

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DatasetService serves the stroke dataset CSV for the data preview
// page. The file is parsed once at startup and re-read whenever the
// watcher sees it change; a missing or malformed file leaves the
// previous (possibly empty) snapshot in place.
type DatasetService struct {
	path string
	log  zerolog.Logger

	mu     sync.RWMutex
	header []string
	rows   [][]string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

func NewDatasetService(path string, log zerolog.Logger) *DatasetService {
	s := &DatasetService{path: path, log: log, done: make(chan struct{})}
	if err := s.Reload(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("dataset not loaded")
	}
	return s
}

// Reload re-parses the CSV and swaps the snapshot atomically.
func (s *DatasetService) Reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return err
	}
	var header []string
	var rows [][]string
	if len(records) > 0 {
		header = records[0]
		rows = records[1:]
	}
	s.mu.Lock()
	s.header = header
	s.rows = rows
	s.mu.Unlock()
	s.log.Info().Str("path", s.path).Int("rows", len(rows)).Msg("dataset loaded")
	return nil
}

// Watch reloads the dataset when the file changes on disk. The watch
// is on the containing directory so editors that replace the file are
// caught too.
func (s *DatasetService) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return err
	}
	s.watcher = watcher

	go func() {
		target := filepath.Clean(s.path)
		for {
			select {
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := s.Reload(); err != nil {
					s.log.Warn().Err(err).Msg("dataset reload failed")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn().Err(err).Msg("dataset watcher error")
			case <-s.done:
				return
			}
		}
	}()
	return nil
}

// Preview returns the header and the first n data rows.
func (s *DatasetService) Preview(n int) ([]string, [][]string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.rows) {
		n = len(s.rows)
	}
	header := make([]string, len(s.header))
	copy(header, s.header)
	rows := make([][]string, n)
	copy(rows, s.rows[:n])
	return header, rows
}

// Rows reports the number of data rows currently loaded.
func (s *DatasetService) Rows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *DatasetService) Close() {
	close(s.done)
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}
