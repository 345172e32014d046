package download

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cavaliergopher/grab/v3"
)

var client = grab.NewClient()

// ProgressCallback is called during download with progress info
type ProgressCallback func(bytesComplete, totalBytes int64, percentage int)

// File downloads a file from URL to the target path
func File(url, targetPath string) error {
	return FileWithProgress(url, targetPath, nil)
}

// FileWithProgress downloads a file with progress callback
func FileWithProgress(url, targetPath string, callback ProgressCallback) error {
	req, err := grab.NewRequest(targetPath, url)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.NoResume = true // Always overwrite, never resume

	resp := client.Do(req)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	lastPercentage := -1
	for {
		select {
		case <-ticker.C:
			if callback != nil {
				var percentage int
				if resp.Size() > 0 {
					percentage = int(resp.Progress() * 100)
				}
				if percentage != lastPercentage {
					callback(resp.BytesComplete(), resp.Size(), percentage)
					lastPercentage = percentage
				}
			}
		case <-resp.Done:
			if err := resp.Err(); err != nil {
				return fmt.Errorf("download failed: %w", err)
			}
			if callback != nil && resp.Size() > 0 {
				callback(resp.BytesComplete(), resp.Size(), 100)
			}
			return nil
		}
	}
}

// ToPath downloads url to targetPath, creating parent directories. The body
// is written to a sibling .part file and only renamed into place once the
// transfer completed, so targetPath never holds a truncated file.
func ToPath(url, targetPath string, callback ProgressCallback) error {
	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	partPath := targetPath + ".part"
	_ = os.Remove(partPath) // Stale leftovers from an interrupted run

	if err := FileWithProgress(url, partPath, callback); err != nil {
		_ = os.Remove(partPath) // Best effort cleanup
		return err
	}

	if err := os.Rename(partPath, targetPath); err != nil {
		_ = os.Remove(partPath)
		return fmt.Errorf("failed to move download into place: %w", err)
	}

	return nil
}

// Fetcher downloads to a fixed path; it adapts ToPath to interfaces that only
// need a URL and a destination.
type Fetcher struct {
	Progress ProgressCallback
}

// Fetch downloads url to targetPath
func (f Fetcher) Fetch(url, targetPath string) error {
	return ToPath(url, targetPath, f.Progress)
}
