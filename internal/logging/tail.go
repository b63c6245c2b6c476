package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// followInterval is how often TailLog polls for new data when following.
var followInterval = 100 * time.Millisecond

// tailChunk is the block size used when scanning backwards for line breaks.
const tailChunk = 4096

// FindLatestLog returns the most recently modified *.log file in logDir,
// rotated backups included, or "" when there is none.
func FindLatestLog(logDir string) (string, error) {
	entries, err := os.ReadDir(logDir)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest, latestTime = filepath.Join(logDir, entry.Name()), info.ModTime()
		}
	}
	return latest, nil
}

// TailLog copies a log file to w, starting at the last n lines when n > 0,
// and keeps copying new writes until ctx is done when follow is set.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := seekLastLines(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	if follow {
		return tailFollow(ctx, w, path, file)
	}
	_, err = io.Copy(w, file)
	return err
}

// seekLastLines positions file at the start of its last n lines. A trailing
// newline does not count as the start of an empty line.
func seekLastLines(file *os.File, n int) error {
	stat, err := file.Stat()
	if err != nil {
		return err
	}

	end := stat.Size()
	pos := end
	buf := make([]byte, tailChunk)
	seen := 0
	for pos > 0 {
		size := int64(len(buf))
		if pos < size {
			size = pos
		}
		pos -= size
		chunk := buf[:size]
		if _, err := file.ReadAt(chunk, pos); err != nil && err != io.EOF {
			return err
		}
		for i := len(chunk) - 1; i >= 0; i-- {
			if chunk[i] != '\n' || pos+int64(i) == end-1 {
				continue
			}
			seen++
			if seen == n {
				_, err := file.Seek(pos+int64(i)+1, io.SeekStart)
				return err
			}
		}
	}

	_, err = file.Seek(0, io.SeekStart)
	return err
}

// tailFollow copies new data from file until ctx is done. When path is
// replaced, as lumberjack does on rotation, the rest of the old file is
// copied and the new file is followed from its start.
func tailFollow(ctx context.Context, w io.Writer, path string, file *os.File) error {
	defer func() { file.Close() }()

	ticker := time.NewTicker(followInterval)
	defer ticker.Stop()

	for {
		if _, err := io.Copy(w, file); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		next, err := reopenIfRotated(path, file)
		if err != nil {
			return err
		}
		if next == file {
			continue
		}
		if _, err := io.Copy(w, file); err != nil {
			next.Close()
			return err
		}
		file.Close()
		file = next
	}
}

// reopenIfRotated returns a new handle for path when it no longer names the
// same file as current, and current otherwise. A path that is briefly
// missing mid-rotation is treated as unchanged.
func reopenIfRotated(path string, current *os.File) (*os.File, error) {
	pathInfo, err := os.Stat(path)
	if err != nil {
		return current, nil
	}
	curInfo, err := current.Stat()
	if err != nil {
		return current, nil
	}
	if os.SameFile(pathInfo, curInfo) {
		return current, nil
	}
	next, err := os.Open(path)
	if os.IsNotExist(err) {
		return current, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reopen log file: %w", err)
	}
	return next, nil
}
