package auth

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/common/logger"
)

const (
	tokenFileName = "token"
	phoneFileName = "last_phone"
)

// FileStore keeps the token in a file under a fixed directory and
// watches that directory, so a logout performed by another console
// process on the same machine is observed here.
type FileStore struct {
	dir     string
	watcher *fsnotify.Watcher
	logger  logger.Logger
	notifier
}

func NewFileStore(dir string, log logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, apperrors.NewTokenStoreError(err)
	}

	s := &FileStore{
		dir:    dir,
		logger: log.WithFields(map[string]interface{}{"component": "file-token-store"}),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperrors.NewTokenStoreError(err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, apperrors.NewTokenStoreError(err)
	}
	s.watcher = watcher

	go s.watch()

	return s, nil
}

func (s *FileStore) watch() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != tokenFileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.notify()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("token watcher error", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *FileStore) Token(ctx context.Context) (string, error) {
	return s.readFile(tokenFileName)
}

func (s *FileStore) LastPhone(ctx context.Context) (string, error) {
	return s.readFile(phoneFileName)
}

func (s *FileStore) readFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", apperrors.NewTokenStoreError(err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Save(ctx context.Context, token, phone string) error {
	if err := os.WriteFile(filepath.Join(s.dir, tokenFileName), []byte(token), 0o600); err != nil {
		return apperrors.NewTokenStoreError(err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, phoneFileName), []byte(phone), 0o600); err != nil {
		return apperrors.NewTokenStoreError(err)
	}
	s.notify()
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	err := os.Remove(filepath.Join(s.dir, tokenFileName))
	if err != nil && !os.IsNotExist(err) {
		return apperrors.NewTokenStoreError(err)
	}
	s.notify()
	return nil
}

func (s *FileStore) Subscribe(fn func()) {
	s.subscribe(fn)
}

func (s *FileStore) Close() error {
	return s.watcher.Close()
}
