package serviceImp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
	"time"

	"farm/entities"
	"farm/pkg/store/repository"
	"farm/pkg/store/service"
)

// BackupStampLayout names backup copies, e.g. data_backup_20250101_120000.
const BackupStampLayout = "20060102_150405"

type recordStore struct {
	backend repository.Backend
	now     func() time.Time
}

func New(backend repository.Backend) service.Store {
	return NewWithClock(backend, time.Now)
}

func NewWithClock(backend repository.Backend, now func() time.Time) service.Store {
	return &recordStore{backend: backend, now: now}
}

func (s *recordStore) Load(name string, dst any) service.LoadResult {
	res := service.LoadResult{Collection: name}
	set := func(st service.LoadStatus, err error) service.LoadResult {
		res.Status, res.Err = st, err
		return res
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return set(service.Failed, fmt.Errorf("load %s: destination must be a non-nil pointer", name))
	}

	b, err := s.backend.Read(name)
	if errors.Is(err, repository.ErrNotExist) {
		return set(service.Missing, nil)
	}
	if err != nil {
		log.Printf("[store] error loading %s: %v", name, err)
		return set(service.Failed, err)
	}

	// decode into a fresh value so a half-decoded document never leaks out
	fresh := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(b, fresh.Interface()); err != nil {
		log.Printf("[store] error loading %s: %v", name, err)
		return set(service.Failed, err)
	}
	if fresh.Elem().Kind() == reflect.Slice && fresh.Elem().IsNil() {
		// "null" on disk
		return set(service.Loaded, nil)
	}
	rv.Elem().Set(fresh.Elem())
	return set(service.Loaded, nil)
}

func (s *recordStore) Save(name string, records any) bool {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Printf("[store] error saving %s: %v", name, err)
		return false
	}
	if bytes.Equal(b, []byte("null")) {
		b = []byte("[]")
	}
	if err := s.backend.Write(name, b); err != nil {
		log.Printf("[store] error saving %s: %v", name, err)
		return false
	}
	return true
}

func (s *recordStore) Delete(name string) bool {
	if err := s.backend.Remove(name); err != nil {
		log.Printf("[store] error deleting %s: %v", name, err)
		return false
	}
	return true
}

func (s *recordStore) Summary() map[string]int {
	out := make(map[string]int, len(entities.Collections))
	for _, name := range entities.Collections {
		var docs []json.RawMessage
		if res := s.Load(name, &docs); res.Status != service.Loaded {
			out[name] = 0
			continue
		}
		out[name] = len(docs)
	}
	return out
}

func (s *recordStore) Backup() (string, bool) {
	dst, err := s.backend.Backup(s.now().Format(BackupStampLayout))
	if err != nil {
		log.Printf("[store] error creating backup: %v", err)
		return "", false
	}
	if dst != "" {
		log.Printf("[store] backup written to %s", dst)
	}
	return dst, true
}

func (s *recordStore) Ping() error { return s.backend.Ping() }
