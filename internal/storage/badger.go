package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vibeshelf/internal/domain"
)

// BadgerRepository implements Repository on BadgerDB. Resources are stored
// as JSON values under resource:{id} keys.
type BadgerRepository struct {
	db  *badger.DB
	log logrus.FieldLogger
}

var _ Repository = (*BadgerRepository)(nil)

// NewBadgerRepository opens the database at dbPath and returns a repository
// over it.
func NewBadgerRepository(dbPath string, logger logrus.FieldLogger) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %s: %w", dbPath, err)
	}
	logger.WithField("path", dbPath).Info("BadgerDB opened")

	return &BadgerRepository{
		db:  db,
		log: logger.WithField("component", "repository"),
	}, nil
}

// Close closes the underlying database.
func (r *BadgerRepository) Close() error {
	r.log.Info("Closing BadgerDB")
	if err := r.db.Close(); err != nil {
		r.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	return nil
}

func resourceKey(id string) []byte {
	return []byte("resource:" + id)
}

var resourcePrefix = []byte("resource:")

// Create persists proposed for ownerID with fresh identity fields and the
// pending_review status.
func (r *BadgerRepository) Create(ctx context.Context, proposed domain.ProposedResource, ownerID int64) (domain.Resource, error) {
	res := domain.Resource{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		OwnerID:      ownerID,
		Status:       domain.StatusPendingReview,
		URL:          proposed.URL,
		Title:        proposed.Title,
		Summary:      proposed.Summary,
		ThumbnailURL: proposed.ThumbnailURL,
		Categories:   proposed.Categories,
		ResourceType: proposed.ResourceType,
		Language:     proposed.Language,
	}

	if err := r.put(res); err != nil {
		return domain.Resource{}, fmt.Errorf("create resource: %w", err)
	}
	r.log.WithFields(logrus.Fields{
		"id":       res.ID,
		"owner_id": ownerID,
		"url":      res.URL,
	}).Info("Resource created")
	return res, nil
}

// Get returns the resource stored under id.
func (r *BadgerRepository) Get(ctx context.Context, id string) (domain.Resource, error) {
	var res domain.Resource
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(resourceKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &res)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Resource{}, ErrNotFound
	}
	if err != nil {
		return domain.Resource{}, fmt.Errorf("get resource %s: %w", id, err)
	}
	return res, nil
}

// List scans all resources and returns those matching the filter, newest
// first.
func (r *BadgerRepository) List(ctx context.Context, filter Filter) ([]domain.Resource, error) {
	var resources []domain.Resource

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(resourcePrefix); it.ValidForPrefix(resourcePrefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var res domain.Resource
				if err := json.Unmarshal(val, &res); err != nil {
					return fmt.Errorf("unmarshal resource at key %s: %w", string(item.Key()), err)
				}
				if matches(res, filter) {
					resources = append(resources, res)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}

	sort.Slice(resources, func(i, j int) bool {
		return resources[i].CreatedAt.After(resources[j].CreatedAt)
	})
	return resources, nil
}

// UpdateStatus moves the resource with the given id to status, rejecting
// transitions the lifecycle does not allow.
func (r *BadgerRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Resource, error) {
	res, err := r.Get(ctx, id)
	if err != nil {
		return domain.Resource{}, err
	}
	if !res.Status.CanTransitionTo(status) {
		return domain.Resource{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, status)
	}

	res.Status = status
	if err := r.put(res); err != nil {
		return domain.Resource{}, fmt.Errorf("update resource %s: %w", id, err)
	}
	r.log.WithFields(logrus.Fields{
		"id":     id,
		"status": status,
	}).Info("Resource status updated")
	return res, nil
}

// Delete removes the resource with the given id. Idempotent.
func (r *BadgerRepository) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(resourceKey(id))
	})
	if err != nil {
		return fmt.Errorf("delete resource %s: %w", id, err)
	}
	r.log.WithField("id", id).Info("Resource deleted")
	return nil
}

func (r *BadgerRepository) put(res domain.Resource) error {
	value, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal resource: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(resourceKey(res.ID), value))
	})
}

func matches(res domain.Resource, filter Filter) bool {
	if filter.Status != "" && res.Status != filter.Status {
		return false
	}
	if filter.ResourceType != "" && res.ResourceType != filter.ResourceType {
		return false
	}
	if filter.Language != "" && res.Language != filter.Language {
		return false
	}
	if filter.OwnerID != 0 && res.OwnerID != filter.OwnerID {
		return false
	}
	if filter.Category != "" {
		found := false
		for _, c := range res.Categories {
			if c == filter.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{})   { l.logger.Errorf(f, v...) }
func (l *badgerLogger) Warningf(f string, v ...interface{}) { l.logger.Warningf(f, v...) }
func (l *badgerLogger) Infof(f string, v ...interface{})    { l.logger.Infof(f, v...) }
func (l *badgerLogger) Debugf(f string, v ...interface{})   { l.logger.Debugf(f, v...) }
