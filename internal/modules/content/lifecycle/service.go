package lifecycle

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/terravita/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Content is satisfied by every content kind model through the promoted
// ContentRef method of the embedded models.ContentBase.
type Content interface {
	ContentRef() *models.ContentBase
}

// Options tunes the lifecycle behavior.
type Options struct {
	// LockTTL is the advisory edit-lock duration.
	LockTTL time.Duration

	// Strict enables the optimistic-concurrency mode: every draft/publish
	// write carries a version guard and fails with ErrVersionConflict on
	// mismatch. Off by default; the advisory lock is then the only editor
	// coordination, which is a documented, accepted race.
	Strict bool
}

// Service implements the draft/publish state machine, the listing query
// engine and the edit-lock coordinator for one content kind, parameterized
// by its Schema.
type Service[T any, PT interface {
	*T
	Content
}] struct {
	db     *gorm.DB
	schema Schema
	opts   Options
	log    *zap.Logger
}

// New constructs a lifecycle service for one content kind.
func New[T any, PT interface {
	*T
	Content
}](db *gorm.DB, schema Schema, opts Options, log *zap.Logger) *Service[T, PT] {
	if opts.LockTTL <= 0 {
		opts.LockTTL = 10 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service[T, PT]{db: db, schema: schema, opts: opts, log: log}
}

// DB exposes the handle for kind-specific queries built on top of this
// service.
func (s *Service[T, PT]) DB() *gorm.DB { return s.db }

// Schema returns the kind descriptor.
func (s *Service[T, PT]) Schema() Schema { return s.schema }

// FindByID fetches a record by id. Returns (nil, nil) when absent.
func (s *Service[T, PT]) FindByID(id uint) (*T, error) {
	return s.findByID(s.db, id, false)
}

// FindBySlug fetches a record by slug, optionally restricted to published
// status for the public path. Returns (nil, nil) when absent.
func (s *Service[T, PT]) FindBySlug(slug string, publishedOnly bool) (*T, error) {
	var rec T
	tx := s.db.Where("slug = ?", slug)
	if publishedOnly {
		tx = tx.Where("status = ?", models.StatusPublished)
	}
	if err := tx.First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindPublishedByID is the public-path id lookup: (nil, nil) unless the
// record exists and is published.
func (s *Service[T, PT]) FindPublishedByID(id uint) (*T, error) {
	rec, err := s.findByID(s.db, id, false)
	if err != nil || rec == nil {
		return nil, err
	}
	if PT(rec).ContentRef().Status != models.StatusPublished {
		return nil, nil
	}
	return rec, nil
}

// CreateDraft merges patch into the record's draft overlay. Patch keys
// outside the schema's draft fields are dropped; keys explicitly set to
// null are kept. draft_created_at is set only when starting a fresh overlay.
// The read-merge-write runs inside one transaction with a row lock so two
// concurrent patches cannot lose each other's keys.
func (s *Service[T, PT]) CreateDraft(id uint, patch map[string]interface{}) (*T, error) {
	filtered := make(map[string]interface{}, len(patch))
	for k, v := range patch {
		if _, ok := s.schema.DraftFields[k]; ok {
			filtered[k] = v
		}
	}

	var out *T
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec, err := s.findByID(tx, id, true)
		if err != nil {
			return err
		}
		if rec == nil {
			return ErrNotFound
		}
		cb := PT(rec).ContentRef()

		now := time.Now()
		updates := map[string]interface{}{
			"draft_data": MergeOverlay(cb.DraftData, filtered),
			"has_draft":  true,
			"updated_at": now,
		}
		if cb.DraftCreatedAt == nil {
			updates["draft_created_at"] = now
		}
		if err := s.applyGuarded(tx, rec, cb, updates); err != nil {
			return err
		}

		out, err = s.findByID(tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DiscardDraft removes the draft overlay without touching published fields.
// Discarding when no draft exists is a no-op, not an error.
func (s *Service[T, PT]) DiscardDraft(id uint) (*T, error) {
	var out *T
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec, err := s.findByID(tx, id, true)
		if err != nil {
			return err
		}
		if rec == nil {
			return ErrNotFound
		}
		cb := PT(rec).ContentRef()
		if !cb.HasDraft && cb.DraftData == nil {
			out = rec
			return nil
		}

		updates := map[string]interface{}{
			"draft_data":       nil,
			"has_draft":        false,
			"draft_created_at": nil,
			"updated_at":       time.Now(),
		}
		if err := s.applyGuarded(tx, rec, cb, updates); err != nil {
			return err
		}

		out, err = s.findByID(tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Publish promotes the record to published state in one atomic update.
//
// With a pending overlay, every key present in it is applied — including
// explicit nulls — together with status/published_at and the draft-state
// clear. Without an overlay, a never-published (status=draft) record is
// simply flipped to published; an already published record fails with
// ErrNothingToPublish.
func (s *Service[T, PT]) Publish(id uint) (*T, error) {
	var out *T
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec, err := s.findByID(tx, id, true)
		if err != nil {
			return err
		}
		if rec == nil {
			return ErrNotFound
		}
		cb := PT(rec).ContentRef()
		now := time.Now()

		switch {
		case cb.HasDraft && cb.DraftData != nil:
			updates := make(map[string]interface{}, len(cb.DraftData)+6)
			structured := make(map[string]interface{})
			for key, val := range cb.DraftData {
				field, ok := s.schema.DraftFields[key]
				if !ok {
					continue
				}
				if field.Structured {
					if val == nil {
						updates[field.Column] = nil
					} else {
						b, err := json.Marshal(val)
						if err != nil {
							return fmt.Errorf("marshal draft field %q: %w", key, err)
						}
						updates[field.Column] = string(b)
					}
					structured[field.Column] = val
				} else {
					updates[field.Column] = val
				}
			}
			updates["status"] = models.StatusPublished
			updates["published_at"] = now
			updates["updated_at"] = now
			updates["draft_data"] = nil
			updates["has_draft"] = false
			updates["draft_created_at"] = nil

			if err := s.applyGuarded(tx, rec, cb, updates); err != nil {
				return err
			}
			if err := s.verifyStructured(tx, id, structured); err != nil {
				return err
			}

		case cb.Status == models.StatusDraft:
			updates := map[string]interface{}{
				"status":       models.StatusPublished,
				"published_at": now,
				"updated_at":   now,
			}
			if err := s.applyGuarded(tx, rec, cb, updates); err != nil {
				return err
			}

		default:
			return ErrNothingToPublish
		}

		out, err = s.findByID(tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyGuarded issues the single UPDATE for a state transition, adding the
// optimistic version guard in strict mode.
func (s *Service[T, PT]) applyGuarded(tx *gorm.DB, rec *T, cb *models.ContentBase, updates map[string]interface{}) error {
	q := tx.Model(rec)
	if s.opts.Strict {
		updates["version"] = cb.Version + 1
		q = q.Where("version = ?", cb.Version)
	}
	res := q.Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if s.opts.Strict && res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// verifyStructured re-reads structured JSON columns after publish and
// compares them against the overlay values, rewriting on divergence. Rich
// nested content has historically been the field class most likely to be
// mangled by serialization round-trips.
func (s *Service[T, PT]) verifyStructured(tx *gorm.DB, id uint, structured map[string]interface{}) error {
	for column, want := range structured {
		var raw sql.NullString
		row := tx.Table(s.schema.Table).Select(column).Where("id = ?", id).Row()
		if err := row.Scan(&raw); err != nil {
			return fmt.Errorf("verify %s: %w", column, err)
		}

		if want == nil {
			if !raw.Valid || raw.String == "" || raw.String == "null" {
				continue
			}
		} else if raw.Valid {
			wantJSON, err := json.Marshal(want)
			if err != nil {
				return err
			}
			var got interface{}
			if err := json.Unmarshal([]byte(raw.String), &got); err == nil {
				gotJSON, _ := json.Marshal(got)
				if string(gotJSON) == string(wantJSON) {
					continue
				}
			}
		}

		s.log.Warn("structured field diverged after publish, rewriting",
			zap.String("kind", s.schema.Kind),
			zap.Uint("id", id),
			zap.String("column", column),
		)
		value := interface{}(nil)
		if want != nil {
			b, err := json.Marshal(want)
			if err != nil {
				return err
			}
			value = string(b)
		}
		if err := tx.Table(s.schema.Table).Where("id = ?", id).
			UpdateColumn(column, value).Error; err != nil {
			return fmt.Errorf("rewrite %s: %w", column, err)
		}
	}
	return nil
}

// findByID loads a record, optionally with a row lock (MySQL only; SQLite
// serializes writers on its own).
func (s *Service[T, PT]) findByID(tx *gorm.DB, id uint, forUpdate bool) (*T, error) {
	var rec T
	q := tx
	if forUpdate && tx.Dialector.Name() == "mysql" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
