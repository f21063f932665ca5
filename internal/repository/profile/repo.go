// Package profile reads user records and stored surveys from hash storage.
package profile

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/spotlight/internal/domain"
)

// DefaultKeyPrefix namespaces every key read by the repository.
const DefaultKeyPrefix = "spotlight:"

// store is the consumer interface for profiles (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Repo implements the recommend and stress ProfileStore interfaces.
type Repo struct {
	store  store
	prefix string
}

// New creates a profile repository. An empty prefix falls back to DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// UserExists reports whether a user record exists for uid.
func (r *Repo) UserExists(ctx context.Context, uid string) (bool, error) {
	exists, err := r.store.Exists(ctx, r.userKey(uid))
	if err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return exists, nil
}

// GetSurvey returns the stored answers of one survey kind.
// A missing or empty hash yields domain.ErrSurveyNotFound.
func (r *Repo) GetSurvey(ctx context.Context, uid string, kind domain.SurveyKind) (domain.SurveyRecord, error) {
	m, err := r.store.HGetAll(ctx, r.surveyKey(uid, kind))
	if err != nil {
		return nil, fmt.Errorf("get %s survey: %w", kind, err)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("%s survey for %q: %w", kind, uid, domain.ErrSurveyNotFound)
	}
	return domain.SurveyRecord(m), nil
}

func (r *Repo) userKey(uid string) string {
	return r.prefix + "users:" + uid
}

func (r *Repo) surveyKey(uid string, kind domain.SurveyKind) string {
	return r.prefix + "surveys:" + string(kind) + ":" + uid
}
