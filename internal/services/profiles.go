package services

import (
	"context"

	"live-market/internal/domain/stream"
	"live-market/internal/domain/user"
	"live-market/internal/repository"
	"live-market/pkg/logger"
)

// ProfileCache is satisfied by the Redis cache store. A miss returns (nil, nil).
type ProfileCache interface {
	GetProfile(ctx context.Context, id uint64) (*user.Profile, error)
	SetProfile(ctx context.Context, p user.Profile) error
}

// StreamCache holds stream metadata only. Messages always come from the store.
type StreamCache interface {
	GetStream(ctx context.Context, id uint64) (*stream.Stream, error)
	SetStream(ctx context.Context, s stream.Stream) error
}

// profileLookup resolves public profiles, reading through the cache when one is set.
type profileLookup struct {
	users repository.UserRepository
	cache ProfileCache
}

func newProfileLookup(users repository.UserRepository, cache ProfileCache) *profileLookup {
	return &profileLookup{users: users, cache: cache}
}

// Profiles returns a profile for every id that exists. Cache failures fall back to the store.
func (l *profileLookup) Profiles(ctx context.Context, ids []uint64) (map[uint64]user.Profile, error) {
	ids = uniqueIDs(ids)
	found := make(map[uint64]user.Profile, len(ids))
	missing := ids

	if l.cache != nil {
		missing = missing[:0:0]
		for _, id := range ids {
			p, err := l.cache.GetProfile(ctx, id)
			if err != nil {
				logCacheError(ctx, "get profile", err)
			}
			if p != nil {
				found[id] = *p
				continue
			}
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return found, nil
	}

	loaded, err := l.users.GetProfiles(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, p := range loaded {
		found[id] = p
		if l.cache != nil {
			if err := l.cache.SetProfile(ctx, p); err != nil {
				logCacheError(ctx, "set profile", err)
			}
		}
	}
	return found, nil
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == 0 {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func logCacheError(ctx context.Context, op string, err error) {
	if l := logger.GetGlobalLogger(); l != nil {
		l.WithContext(ctx).Warnf("cache %s failed: %v", op, err)
	}
}
