package segment

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// The four 25-meter intervals of a 100-meter sprint, in track order.
const (
	Key0to25   = "0-25"
	Key25to50  = "25-50"
	Key50to75  = "50-75"
	Key75to100 = "75-100"
)

var ErrUnknownSegment = errors.New("unknown segment key")

// Keys returns the segment keys in track order.
func Keys() []string {
	return []string{Key0to25, Key25to50, Key50to75, Key75to100}
}

// ValidKey reports whether key belongs to the closed segment set.
func ValidKey(key string) bool {
	switch key {
	case Key0to25, Key25to50, Key50to75, Key75to100:
		return true
	}
	return false
}

// Tracker records, per analysis session, which segments have received a
// video file. Flags are monotone: once a segment is marked received there
// is no way back. With a redis client the flags live in a per-session hash
// so multiple instances share them; without one an in-memory map is used.
type Tracker struct {
	redis *redis.Client
	mu    sync.Mutex
	local map[string]map[string]bool
}

func NewTracker(redisClient *redis.Client) *Tracker {
	return &Tracker{
		redis: redisClient,
		local: map[string]map[string]bool{},
	}
}

// MarkUploaded flags a segment as received. Files whose MIME type is not
// video/* are ignored without error; unknown segment keys are rejected.
func (t *Tracker) MarkUploaded(ctx context.Context, sessionID, key, mimeType string) error {
	if !ValidKey(key) {
		return ErrUnknownSegment
	}
	if !strings.HasPrefix(mimeType, "video/") {
		return nil
	}

	if t.redis != nil {
		return t.redis.HSet(ctx, sessionKey(sessionID), key, "1").Err()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.local[sessionID] == nil {
		t.local[sessionID] = map[string]bool{}
	}
	t.local[sessionID][key] = true
	return nil
}

// Received reports the flag for every segment key, false by default.
func (t *Tracker) Received(ctx context.Context, sessionID string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, k := range Keys() {
		out[k] = false
	}

	if t.redis != nil {
		stored, err := t.redis.HGetAll(ctx, sessionKey(sessionID)).Result()
		if err != nil {
			return nil, err
		}
		for k, v := range stored {
			if ValidKey(k) && v == "1" {
				out[k] = true
			}
		}
		return out, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for k, v := range t.local[sessionID] {
		if v {
			out[k] = true
		}
	}
	return out, nil
}

// Pending lists, in track order, the segments still waiting for a file.
func (t *Tracker) Pending(ctx context.Context, sessionID string) ([]string, error) {
	received, err := t.Received(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var pending []string
	for _, k := range Keys() {
		if !received[k] {
			pending = append(pending, k)
		}
	}
	return pending, nil
}

func sessionKey(sessionID string) string {
	return "upload:" + sessionID
}
