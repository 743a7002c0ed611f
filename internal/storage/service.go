package storage

import (
	"context"
	"strings"
	"time"

	"backend-sprintlab/internal/db"
	"backend-sprintlab/internal/segment"

	"github.com/google/uuid"
)

const urlTTL = 15 * time.Minute

type Service struct {
	db      db.Querier
	store   ObjectStore
	tracker *segment.Tracker
}

type VideoObject struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Segment   string    `json:"segment"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewService(db db.Querier, store ObjectStore, tracker *segment.Tracker) *Service {
	return &Service{db: db, store: store, tracker: tracker}
}

// SaveVideo stores a segment video, records it, and flags the segment as
// received. Non-video files are ignored without error; the returned bool
// reports whether anything was stored. The received flag is monotone, so
// it is only set once the object and its row are safely persisted.
func (s *Service) SaveVideo(ctx context.Context, userID, sessionID, segmentKey, fileName, contentType string, data []byte) (VideoObject, bool, error) {
	if !segment.ValidKey(segmentKey) {
		return VideoObject{}, false, segment.ErrUnknownSegment
	}
	if !strings.HasPrefix(contentType, "video/") {
		return VideoObject{}, false, nil
	}

	obj := VideoObject{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Segment:   segmentKey,
	}
	obj.Key = sessionID + "/" + segmentKey + "/" + obj.ID + "-" + fileName

	if s.store != nil {
		if err := s.store.Put(ctx, obj.Key, data, contentType); err != nil {
			return VideoObject{}, false, err
		}
		url, err := s.store.PresignedURL(ctx, obj.Key, urlTTL)
		if err != nil {
			return VideoObject{}, false, err
		}
		obj.URL = url
	}
	obj.ExpiresAt = time.Now().Add(urlTTL)

	_, err := s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, session_id, segment, object_key, content_type)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, obj.ID, userID, sessionID, segmentKey, obj.Key, contentType)
	if err != nil {
		return VideoObject{}, false, err
	}

	if err := s.tracker.MarkUploaded(ctx, sessionID, segmentKey, contentType); err != nil {
		return VideoObject{}, false, err
	}
	return obj, true, nil
}

// SessionStatus reports the per-segment received flags and what is still
// pending for an analysis session.
func (s *Service) SessionStatus(ctx context.Context, sessionID string) (map[string]bool, []string, error) {
	received, err := s.tracker.Received(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	pending, err := s.tracker.Pending(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return received, pending, nil
}
