package session

import (
	"casse-auctions/internal/biddingerrors"
	"casse-auctions/utils"
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
)

const bucketName = "sessions"

// BoltStore keeps sessions in a BoltDB file, one JSON value per token.
type BoltStore struct {
	db    *bolt.DB
	clock utils.Clock
}

// NewBoltStore opens (or creates) the session database at path
func NewBoltStore(path string, clock utils.Clock) (*BoltStore, error) {
	if clock == nil {
		clock = utils.RealClock{}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions bucket: %w", err)
	}

	return &BoltStore{db: db, clock: clock}, nil
}

// Close releases the database file lock.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Create starts a new session for userID
func (s *BoltStore) Create(userID string, ttl time.Duration) (Session, error) {
	now := s.clock.Now().UTC()
	sess := Session{
		Token:     utils.GenerateToken(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("encode session: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(sess.Token), data)
	})
	if err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get returns a live session by token
func (s *BoltStore) Get(token string) (Session, error) {
	var sess Session
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(token))
		if v == nil {
			return biddingerrors.ErrSessionNotFound
		}
		return json.Unmarshal(v, &sess)
	})
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	if sess.Expired(s.clock.Now()) {
		return Session{}, fmt.Errorf("get session: %w - expired", biddingerrors.ErrSessionNotFound)
	}
	return sess, nil
}

// Delete removes a session. Deleting an unknown token is not an error.
func (s *BoltStore) Delete(token string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(token))
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired deletes every expired session and returns how many were removed
func (s *BoltStore) PurgeExpired() (int, error) {
	now := s.clock.Now()
	removed := 0

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		// keys cannot be deleted while iterating with ForEach
		var expired [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var sess Session
			if err := json.Unmarshal(v, &sess); err != nil || sess.Expired(now) {
				expired = append(expired, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range expired {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(expired)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return removed, nil
}
