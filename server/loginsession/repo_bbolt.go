package loginsession

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/jrsteele09/go-module-portal/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.etcd.io/bbolt"
)

var _ Repo = (*BoltLoginSessionRepo)(nil)

var sessionsBucket = []byte("sessions")

// BoltLoginSessionRepo keeps sessions in a bbolt file so logins survive a restart.
type BoltLoginSessionRepo struct {
	db      *bbolt.DB
	nowTime func() time.Time
}

// OpenBoltLoginSessionRepo opens (or creates) the session file and drops
// sessions that expired while the process was down.
func OpenBoltLoginSessionRepo(path string) (*BoltLoginSessionRepo, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "[loginsession] bbolt.Open %s", path)
	}

	r := &BoltLoginSessionRepo{db: db, nowTime: time.Now}
	if err := r.removeExpired(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the underlying file
func (r *BoltLoginSessionRepo) Close() error {
	return r.db.Close()
}

func (r *BoltLoginSessionRepo) Upsert(session sessions.Session) error {
	if session.ID == "" {
		return fmt.Errorf("sessionID is required")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "[loginsession] json.Marshal")
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(sessionsBucket)
		if err != nil {
			return errors.Wrap(err, "[loginsession] bbolt.CreateBucketIfNotExists")
		}
		return bkt.Put([]byte(session.ID), data)
	})
}

func (r *BoltLoginSessionRepo) Get(sessionID string) (sessions.Session, error) {
	var session sessions.Session
	found := false

	err := r.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(sessionsBucket)
		if bkt == nil {
			return nil
		}
		data := bkt.Get([]byte(sessionID))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &session)
	})
	if err != nil {
		return sessions.Session{}, errors.Wrap(err, "[loginsession] bbolt.View")
	}
	if !found || sessionID == "" {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}

	if session.Expired(r.nowTime()) {
		if err := r.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("removing expired session")
		}
		return sessions.Session{}, apperrors.ErrSessionExpired
	}
	if session.Modules == nil {
		session.Modules = session.Modules.Clone()
	}
	return session, nil
}

func (r *BoltLoginSessionRepo) Delete(sessionID string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(sessionsBucket)
		if bkt == nil {
			return nil
		}
		return bkt.Delete([]byte(sessionID))
	})
}

func (r *BoltLoginSessionRepo) removeExpired() error {
	now := r.nowTime()
	removed := 0

	err := r.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(sessionsBucket)
		if bkt == nil {
			return nil
		}
		var stale [][]byte
		err := bkt.ForEach(func(k, v []byte) error {
			var s sessions.Session
			if err := json.Unmarshal(v, &s); err != nil || s.Expired(now) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := bkt.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "[loginsession] removing expired sessions")
	}
	log.Debug().Int("removed", removed).Msg("loaded session store")
	return nil
}
