package shopifyauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MarcGrol/shopauth/lib/myerrors"
	"github.com/MarcGrol/shopauth/lib/mylog"
	"github.com/MarcGrol/shopauth/lib/mystore"
	"github.com/MarcGrol/shopauth/lib/mytime"
	"github.com/MarcGrol/shopauth/lib/myuuid"
	"github.com/MarcGrol/shopauth/services/shopifyauth/shopifyclient"
)

// SessionIssuer turns a freshly obtained token into the credential stored in the auth_token cookie.
type SessionIssuer interface {
	Issue(c context.Context, shop string, token shopifyclient.ExchangeResponse) (string, error)
}

// SessionVerifier decides whether a request carries a valid session credential.
type SessionVerifier interface {
	Verify(c context.Context, r *http.Request) error
}

// tokenCookieSessions hands out the raw access token and only checks that some auth_token
// cookie is present. It does not verify anything.
type tokenCookieSessions struct{}

func NewTokenCookieSessions() *tokenCookieSessions {
	return &tokenCookieSessions{}
}

func (s *tokenCookieSessions) Issue(c context.Context, shop string, token shopifyclient.ExchangeResponse) (string, error) {
	return token.AccessToken, nil
}

func (s *tokenCookieSessions) Verify(c context.Context, r *http.Request) error {
	if !strings.Contains(strings.Join(r.Header.Values("Cookie"), "; "), AuthCookieName) {
		return myerrors.NewUnauthenticatedError("no session cookie")
	}
	return nil
}

// serverSessions hands out a signed JWT whose id refers to a stored Session.
type serverSessions struct {
	store      mystore.Store[Session]
	signingKey []byte
	ttl        time.Duration
	nower      mytime.Nower
	uuider     myuuid.UUIDer
	logger     mylog.Logger
}

func NewServerSessions(store mystore.Store[Session], signingKey string, ttl time.Duration, nower mytime.Nower, uuider myuuid.UUIDer) *serverSessions {
	return &serverSessions{
		store:      store,
		signingKey: []byte(signingKey),
		ttl:        ttl,
		nower:      nower,
		uuider:     uuider,
		logger:     mylog.New("sessions"),
	}
}

func (s *serverSessions) Issue(c context.Context, shop string, token shopifyclient.ExchangeResponse) (string, error) {
	now := s.nower.Now()
	sessionUID := s.uuider.Create()

	err := s.store.Put(c, sessionUID, Session{
		UID:         sessionUID,
		Shop:        shop,
		AccessToken: token.AccessToken,
		Scope:       token.Scope,
		CreatedAt:   now,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error storing session: %w", err))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionUID,
		Subject:   shop,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}).SignedString(s.signingKey)
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error signing session: %w", err))
	}

	return signed, nil
}

func (s *serverSessions) Verify(c context.Context, r *http.Request) error {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil {
		return myerrors.NewUnauthenticatedError("no session cookie")
	}

	claims := jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(cookie.Value, &claims,
		func(token *jwt.Token) (any, error) {
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.nower.Now),
	)
	if err != nil {
		// The signature is checked before expiry, so the id of an expired token can be trusted
		if errors.Is(err, jwt.ErrTokenExpired) && claims.ID != "" {
			s.discard(c, claims.ID)
		}
		return myerrors.NewUnauthenticatedError(fmt.Sprintf("invalid session token: %s", err))
	}

	session, exists, err := s.store.Get(c, claims.ID)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error fetching session: %w", err))
	}
	if !exists {
		return myerrors.NewUnauthenticatedError("session not found")
	}
	if session.Shop != claims.Subject || s.expired(session, s.nower.Now()) {
		s.discard(c, claims.ID)
		return myerrors.NewUnauthenticatedError("session no longer valid")
	}

	return nil
}

func (s *serverSessions) expired(session Session, now time.Time) bool {
	return !now.Before(session.CreatedAt.Add(s.ttl))
}

func (s *serverSessions) discard(c context.Context, sessionUID string) {
	err := s.store.Delete(c, sessionUID)
	if err != nil {
		s.logger.Log(c, sessionUID, mylog.SeverityWarn, "Error deleting session %s: %s", sessionUID, err)
	}
}

// Purge deletes every session older than the ttl. Stores without native expiry depend on it.
func (s *serverSessions) Purge(c context.Context) (int, error) {
	sessions, err := s.store.List(c)
	if err != nil {
		return 0, fmt.Errorf("error listing sessions: %w", err)
	}

	purged := 0
	for _, candidate := range sessions {
		if !s.expired(candidate, s.nower.Now()) {
			continue
		}

		err = s.store.RunInTransaction(c, func(c context.Context) error {
			// must be idempotent

			session, exists, err := s.store.Get(c, candidate.UID)
			if err != nil {
				return err
			}
			if !exists || !s.expired(session, s.nower.Now()) {
				return nil
			}
			return s.store.Delete(c, session.UID)
		})
		if err != nil {
			return purged, fmt.Errorf("error purging session %s: %w", candidate.UID, err)
		}
		purged++
	}

	return purged, nil
}

// PurgeEvery runs Purge on every tick until c is cancelled.
func (s *serverSessions) PurgeEvery(c context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Done():
			return
		case <-ticker.C:
			purged, err := s.Purge(c)
			if err != nil {
				s.logger.Log(c, "", mylog.SeverityError, "Error purging sessions: %s", err)
				continue
			}
			if purged > 0 {
				s.logger.Log(c, "", mylog.SeverityInfo, "Purged %d expired sessions", purged)
			}
		}
	}
}
