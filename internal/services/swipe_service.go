// internal/services/swipe_service.go
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/storyboardapp/backend/internal/config"
	"github.com/storyboardapp/backend/internal/models"
	"github.com/storyboardapp/backend/internal/stores"
)

const stackDepth = 3

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNotCurrent    = errors.New("asset is not the current card")
	ErrStackEmpty    = errors.New("swipe stack is empty")
)

// StackView is the wallet's visible slice of the swipe session: the top
// cards for layered rendering (only the frontmost is interactive) plus
// progress counters.
type StackView struct {
	Cards     []models.Asset `json:"cards"`
	Remaining int            `json:"remaining"`
	Total     int            `json:"total"`
	HasMore   bool           `json:"has_more"`
	Empty     bool           `json:"empty"`
	CanUndo   bool           `json:"can_undo"`
}

// swipeSession tracks one wallet's position in the ordered feed and its
// recent decisions. The ring holds the last N actions for undo; older
// actions are evicted and become irreversible.
type swipeSession struct {
	index int
	ring  []models.SwipeAction
}

// SwipeService is the swipe stack state machine. Cards move pending →
// decided → consumed; a decision advances the index and only Undo moves it
// back. The service consumes the ordering the feed produces and tops the
// feed up when the remainder runs low.
type SwipeService struct {
	feed     *FeedService
	liked    *stores.LikedStore
	ringSize int

	mtx      sync.Mutex
	sessions map[string]*swipeSession
	log      *logrus.Entry
}

func NewSwipeService(feed *FeedService, liked *stores.LikedStore, cfg config.FeedConfig) *SwipeService {
	return &SwipeService{
		feed:     feed,
		liked:    liked,
		ringSize: cfg.SwipeHistorySize,
		sessions: make(map[string]*swipeSession),
		log:      logrus.WithField("component", "swipe"),
	}
}

func (s *SwipeService) session(walletAddress string) *swipeSession {
	if sess, ok := s.sessions[walletAddress]; ok {
		return sess
	}
	sess := &swipeSession{}
	s.sessions[walletAddress] = sess
	return sess
}

// Stack returns the wallet's current view and tops the feed up when fewer
// than the low-water mark of cards remain.
func (s *SwipeService) Stack(ctx context.Context, walletAddress string) (StackView, error) {
	snapshot := s.feed.Snapshot(walletAddress)

	s.mtx.Lock()
	sess := s.session(walletAddress)
	index := sess.index
	canUndo := len(sess.ring) > 0
	s.mtx.Unlock()

	remaining := len(snapshot.Assets) - index
	if remaining < 0 {
		remaining = 0
	}

	// Top the feed up before rendering so exhaustion is handled in the same
	// request rather than one request late.
	if err := s.feed.EnsureAvailable(ctx, walletAddress, remaining); err != nil {
		s.log.WithError(err).Warn("Feed top-up failed")
	} else {
		snapshot = s.feed.Snapshot(walletAddress)
		remaining = len(snapshot.Assets) - index
		if remaining < 0 {
			remaining = 0
		}
	}

	view := StackView{
		Remaining: remaining,
		Total:     len(snapshot.Assets),
		HasMore:   snapshot.HasMore,
		Empty:     remaining == 0,
		CanUndo:   canUndo,
	}

	if remaining > 0 {
		depth := stackDepth
		if remaining < depth {
			depth = remaining
		}
		view.Cards = snapshot.Assets[index : index+depth]
	}

	return view, nil
}

// Decide records a like or skip for the frontmost card and consumes it. The
// decision is terminal for the card; only Undo can reverse it. A like also
// adds the asset to the liked collection, idempotently.
func (s *SwipeService) Decide(ctx context.Context, walletAddress, assetID string, kind models.SwipeKind) (StackView, error) {
	snapshot := s.feed.Snapshot(walletAddress)

	s.mtx.Lock()
	sess := s.session(walletAddress)
	if sess.index >= len(snapshot.Assets) {
		s.mtx.Unlock()
		return StackView{}, ErrStackEmpty
	}

	current := snapshot.Assets[sess.index]
	if current.ID != assetID {
		s.mtx.Unlock()
		return StackView{}, ErrNotCurrent
	}

	sess.ring = append(sess.ring, models.SwipeAction{
		Kind:      kind,
		AssetID:   assetID,
		Timestamp: time.Now(),
	})
	if len(sess.ring) > s.ringSize {
		sess.ring = sess.ring[len(sess.ring)-s.ringSize:]
	}
	sess.index++
	s.mtx.Unlock()

	if kind == models.SwipeKindLike {
		if err := s.liked.Add(walletAddress, current); err != nil {
			return StackView{}, err
		}
	}

	s.log.WithFields(logrus.Fields{
		"wallet": walletAddress,
		"asset":  assetID,
		"kind":   kind,
	}).Debug("Swipe decided")

	return s.Stack(ctx, walletAddress)
}

// Undo reverses the most recent decision: the index regresses by one and a
// like is removed from the liked collection. A skip has no persisted side
// effect, so only the card position comes back. Strictly single-level per
// ring entry; an empty ring reports ErrNothingToUndo.
func (s *SwipeService) Undo(ctx context.Context, walletAddress string) (StackView, error) {
	s.mtx.Lock()
	sess := s.session(walletAddress)
	if len(sess.ring) == 0 {
		s.mtx.Unlock()
		return StackView{}, ErrNothingToUndo
	}

	last := sess.ring[len(sess.ring)-1]
	sess.ring = sess.ring[:len(sess.ring)-1]
	if sess.index > 0 {
		sess.index--
	}
	s.mtx.Unlock()

	if last.Kind == models.SwipeKindLike {
		if err := s.liked.Remove(walletAddress, last.AssetID); err != nil {
			return StackView{}, err
		}
	}

	return s.Stack(ctx, walletAddress)
}

// History returns the wallet's retained actions, most recent last.
func (s *SwipeService) History(walletAddress string) []models.SwipeAction {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sess := s.session(walletAddress)
	out := make([]models.SwipeAction, len(sess.ring))
	copy(out, sess.ring)
	return out
}

// Reset rewinds the wallet's session to the top of the ordering and clears
// the action ring. Persisted likes survive a reset.
func (s *SwipeService) Reset(walletAddress string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.sessions[walletAddress] = &swipeSession{}
}
