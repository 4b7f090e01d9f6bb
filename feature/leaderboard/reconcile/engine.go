package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"puzzle-leaderboard/feature/leaderboard/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine reconciles fetched snapshots against the result store and the chat channel.
// Passes are serialized: Tick and Reconcile never run concurrently.
type Engine struct {
	cfg       Config
	store     ResultStore
	transport Transport
	fetcher   Fetcher
	render    RenderFunc
	logger    *zap.Logger
	now       func() time.Time

	mu sync.Mutex
	// pending is the date whose message could not be posted after its scores were
	// committed. The next pass for that date posts even if nothing changed.
	pending *time.Time

	snapMu sync.RWMutex
	// current is the snapshot fetched by the running (or last) tick. Cleared at the
	// start of every tick.
	current *models.Snapshot
}

// NewEngine creates a reconciliation engine.
func NewEngine(cfg Config, store ResultStore, transport Transport, fetcher Fetcher, render RenderFunc, logger *zap.Logger) *Engine {
	if cfg.Lookback <= 0 {
		cfg.Lookback = DefaultLookback
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:       cfg,
		store:     store,
		transport: transport,
		fetcher:   fetcher,
		render:    render,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock replaces the time source used for the history look-back window.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Current returns the snapshot fetched by the last tick, or nil if the running tick has
// not fetched yet or the fetch failed.
func (e *Engine) Current() *models.Snapshot {
	e.snapMu.RLock()
	defer e.snapMu.RUnlock()
	return e.current
}

func (e *Engine) setCurrent(s *models.Snapshot) {
	e.snapMu.Lock()
	e.current = s
	e.snapMu.Unlock()
}

// Tick runs one full pass: fetch a fresh snapshot and reconcile it.
func (e *Engine) Tick(ctx context.Context) (*Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tickID := uuid.NewString()
	l := e.logger.With(zap.String("tick_id", tickID))

	e.setCurrent(nil)

	if e.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", ErrInvariant)
	}

	snap, err := e.fetcher.Fetch(ctx)
	if err != nil {
		return nil, wrap(ErrFetch, err)
	}
	e.setCurrent(snap)
	l.Debug("Fetched leaderboard", zap.Time("date", snap.Date()), zap.Int("participants", snap.Len()))

	out, err := e.reconcile(ctx, l, snap)
	if out != nil {
		out.TickID = tickID
	}
	return out, err
}

// Reconcile applies an already fetched snapshot.
func (e *Engine) Reconcile(ctx context.Context, snap *models.Snapshot) (*Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reconcile(ctx, e.logger, snap)
}

func (e *Engine) reconcile(ctx context.Context, l *zap.Logger, snap *models.Snapshot) (*Outcome, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrInvariant)
	}
	if e.store == nil || e.transport == nil || e.render == nil {
		return nil, fmt.Errorf("%w: engine is missing a collaborator", ErrInvariant)
	}

	date := snap.Date()

	// Must be read before the update: it is the previously known day.
	latest, err := e.store.MostRecentDate(ctx)
	if err != nil {
		return nil, wrap(ErrStore, err)
	}

	changed, err := e.store.UpdateScores(ctx, snap.Scores())
	if err != nil {
		return nil, wrap(ErrStore, err)
	}

	out := &Outcome{
		Action:       decide(latest, date, changed),
		Date:         date,
		Changed:      changed,
		Participants: snap.Len(),
	}

	if out.Action == ActionNone && e.pending != nil && e.pending.Equal(date) {
		l.Info("Retrying message that failed to post", zap.Time("date", date))
		out.Action = ActionUpdate
	}

	l.Info("Reconciled leaderboard",
		zap.String("action", string(out.Action)),
		zap.Time("date", date),
		zap.Int("changed", len(changed)),
	)

	if out.Action == ActionNone {
		return out, nil
	}

	if err := e.publish(ctx, l, snap, out); err != nil {
		e.pending = &date
		return out, err
	}
	e.pending = nil

	if snap.Complete() {
		if _, err := e.transport.Send(ctx, e.cfg.ChannelID, e.notification()); err != nil {
			return out, fmt.Errorf("%w: sending completion notification: %w", ErrTransport, err)
		}
		out.Notified = true
		l.Info("Sent completion notification", zap.Time("date", date))
	}

	return out, nil
}

// decide picks the action for a snapshot given the previously known day and the diff.
func decide(latest *time.Time, date time.Time, changed []models.ScoreRecord) ActionType {
	if latest == nil || !models.Day(*latest).Equal(date) {
		return ActionCreate
	}
	if len(changed) > 0 {
		return ActionUpdate
	}
	return ActionNone
}

// publish edits the day's message if it can be found, otherwise sends a new one.
func (e *Engine) publish(ctx context.Context, l *zap.Logger, snap *models.Snapshot, out *Outcome) error {
	content := e.render(snap.Date(), snap.Scores())

	existing, err := e.findMessage(ctx, snap.Date())
	if err != nil {
		return err
	}

	if existing != nil {
		msg, err := e.transport.Edit(ctx, e.cfg.ChannelID, existing.ID, content)
		if err != nil {
			return fmt.Errorf("%w: editing message %s: %w", ErrTransport, existing.ID, err)
		}
		out.Edited = true
		out.MessageID = messageID(msg, existing.ID)
		l.Info("Edited leaderboard message", zap.String("message_id", out.MessageID))
		return nil
	}

	msg, err := e.transport.Send(ctx, e.cfg.ChannelID, content)
	if err != nil {
		return fmt.Errorf("%w: sending message: %w", ErrTransport, err)
	}
	out.Sent = true
	out.MessageID = messageID(msg, "")
	l.Info("Sent leaderboard message", zap.String("message_id", out.MessageID))
	return nil
}

// findMessage scans the look-back window newest-first for the bot's message for date.
func (e *Engine) findMessage(ctx context.Context, date time.Time) (*Message, error) {
	self, err := e.transport.SelfID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving bot identity: %w", ErrTransport, err)
	}

	needle := models.FormatDate(date)
	after := e.now().Add(-e.cfg.Lookback)

	for msg, err := range e.transport.History(ctx, e.cfg.ChannelID, after) {
		if err != nil {
			return nil, fmt.Errorf("%w: reading channel history: %w", ErrTransport, err)
		}
		if msg.AuthorID == self && strings.Contains(msg.Content, needle) {
			return &msg, nil
		}
	}
	return nil, nil
}

func (e *Engine) notification() string {
	text := "everyone has finished today's puzzle! 🎉"
	if e.cfg.Mention == "" {
		return "Everyone has finished today's puzzle! 🎉"
	}
	return e.cfg.Mention + " " + text
}

func messageID(msg *Message, fallback string) string {
	if msg != nil && msg.ID != "" {
		return msg.ID
	}
	return fallback
}

// wrap tags err with kind unless it already carries it.
func wrap(kind, err error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
