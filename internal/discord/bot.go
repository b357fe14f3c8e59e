// Package discord hosts the submission workflow on a discordgo
// session: it translates gateway events into workflow events, renders
// replies as embeds, and delivers verified submissions to the admin DM.
package discord

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"scriptsubmit/internal/archive"
	"scriptsubmit/internal/config"
	"scriptsubmit/internal/logbuf"
	"scriptsubmit/internal/workflow"
)

// statsInterval is how often the bot logs uptime and store counts.
const statsInterval = 30 * time.Minute

// ErrNotRunning is returned by Stop when no session is open.
var ErrNotRunning = errors.New("bot is not running")

// ErrAlreadyRunning is returned by Start when a session is open.
var ErrAlreadyRunning = errors.New("bot is already running")

// Bot owns one workflow and at most one live Discord session.
type Bot struct {
	cfg  *config.Config
	log  *logbuf.Recorder
	arch *archive.Store // optional
	wf   *workflow.Workflow

	// limiter throttles outbound channel sends so a burst of
	// submissions cannot trip Discord's per-channel limits.
	limiter *rate.Limiter

	mu      sync.Mutex
	session *discordgo.Session
	cancel  context.CancelFunc
	started time.Time
}

// New wires a bot around its workflow. arch may be nil to disable the
// delivery archive.
func New(cfg *config.Config, rec *logbuf.Recorder, arch *archive.Store) *Bot {
	b := &Bot{
		cfg:     cfg,
		log:     rec,
		arch:    arch,
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
	b.wf = workflow.New(workflow.DefaultCatalog(), &adminNotifier{bot: b})
	return b
}

// Workflow exposes the state machine for status surfaces.
func (b *Bot) Workflow() *workflow.Workflow {
	return b.wf
}

// Start opens the gateway session and begins sweeping. Idempotent
// callers get ErrAlreadyRunning.
func (b *Bot) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session != nil {
		return ErrAlreadyRunning
	}

	dg, err := discordgo.New("Bot " + b.cfg.Token)
	if err != nil {
		return err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go b.wf.RunSweeper(ctx, b.cfg.SweepInterval)
	go b.statsLoop(ctx)

	b.session = dg
	b.cancel = cancel
	b.started = time.Now()
	return nil
}

// Stop closes the session and halts the background loops.
func (b *Bot) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session == nil {
		return ErrNotRunning
	}
	b.cancel()
	err := b.session.Close()
	b.session = nil
	b.cancel = nil
	b.started = time.Time{}
	return err
}

// Running reports whether a session is open.
func (b *Bot) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session != nil
}

// Status describes the live session for the control panel.
type Status struct {
	Online      bool      `json:"online"`
	BotID       string    `json:"botId,omitempty"`
	Guilds      int       `json:"guilds"`
	StartTime   time.Time `json:"startTime,omitempty"`
	Submissions int       `json:"submissions"`
	Tasks       int       `json:"tasks"`
}

// Status snapshots the bot for the panel's status endpoint.
func (b *Bot) Status() Status {
	subs, tasks := b.wf.Stats()
	st := Status{Submissions: subs, Tasks: tasks}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session == nil {
		return st
	}
	st.Online = true
	st.StartTime = b.started
	if b.session.State != nil {
		if b.session.State.User != nil {
			st.BotID = b.session.State.User.Username
		}
		st.Guilds = len(b.session.State.Guilds)
	}
	return st
}

// currentSession returns the open session or ErrNotRunning.
func (b *Bot) currentSession() (*discordgo.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session == nil {
		return nil, ErrNotRunning
	}
	return b.session, nil
}

// sendThrottled posts a channel message through the shared limiter.
func (b *Bot) sendThrottled(s *discordgo.Session, channelID, content string) error {
	if err := b.limiter.Wait(context.Background()); err != nil {
		return err
	}
	_, err := s.ChannelMessageSend(channelID, content)
	return err
}

// statsLoop periodically logs uptime and live workflow counts.
func (b *Bot) statsLoop(ctx context.Context) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			st := b.Status()
			if !st.Online {
				continue
			}
			up := time.Since(st.StartTime).Round(time.Minute)
			b.log.Infof("uptime %s | guilds %d | submissions %d", up, st.Guilds, st.Submissions)
		case <-ctx.Done():
			return
		}
	}
}
