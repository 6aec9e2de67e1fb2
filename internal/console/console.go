// Package console holds the operator console state: the configuration draft,
// connection flags, the simulated contact/message feed and its timers.
//
// Every exported operation is one atomic transition under c.mu. Outbound calls
// run without the lock and events are published after it is released.
package console

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"whatsapp-console/internal/probe"
	"whatsapp-console/internal/scheduler"
	"whatsapp-console/internal/settings"
	"whatsapp-console/internal/whatsapp"
	"whatsapp-console/pkg/models"
)

type GraphClient interface {
	GetPhoneNumber(ctx context.Context, phoneNumberID, token string) (*whatsapp.PhoneNumber, error)
}

type Prober interface {
	Webhook(ctx context.Context, url string) (probe.Result, error)
	N8n(ctx context.Context, url string) (probe.Result, error)
	Backend(ctx context.Context, baseURL string) (probe.Result, error)
}

type ReplyGenerator interface {
	GenerateReply(ctx context.Context, apiKey, prompt string) (string, error)
}

type Notifier interface {
	BroadcastEvent(eventType string, data interface{})
}

const (
	EventNewMessage    = "new_message"
	EventMessageStatus = "message_status"
	EventChatReset     = "chat_reset"
	EventConnection    = "connection"
)

type Options struct {
	SimulationInterval time.Duration
	DeliveredDelay     time.Duration
	ReadDelay          time.Duration
	AIKey              string

	Logger   *slog.Logger
	Notifier Notifier
	Now      func() time.Time
	Rand     *rand.Rand
}

type Console struct {
	store    settings.Store
	graph    GraphClient
	prober   Prober
	ai       ReplyGenerator
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	rng      *rand.Rand

	deliveredDelay time.Duration
	readDelay      time.Duration

	simMu sync.Mutex
	sim   *scheduler.Scheduler

	mu            sync.Mutex
	authenticated bool
	draft         models.APIConfig
	configSaved   bool
	apiStatus     models.APIStatus
	conn          models.ConnectionStatus
	connected     bool
	connecting    bool
	aiKey         string
	contacts      []models.Contact
	messages      []models.Message
	selectedID    int64
	lastID        int64

	// generation changes on every chat reset; timers from an older generation are ignored
	generation uint64
	timerSeq   uint64
	timers     map[uint64]*time.Timer
}

type event struct {
	typ  string
	data interface{}
}

func New(store settings.Store, graph GraphClient, prober Prober, gen ReplyGenerator, opts Options) (*Console, error) {
	c := &Console{
		store:          store,
		graph:          graph,
		prober:         prober,
		ai:             gen,
		notifier:       opts.Notifier,
		logger:         opts.Logger,
		now:            opts.Now,
		rng:            opts.Rand,
		deliveredDelay: opts.DeliveredDelay,
		readDelay:      opts.ReadDelay,
		draft:          models.DefaultAPIConfig(),
		aiKey:          opts.AIKey,
		timers:         make(map[uint64]*time.Timer),
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With(slog.String("component", "console"))
	if c.now == nil {
		c.now = time.Now
	}
	if c.rng == nil {
		seed := uint64(time.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if c.deliveredDelay <= 0 {
		c.deliveredDelay = time.Second
	}
	if c.readDelay <= 0 {
		c.readDelay = 2 * time.Second
	}
	interval := opts.SimulationInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	c.apiStatus = c.defaultAPIStatus()

	sim, err := scheduler.New(interval, c.simulateIncoming, c.logger.With(slog.String("task", "simulator")))
	if err != nil {
		return nil, err
	}
	c.sim = sim
	return c, nil
}

// Close stops the simulator and every pending status timer.
func (c *Console) Close() {
	c.mu.Lock()
	c.stopTimersLocked()
	c.mu.Unlock()

	c.simMu.Lock()
	c.sim.Stop()
	c.simMu.Unlock()
}

// SimulatorRunning reports whether the inbound message simulator is active.
func (c *Console) SimulatorRunning() bool {
	return c.sim.IsRunning()
}

// OnLogin starts an operator session: chats are cleared, any live connection
// is dropped and the saved configuration, if any, becomes the draft.
func (c *Console) OnLogin(ctx context.Context) {
	c.mu.Lock()
	c.authenticated = true
	c.resetChatLocked()
	c.dropConnectionLocked()
	snap := c.connectionSnapshotLocked()
	c.mu.Unlock()

	c.syncSimulator()
	c.emit(event{EventChatReset, nil}, event{EventConnection, snap})

	saved, err := c.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, settings.ErrNotFound) {
			c.logger.Error("error loading saved configuration", "error", err)
		}
		return
	}

	c.mu.Lock()
	c.draft = saved.APIConfig
	c.configSaved = true
	c.apiStatus.PhoneNumber = phoneOrNotConnected(saved.PhoneNumberID)
	c.mu.Unlock()
}

// OnLogout clears all session state.
func (c *Console) OnLogout() {
	c.mu.Lock()
	c.authenticated = false
	c.resetChatLocked()
	c.apiStatus = c.defaultAPIStatus()
	c.connected = false
	c.configSaved = false
	c.conn = models.ConnectionStatus{}
	c.mu.Unlock()

	c.syncSimulator()
	c.emit(event{EventChatReset, nil}, event{EventConnection, c.connectionSnapshot()})
}

// dropConnectionLocked marks the WhatsApp connection down. Probe results are kept.
func (c *Console) dropConnectionLocked() {
	c.connected = false
	c.conn.WhatsApp = false
	c.apiStatus.Online = false
	c.apiStatus.APIConnected = false
}

func (c *Console) defaultAPIStatus() models.APIStatus {
	return models.APIStatus{PhoneNumber: models.NotConnected, LastSync: c.now()}
}

// resetChatLocked drops contacts, messages, the selection and pending timers.
func (c *Console) resetChatLocked() {
	c.contacts = nil
	c.messages = nil
	c.selectedID = 0
	c.generation++
	c.stopTimersLocked()
}

func (c *Console) stopTimersLocked() {
	for key, t := range c.timers {
		t.Stop()
		delete(c.timers, key)
	}
}

// nextIDLocked returns a millisecond-clock id that is strictly greater than the last one.
func (c *Console) nextIDLocked(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

func (c *Console) contactIndexLocked(id int64) int {
	for i := range c.contacts {
		if c.contacts[i].ID == id {
			return i
		}
	}
	return -1
}

// syncSimulator runs the simulator exactly while a session is connected.
func (c *Console) syncSimulator() {
	c.simMu.Lock()
	defer c.simMu.Unlock()

	c.mu.Lock()
	want := c.authenticated && c.connected
	c.mu.Unlock()

	if want {
		c.sim.Start()
	} else {
		c.sim.Stop()
	}
}

func (c *Console) emit(events ...event) {
	if c.notifier == nil {
		return
	}
	for _, ev := range events {
		c.notifier.BroadcastEvent(ev.typ, ev.data)
	}
}

func phoneOrNotConnected(phone string) string {
	if phone == "" {
		return models.NotConnected
	}
	return phone
}
