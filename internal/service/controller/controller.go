package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/clock"
	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

var (
	// ErrValidation wraps every rejected user input.
	ErrValidation = errors.New("invalid input")
	// ErrDuplicate is returned when the alarm is already pending.
	ErrDuplicate = errors.New("alarm already set")
	// ErrNotFound is returned when deleting an alarm that is not pending.
	ErrNotFound = errors.New("alarm not found")
)

// Deps are the collaborators a Controller is built from.
type Deps struct {
	// Repository persists the alarm list. Nil disables persistence.
	Repository Repository
	// Player plays the alarm sound. Nil means a silent player.
	Player Player
	// Clock is the time source. Nil means the system clock.
	Clock clock.Clock
	// Location is the initial timezone. Nil means clock.DefaultZone.
	Location *time.Location
	// SoundFile is passed to the player when an alarm fires.
	SoundFile string
}

// Snapshot is a consistent view of the controller state for renderers.
type Snapshot struct {
	// Time is the current time in the selected zone.
	Time time.Time
	// Timezone is the selected zone name.
	Timezone string
	// Alarms are the pending alarms in registry order.
	Alarms []string
	// Playing is set from the moment an alarm fires until StopAlarm.
	Playing bool
	// Fired is the alarm that fired last, if it is still ringing.
	Fired string
}

// Controller serialises every operation on the alarm registry.
type Controller struct {
	// registry holds the pending alarms.
	registry *alarm.Registry
	// repo persists the registry after each change.
	repo Repository
	// player plays the alarm sound.
	player Player
	// clock reports the current instant.
	clock clock.Clock
	// location is the selected timezone.
	location *time.Location
	// soundFile is the sound played when an alarm fires.
	soundFile string
	// ringing is set while a fired alarm has not been stopped.
	ringing bool
	// fired is the value of the ringing alarm.
	fired string
	// mu serialises access to the fields above.
	mu sync.Mutex
}

// New builds a controller and loads the persisted alarms into the registry.
// Load failures and malformed entries are logged and skipped so the clock
// always starts.
func New(ctx context.Context, deps Deps) *Controller {
	c := &Controller{
		registry:  alarm.NewRegistry(),
		repo:      deps.Repository,
		player:    deps.Player,
		clock:     deps.Clock,
		location:  deps.Location,
		soundFile: deps.SoundFile,
	}

	if c.player == nil {
		c.player = nopPlayer{}
	}

	if c.clock == nil {
		c.clock = clock.SystemClock{}
	}

	if c.location == nil {
		loc, err := clock.LoadZone(clock.DefaultZone)
		if err != nil {
			loc = time.UTC
		}

		c.location = loc
	}

	if c.repo == nil {
		return c
	}

	values, err := c.repo.Load(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "Failed to load alarms, starting empty", "error", err)

		return c
	}

	for _, value := range values {
		if _, _, _, err = alarm.Parse(value); err != nil {
			logger.WarnKV(ctx, "Skipping malformed alarm", "alarm", value, "error", err)

			continue
		}

		c.registry.Append(value)
	}

	logger.InfoKV(ctx, "Alarms loaded", "count", c.registry.Len())

	return c
}

// SetAlarm validates the parts, appends the canonical value and persists it.
func (c *Controller) SetAlarm(ctx context.Context, hour, minute int, meridiem string) (string, error) {
	value, err := alarm.Format(hour, minute, meridiem)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.registry.Contains(value) {
		return "", fmt.Errorf("%w: %s", ErrDuplicate, value)
	}

	c.registry.Append(value)
	c.persist(ctx)

	logger.InfoKV(ctx, "Alarm set", "alarm", value)

	return value, nil
}

// DeleteAlarm removes a pending alarm and persists the list.
func (c *Controller) DeleteAlarm(ctx context.Context, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.registry.Remove(value) {
		return fmt.Errorf("%w: %q", ErrNotFound, value)
	}

	c.persist(ctx)

	logger.InfoKV(ctx, "Alarm deleted", "alarm", value)

	return nil
}

// StopAlarm halts the sound and re-arms the poll tick.
func (c *Controller) StopAlarm(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	wasRinging := c.ringing
	c.ringing = false
	c.fired = ""

	if c.player.Playing() {
		if err := c.player.Stop(); err != nil {
			logger.ErrorKV(ctx, "Failed to stop alarm sound", "error", err)

			return fmt.Errorf("stop sound: %w", err)
		}
	}

	if wasRinging {
		logger.Info(ctx, "Alarm stopped")
	}

	return nil
}

// Alarms returns the pending alarms in registry order.
func (c *Controller) Alarms() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.registry.Values()
}

// SetTimezone switches the zone used for display and matching.
func (c *Controller) SetTimezone(ctx context.Context, name string) error {
	loc, err := clock.LoadZone(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.location = loc

	logger.InfoKV(ctx, "Timezone changed", "timezone", loc.String())

	return nil
}

// Timezone returns the selected zone name.
func (c *Controller) Timezone() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.location.String()
}

// Snapshot returns the current state for display.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Time:     c.now(),
		Timezone: c.location.String(),
		Alarms:   c.registry.Values(),
		Playing:  c.ringing,
		Fired:    c.fired,
	}
}

// Tick compares the current time with the pending alarms. The first match
// fires unless an alarm is already ringing: the sound starts, the alarm is
// removed and the list is persisted. It returns the fired alarm.
// A sound failure is logged and the alarm still fires silently.
func (c *Controller) Tick(ctx context.Context) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ringing {
		return "", false
	}

	var (
		current = alarm.FromTime(c.now())
		fired   string
	)

	c.registry.Each(func(value string) bool {
		if alarm.Matches(current, value) {
			fired = value

			return false
		}

		return true
	})

	if fired == "" {
		return "", false
	}

	if err := c.player.Play(ctx, c.soundFile); err != nil {
		logger.ErrorKV(ctx, "Failed to play alarm sound", "alarm", fired, "sound_file", c.soundFile, "error", err)
	}

	c.ringing = true
	c.fired = fired
	c.registry.Remove(fired)
	c.persist(ctx)

	logger.InfoKV(ctx, "Alarm fired", "alarm", fired, "timezone", c.location.String())

	return fired, true
}

// Run ticks every interval until ctx is canceled, calling observe (if set)
// with a fresh snapshot after every tick.
func (c *Controller) Run(ctx context.Context, interval time.Duration, observe func(Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, ok := c.Tick(ctx); ok {
			logger.Info(ctx, "It's time!")
		}

		if observe != nil {
			observe(c.Snapshot())
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// now returns the current time in the selected zone. Callers hold mu.
func (c *Controller) now() time.Time {
	return c.clock.Now().In(c.location)
}

// persist saves the registry. Failures are logged and do not undo the change.
func (c *Controller) persist(ctx context.Context) {
	if c.repo == nil {
		return
	}

	if err := c.repo.Save(ctx, c.registry.Values()); err != nil {
		logger.ErrorKV(ctx, "Failed to persist alarms", "error", err)
	}
}

// nopPlayer is the silent default player.
type nopPlayer struct{}

// Play does nothing.
func (nopPlayer) Play(context.Context, string) error { return nil }

// Stop does nothing.
func (nopPlayer) Stop() error { return nil }

// Playing is always false.
func (nopPlayer) Playing() bool { return false }
