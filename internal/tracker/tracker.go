// Package tracker implements the event-sourced activity ledger: a
// deduplicated record-event source, the pairing of recording/pause events
// into completed activities, the append-only command log reduced into the
// current activity collection, and the derived views the UI consumes.
//
// Every mutation — status change, command, tick, description update,
// reload — runs under one lock and fully recomputes and publishes the
// derived views before the next mutation is admitted, so all observers see
// one consistent total order.
package tracker

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/punchcard/internal/model"
	"github.com/Tiliavir/punchcard/internal/timecalc"
)

// Storage is the persistence port the tracker writes through: a full
// activity snapshot per command-log mutation plus the last record event.
type Storage interface {
	SaveActivities(activities []model.Activity) error
	LoadActivities() ([]model.Activity, error)
	LoadCommands() ([]model.Command, error)
	SaveLastEvent(event model.RecordEvent) error
	LoadLastEvent() (*model.RecordEvent, error)
}

// TickInterval is the period of the timer driving the elapsed-time and
// blink streams.
const TickInterval = time.Second

// Option customizes a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for snapshot-save failures and clock
// anomalies. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Tracker) { t.log = log }
}

// WithClock overrides the time source. Tests use this to make pairing
// deterministic.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// Tracker is the core service. Construct it with New and, for long-lived
// processes, drive the ticker streams with Run.
type Tracker struct {
	mu          sync.Mutex
	storage     Storage
	log         zerolog.Logger
	now         func() time.Time
	lastEvent   model.RecordEvent
	description string
	commands    []model.Command
	tickIndex   uint64
	descCancel  chan struct{}

	events        *stream[model.RecordEvent]
	activities    *stream[[]model.Activity]
	descriptions  *stream[[]string]
	byDay         *stream[[]model.DailyActivities]
	recording     *stream[bool]
	recordingTime *stream[int64]
	blink         *stream[bool]
}

// New builds a Tracker seeded from storage: the last persisted record event
// (or a default paused event) and the persisted activities wrapped as
// pass-through commands. Unreadable state degrades to empty; it never fails
// construction.
func New(storage Storage, opts ...Option) *Tracker {
	t := &Tracker{
		storage:       storage,
		log:           zerolog.Nop(),
		now:           time.Now,
		events:        newStream[model.RecordEvent](),
		activities:    newStream[[]model.Activity](),
		descriptions:  newStream[[]string](),
		byDay:         newStream[[]model.DailyActivities](),
		recording:     newStream[bool](),
		recordingTime: newStream[int64](),
		blink:         newStream[bool](),
	}
	for _, opt := range opts {
		opt(t)
	}

	event, err := storage.LoadLastEvent()
	if err != nil {
		t.log.Warn().Err(err).Msg("could not load last event, starting paused")
	}
	if event != nil {
		t.lastEvent = *event
	} else {
		t.lastEvent = model.DefaultEvent(t.now())
	}

	commands, err := storage.LoadCommands()
	if err != nil {
		t.log.Warn().Err(err).Msg("could not load activities, starting empty")
		commands = []model.Command{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.commands = commands
	t.events.publish(t.lastEvent)
	t.recording.publish(t.lastEvent.Status == model.StatusRecording)
	// The initial load step persists and publishes like every later fold step.
	t.applyLocked(model.Command{Type: model.CommandLoad})
	return t
}

// Run drives the periodic tick until ctx is done, then closes all streams.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.shutdown()
			return
		case <-ticker.C:
			t.tick()
		}
	}
}

// Start begins a recording session. It reports whether the status actually
// changed; a repeated start is suppressed and returns false.
func (t *Tracker) Start() bool {
	return t.setStatus(model.StatusRecording)
}

// Pause ends a recording session, completing the activity started by the
// matching recording event. A repeated pause is suppressed and returns false.
func (t *Tracker) Pause() bool {
	return t.setStatus(model.StatusPaused)
}

// setStatus is the event source: it drops same-status repeats, stamps the
// accepted change with the current time and the latest description, persists
// it, emits it, and feeds the two-event pairing window.
func (t *Tracker) setStatus(status model.Status) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.lastEvent.Status == status {
		return false
	}

	event := model.RecordEvent{Status: status, Date: t.now(), Description: t.description}
	if err := t.storage.SaveLastEvent(event); err != nil {
		t.log.Warn().Err(err).Msg("could not save last event, continuing in memory")
	}

	prev := t.lastEvent
	t.lastEvent = event
	t.events.publish(event)
	t.recording.publish(status == model.StatusRecording)

	// Pairing window: a recording event followed by a pause event completes
	// one activity. Checked explicitly even though the dedupe above already
	// forces alternating statuses.
	if prev.Status == model.StatusRecording && event.Status == model.StatusPaused {
		activity := t.pairActivity(prev, event)
		t.applyLocked(model.Command{Type: model.CommandAdd, Activity: &activity, Date: activity.Day})
	}
	return true
}

// pairActivity builds the completed Activity for a recording/pause event
// pair. A negative duration can only come from a clock or ordering fault; it
// is clamped to zero and logged, keeping the raw timestamps on the interval.
func (t *Tracker) pairActivity(from, to model.RecordEvent) model.Activity {
	total := to.Date.Sub(from.Date).Milliseconds()
	if total < 0 {
		t.log.Warn().
			Time("from", from.Date).
			Time("to", to.Date).
			Msg("pause precedes its recording event, clamping duration to zero")
		total = 0
	}
	end := to.Date
	return model.Activity{
		UID:         timecalc.NewID(),
		Description: strings.ToUpper(from.Description),
		Day:         timecalc.Day(from.Date),
		Month:       timecalc.MonthLabel(from.Date),
		Interval: model.TimeInterval{
			From:      from.Date,
			To:        &end,
			Completed: true,
			TotalTime: total,
		},
	}
}

// SetDescription records the live description combined with the next
// accepted status change.
func (t *Tracker) SetDescription(description string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.description = description
}

// SetDescriptionStream rebinds the live description source. The previous
// binding is cancelled first so at most one stream feeds the tracker and a
// stale binding cannot leak values in.
func (t *Tracker) SetDescriptionStream(descriptions <-chan string) {
	t.mu.Lock()
	if t.descCancel != nil {
		close(t.descCancel)
	}
	cancel := make(chan struct{})
	t.descCancel = cancel
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-cancel:
				return
			case description, ok := <-descriptions:
				if !ok {
					return
				}
				t.SetDescription(description)
			}
		}
	}()
}

// AddActivity appends an add command for the given activity.
func (t *Tracker) AddActivity(activity model.Activity) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.applyLocked(model.Command{Type: model.CommandAdd, Activity: &activity, Date: activity.Day})
}

// DeleteActivity removes the activity with the given id. Deleting an unknown
// id is a no-op.
func (t *Tracker) DeleteActivity(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.applyLocked(model.Command{Type: model.CommandDelete, Activity: &model.Activity{UID: id}})
}

// DeleteDescriptionsInADay removes all activities on the given day carrying
// the given description. Activities store descriptions upper-cased, so the
// argument is upper-cased before matching.
func (t *Tracker) DeleteDescriptionsInADay(date time.Time, description string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.applyLocked(model.Command{Type: model.CommandDeleteByDescription, Date: date, Description: strings.ToUpper(description)})
}

// DeleteAllInADay removes all activities on the given day.
func (t *Tracker) DeleteAllInADay(date time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.applyLocked(model.Command{Type: model.CommandDeleteAllByDay, Date: date})
}

// DeleteAll removes every activity.
func (t *Tracker) DeleteAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.applyLocked(model.Command{Type: model.CommandDeleteAll})
}

// Reload replaces the command log with the persisted snapshot and
// republishes the derived views without saving, so reacting to an external
// write can never cause a write of its own.
func (t *Tracker) Reload() error {
	commands, err := t.storage.LoadCommands()
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commands = commands
	t.publishViewsLocked()
	return nil
}

// applyLocked folds one command into the log, persists the resulting
// snapshot and republishes the derived views. Callers hold t.mu.
func (t *Tracker) applyLocked(cmd model.Command) {
	t.commands = reduce(t.commands, cmd)
	if err := t.storage.SaveActivities(project(t.commands)); err != nil {
		t.log.Warn().Err(err).Msg("could not save activity snapshot, continuing in memory")
	}
	t.publishViewsLocked()
}

func (t *Tracker) publishViewsLocked() {
	activities := project(t.commands)
	t.activities.publish(activities)
	t.descriptions.publish(distinctDescriptions(activities))
	t.byDay.publish(groupByDay(activities))
}

// tick advances the timer-driven streams. Elapsed time is only emitted while
// the current status is recording; blink is true on even ticks while
// recording.
func (t *Tracker) tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	isRecording := t.lastEvent.Status == model.StatusRecording
	t.blink.publish(isRecording && t.tickIndex%2 == 0)
	if isRecording {
		t.recordingTime.publish(t.now().Sub(t.lastEvent.Date).Milliseconds())
	}
	t.tickIndex++
}

func (t *Tracker) shutdown() {
	t.mu.Lock()
	if t.descCancel != nil {
		close(t.descCancel)
		t.descCancel = nil
	}
	t.mu.Unlock()
	t.events.shutdown()
	t.activities.shutdown()
	t.descriptions.shutdown()
	t.byDay.shutdown()
	t.recording.shutdown()
	t.recordingTime.shutdown()
	t.blink.shutdown()
}

// Activities returns the current activity collection.
func (t *Tracker) Activities() []model.Activity {
	v, _ := t.activities.latest()
	return v
}

// Descriptions returns the unique descriptions in first-seen order.
func (t *Tracker) Descriptions() []string {
	v, _ := t.descriptions.latest()
	return v
}

// ActivitiesByDay returns the per-day grouping, ascending by day.
func (t *Tracker) ActivitiesByDay() []model.DailyActivities {
	v, _ := t.byDay.latest()
	return v
}

// IsRecording reports whether the latest event has recording status.
func (t *Tracker) IsRecording() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastEvent.Status == model.StatusRecording
}

// LastEvent returns the most recent record event.
func (t *Tracker) LastEvent() model.RecordEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastEvent
}

// Elapsed returns the time since the last recording event in milliseconds,
// or zero while paused.
func (t *Tracker) Elapsed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastEvent.Status != model.StatusRecording {
		return 0
	}
	return t.now().Sub(t.lastEvent.Date).Milliseconds()
}

// SubscribeEvents streams the record events, replaying the latest one.
func (t *Tracker) SubscribeEvents() (<-chan model.RecordEvent, func()) {
	return t.events.subscribe()
}

// SubscribeActivities streams the activity collection on every change.
func (t *Tracker) SubscribeActivities() (<-chan []model.Activity, func()) {
	return t.activities.subscribe()
}

// SubscribeIsRecording streams the recording status projection.
func (t *Tracker) SubscribeIsRecording() (<-chan bool, func()) {
	return t.recording.subscribe()
}

// SubscribeRecordingTime streams the elapsed recording time, once per tick,
// only while recording.
func (t *Tracker) SubscribeRecordingTime() (<-chan int64, func()) {
	return t.recordingTime.subscribe()
}

// SubscribeBlink streams the blink cue: true on even ticks while recording.
func (t *Tracker) SubscribeBlink() (<-chan bool, func()) {
	return t.blink.subscribe()
}
