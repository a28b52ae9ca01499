package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Common errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrEntryNotFound       = errors.New("journal entry not found")
	ErrItemNotFound        = errors.New("collection item not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrValidation          = errors.New("validation failed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrTaskActive          = errors.New("another task is already in progress")
	ErrTaskCompleted       = errors.New("task is already completed for today")
	ErrInvalidTaskState    = errors.New("invalid task state for this transition")
	ErrTargetNotReached    = errors.New("task target duration not reached")
	ErrDayAlreadyCompleted = errors.New("journey day is already completed")
	ErrJourneyFinished     = errors.New("journey is already finished")
	ErrPreconditionNotMet  = errors.New("day completion criteria not met")
	ErrNegativeDelta       = errors.New("activity deltas must be non-negative")
	ErrTranslationFailed   = errors.New("translation service unavailable")
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// JourneyLength is the number of program days in one journey.
const JourneyLength = 30

// TaskStatus is the per-day lifecycle state of a daily task.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusPaused     TaskStatus = "paused"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusPaused, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

type AchievementCategory string

const (
	AchievementCategoryMilestone AchievementCategory = "milestone"
	AchievementCategorySpecial   AchievementCategory = "special"
)

type CategoryKind string

const (
	CategoryKindVocabulary CategoryKind = "vocabulary"
	CategoryKindPhrase     CategoryKind = "phrase"
	CategoryKindNote       CategoryKind = "note"
)

func (ck CategoryKind) IsValid() bool {
	switch ck {
	case CategoryKindVocabulary, CategoryKindPhrase, CategoryKindNote:
		return true
	default:
		return false
	}
}

// User is the single account this personal app serves.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	NativeLang   string    `json:"native_lang" db:"native_lang"`
	TargetLang   string    `json:"target_lang" db:"target_lang"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ActivityDay is the per-date activity ledger row. Counters only ever grow
// within a day; a new calendar date gets a fresh row on first activity.
type ActivityDay struct {
	Date             time.Time `json:"date" db:"activity_date"`
	MinutesPracticed int       `json:"minutes_practiced" db:"minutes_practiced"`
	EntriesWritten   int       `json:"entries_written" db:"entries_written"`
	WordsLearned     int       `json:"words_learned" db:"words_learned"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// ActivityDelta is an additive update to one ledger row.
type ActivityDelta struct {
	Minutes int `json:"minutes_practiced"`
	Entries int `json:"journal_entries"`
	Words   int `json:"vocabulary_added"`
}

func (d ActivityDelta) Validate() error {
	if d.Minutes < 0 || d.Entries < 0 || d.Words < 0 {
		return ErrNegativeDelta
	}
	return nil
}

func (d ActivityDelta) IsZero() bool {
	return d.Minutes == 0 && d.Entries == 0 && d.Words == 0
}

// JourneyState is the singleton 30-day progression record. CompletedDays only
// grows; CurrentDay is always the smallest slot not yet completed, capped at
// JourneyLength+1 which means "finished". LastCompletedDate records the
// calendar date that completed the most recent day, so a retried submission
// on the same date cannot advance the journey twice.
type JourneyState struct {
	ID                int           `json:"-" db:"id"`
	StartDate         time.Time     `json:"start_date" db:"start_date"`
	CurrentDay        int           `json:"current_day" db:"current_day"`
	CompletedDays     pq.Int64Array `json:"completed_days" db:"completed_days"`
	LastCompletedDate *time.Time    `json:"last_completed_date" db:"last_completed_date"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}

// CompletedOn reports whether the given calendar date already completed a
// journey day.
func (js *JourneyState) CompletedOn(date time.Time) bool {
	return js.LastCompletedDate != nil && DateOf(*js.LastCompletedDate).Equal(DateOf(date))
}

// NewJourneyState returns a fresh journey starting at the given date.
func NewJourneyState(startDate time.Time) *JourneyState {
	return &JourneyState{
		ID:            1,
		StartDate:     startDate,
		CurrentDay:    1,
		CompletedDays: pq.Int64Array{},
	}
}

func (js *JourneyState) IsDayCompleted(day int) bool {
	for _, d := range js.CompletedDays {
		if int(d) == day {
			return true
		}
	}
	return false
}

func (js *JourneyState) Finished() bool {
	return js.CurrentDay > JourneyLength
}

// MarkCompleted records the day and recomputes CurrentDay. Returns
// ErrDayAlreadyCompleted without mutating state on a duplicate call.
func (js *JourneyState) MarkCompleted(day int) error {
	if day < 1 || day > JourneyLength {
		return ErrValidation
	}
	if js.IsDayCompleted(day) {
		return ErrDayAlreadyCompleted
	}
	js.CompletedDays = append(js.CompletedDays, int64(day))
	js.CurrentDay = js.nextOpenDay()
	return nil
}

func (js *JourneyState) nextOpenDay() int {
	for day := 1; day <= JourneyLength; day++ {
		if !js.IsDayCompleted(day) {
			return day
		}
	}
	return JourneyLength + 1
}

// PercentComplete reports journey progress in whole percents.
func (js *JourneyState) PercentComplete() int {
	return len(js.CompletedDays) * 100 / JourneyLength
}

// DailyTask is one entry of the fixed per-day task catalog.
type DailyTask struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	TargetMinutes int    `json:"target_minutes"`
}

func (t DailyTask) TargetDuration() time.Duration {
	return time.Duration(t.TargetMinutes) * time.Minute
}

// TaskState is the per-task-per-day timer record. Elapsed time is always
// derived from wall clock (StartedAtMS) plus the accumulated seconds captured
// on pause, never from counting ticks.
type TaskState struct {
	TaskID             string     `json:"task_id" db:"task_id"`
	Day                time.Time  `json:"day" db:"day"`
	Status             TaskStatus `json:"status" db:"status"`
	StartedAtMS        *int64     `json:"started_at_ms" db:"started_at_ms"`
	AccumulatedSeconds int64      `json:"accumulated_seconds" db:"accumulated_seconds"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// NewTaskState returns the implicit not_started record for a task on a day.
func NewTaskState(taskID string, day time.Time) *TaskState {
	return &TaskState{
		TaskID: taskID,
		Day:    day,
		Status: TaskStatusNotStarted,
	}
}

// ElapsedSeconds reports active time as of now, excluding paused intervals.
func (ts *TaskState) ElapsedSeconds(now time.Time) int64 {
	switch ts.Status {
	case TaskStatusInProgress:
		if ts.StartedAtMS == nil {
			return ts.AccumulatedSeconds
		}
		return (now.UnixMilli() - *ts.StartedAtMS) / 1000
	default:
		return ts.AccumulatedSeconds
	}
}

// Start transitions not_started -> in_progress. Mutual exclusion with other
// running tasks is the caller's responsibility.
func (ts *TaskState) Start(now time.Time) error {
	if ts.Status == TaskStatusCompleted {
		return ErrTaskCompleted
	}
	if ts.Status != TaskStatusNotStarted {
		return ErrInvalidTaskState
	}
	ms := now.UnixMilli()
	ts.StartedAtMS = &ms
	ts.Status = TaskStatusInProgress
	return nil
}

// Pause snapshots elapsed time and transitions in_progress -> paused.
func (ts *TaskState) Pause(now time.Time) error {
	if ts.Status != TaskStatusInProgress {
		return ErrInvalidTaskState
	}
	ts.AccumulatedSeconds = ts.ElapsedSeconds(now)
	ts.StartedAtMS = nil
	ts.Status = TaskStatusPaused
	return nil
}

// Resume rebases the start epoch so elapsed math continues seamlessly.
func (ts *TaskState) Resume(now time.Time) error {
	if ts.Status != TaskStatusPaused {
		return ErrInvalidTaskState
	}
	ms := now.UnixMilli() - ts.AccumulatedSeconds*1000
	ts.StartedAtMS = &ms
	ts.Status = TaskStatusInProgress
	return nil
}

// Complete finishes the task once elapsed active time has reached the target.
func (ts *TaskState) Complete(now time.Time, target time.Duration) error {
	if ts.Status == TaskStatusCompleted {
		return ErrTaskCompleted
	}
	if ts.Status != TaskStatusInProgress && ts.Status != TaskStatusPaused {
		return ErrInvalidTaskState
	}
	if time.Duration(ts.ElapsedSeconds(now))*time.Second < target {
		return ErrTargetNotReached
	}
	ts.AccumulatedSeconds = ts.ElapsedSeconds(now)
	ts.StartedAtMS = nil
	ts.Status = TaskStatusCompleted
	return nil
}

// Achievement is a static catalog entry. Unlock state is never stored: an
// achievement is unlocked iff its MilestoneDay is in JourneyState's
// completed set.
type Achievement struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Icon         string              `json:"icon"`
	Category     AchievementCategory `json:"category"`
	MilestoneDay int                 `json:"milestone_day,omitempty"`
}

// Landmark is one slot of the 30-day journey map.
type Landmark struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Milestone   bool   `json:"milestone"`
}

// JournalEntry is a bilingual diary entry.
type JournalEntry struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	EntryDate   time.Time  `json:"entry_date" db:"entry_date"`
	Title       string     `json:"title" db:"title"`
	Content     string     `json:"content" db:"content"`
	Translation *string    `json:"translation" db:"translation"`
	SourceLang  string     `json:"source_lang" db:"source_lang"`
	TargetLang  string     `json:"target_lang" db:"target_lang"`
	Mood        *string    `json:"mood" db:"mood"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
}

// Category groups vocabulary, phrases and notes into folders.
type Category struct {
	ID        int          `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Kind      CategoryKind `json:"kind" db:"kind"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// VocabularyItem is one learned or to-learn word.
type VocabularyItem struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Term        string     `json:"term" db:"term"`
	Translation string     `json:"translation" db:"translation"`
	Notes       *string    `json:"notes" db:"notes"`
	CategoryID  *int       `json:"category_id" db:"category_id"`
	Learned     bool       `json:"learned" db:"learned"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
}

// Phrase is a saved expression with its translation.
type Phrase struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Text        string     `json:"text" db:"phrase_text"`
	Translation string     `json:"translation" db:"translation"`
	CategoryID  *int       `json:"category_id" db:"category_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD wire date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrValidation
	}
	return t, nil
}

// FormatDate renders a date in the YYYY-MM-DD wire format.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
