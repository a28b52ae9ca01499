package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lingualog/core/internal/domain/entities"
)

// Translator is the outbound port for machine translation. Failures here
// never affect the activity ledger or journey progression.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// ActivityService records and reads the per-date activity ledger.
type ActivityService interface {
	RecordActivity(ctx context.Context, date time.Time, delta entities.ActivityDelta) (*entities.ActivityDay, error)
	GetActivity(ctx context.Context, date time.Time) (*entities.ActivityDay, error)
	GetStreak(ctx context.Context, today time.Time) (entities.Streak, error)
}

// TaskService drives the daily task timers.
type TaskService interface {
	ListToday(ctx context.Context) (*DailyTasksResponse, error)
	Start(ctx context.Context, taskID string) (*TaskStateResponse, error)
	Pause(ctx context.Context, taskID string) (*TaskStateResponse, error)
	Resume(ctx context.Context, taskID string) (*TaskStateResponse, error)
	Complete(ctx context.Context, taskID string) (*TaskStateResponse, error)
	AllCompleted(ctx context.Context, day time.Time) (bool, error)
}

// JourneyService owns the 30-day progression.
type JourneyService interface {
	Status(ctx context.Context) (*JourneyStatusResponse, error)
	CompleteDay(ctx context.Context, req CompleteDayRequest) (*CompleteDayResponse, error)
	Landmarks(ctx context.Context) ([]entities.Landmark, error)
	Achievements(ctx context.Context) ([]entities.AchievementWithStatus, error)
}

// Request/Response types

type UpdateActivityRequest struct {
	Date             *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	MinutesPracticed int     `json:"minutes_practiced" validate:"min=0"`
	JournalEntries   int     `json:"journal_entries" validate:"min=0"`
	VocabularyAdded  int     `json:"vocabulary_added" validate:"min=0"`
}

type CompleteDayRequest struct {
	Date             string `json:"date" validate:"required,datetime=2006-01-02"`
	MinutesPracticed int    `json:"minutes_practiced" validate:"min=0"`
	VocabularyAdded  int    `json:"vocabulary_added" validate:"min=0"`
}

type CompleteDayResponse struct {
	Accepted         bool                   `json:"accepted"`
	DayCompleted     bool                   `json:"day_completed"`
	NextDay          int                    `json:"next_day"`
	MilestoneReached bool                   `json:"milestone_reached"`
	Achievements     []entities.Achievement `json:"achievements_unlocked"`
	Reason           string                 `json:"reason,omitempty"`
}

type JourneyStatusResponse struct {
	CurrentDay      int                   `json:"current_day"`
	StartDate       string                `json:"start_date"`
	CompletedDays   []int                 `json:"completed_days"`
	PercentComplete int                   `json:"percent_complete"`
	Finished        bool                  `json:"finished"`
	TodayActivity   *entities.ActivityDay `json:"today_activity"`
	Streak          entities.Streak       `json:"streak"`
}

type TaskStateResponse struct {
	Task           entities.DailyTask  `json:"task"`
	Status         entities.TaskStatus `json:"status"`
	ElapsedSeconds int64               `json:"elapsed_seconds"`
	TargetSeconds  int64               `json:"target_seconds"`
	AllCompleted   bool                `json:"all_completed"`
}

type DailyTasksResponse struct {
	Day          string              `json:"day"`
	Tasks        []TaskStateResponse `json:"tasks"`
	AllCompleted bool                `json:"all_completed"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *entities.User `json:"user"`
}

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

type TranslateRequest struct {
	Text       string `json:"text" validate:"required,max=5000"`
	SourceLang string `json:"source_lang" validate:"required,len=2"`
	TargetLang string `json:"target_lang" validate:"required,len=2"`
}

type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
	Provider       string `json:"provider"`
}

type CreateJournalEntryRequest struct {
	EntryDate   string  `json:"entry_date" validate:"required,datetime=2006-01-02"`
	Title       string  `json:"title" validate:"required,max=200"`
	Content     string  `json:"content" validate:"required"`
	Translation *string `json:"translation"`
	SourceLang  string  `json:"source_lang" validate:"required,len=2"`
	TargetLang  string  `json:"target_lang" validate:"required,len=2"`
	Mood        *string `json:"mood" validate:"omitempty,max=50"`
}

type UpdateJournalEntryRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Content     *string `json:"content"`
	Translation *string `json:"translation"`
	Mood        *string `json:"mood" validate:"omitempty,max=50"`
}

type CreateVocabularyRequest struct {
	Term        string  `json:"term" validate:"required,max=200"`
	Translation string  `json:"translation" validate:"required,max=500"`
	Notes       *string `json:"notes"`
	CategoryID  *int    `json:"category_id"`
}

type UpdateVocabularyRequest struct {
	Term        *string `json:"term" validate:"omitempty,max=200"`
	Translation *string `json:"translation" validate:"omitempty,max=500"`
	Notes       *string `json:"notes"`
	CategoryID  *int    `json:"category_id"`
	Learned     *bool   `json:"learned"`
}

type CreatePhraseRequest struct {
	Text        string `json:"text" validate:"required,max=1000"`
	Translation string `json:"translation" validate:"required,max=1000"`
	CategoryID  *int   `json:"category_id"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Kind string `json:"kind" validate:"required,oneof=vocabulary phrase note"`
}
