package entities

import "strconv"

// MilestoneDays are the journey slots that unlock achievements when reached.
var MilestoneDays = map[int]bool{7: true, 14: true, 21: true, 30: true}

// TaskCatalog is the fixed ordered list of daily tasks. Order matters for the
// client's card layout.
var TaskCatalog = []DailyTask{
	{ID: "read", Name: "Read", Icon: "book", TargetMinutes: 10},
	{ID: "write", Name: "Write", Icon: "pencil", TargetMinutes: 15},
	{ID: "listen", Name: "Listen", Icon: "headphones", TargetMinutes: 10},
	{ID: "speak", Name: "Speak", Icon: "microphone", TargetMinutes: 5},
	{ID: "review", Name: "Review Vocabulary", Icon: "cards", TargetMinutes: 10},
}

// TaskByID looks up a catalog task.
func TaskByID(id string) (DailyTask, bool) {
	for _, t := range TaskCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return DailyTask{}, false
}

// AchievementCatalog is the static achievement set. Milestone achievements
// unlock when their day enters the journey's completed set.
var AchievementCatalog = []Achievement{
	{ID: "first-week", Title: "First Week", Description: "Seven days of consistent practice", Icon: "star", Category: AchievementCategoryMilestone, MilestoneDay: 7},
	{ID: "habit-former", Title: "Habit Former", Description: "The first full week is behind you", Icon: "seedling", Category: AchievementCategorySpecial, MilestoneDay: 7},
	{ID: "halfway-there", Title: "Halfway There", Description: "Fourteen days into the journey", Icon: "flag", Category: AchievementCategoryMilestone, MilestoneDay: 14},
	{ID: "three-weeks", Title: "Three Weeks Strong", Description: "Twenty-one days of practice", Icon: "fire", Category: AchievementCategoryMilestone, MilestoneDay: 21},
	{ID: "journey-complete", Title: "Journey Complete", Description: "All thirty days of the journey finished", Icon: "trophy", Category: AchievementCategoryMilestone, MilestoneDay: 30},
	{ID: "polyglot-in-training", Title: "Polyglot in Training", Description: "Finished the full program", Icon: "globe", Category: AchievementCategorySpecial, MilestoneDay: 30},
}

// AchievementsForDay returns the achievements unlocked by completing a day.
func AchievementsForDay(day int) []Achievement {
	var out []Achievement
	for _, a := range AchievementCatalog {
		if a.MilestoneDay == day {
			out = append(out, a)
		}
	}
	return out
}

// AchievementWithStatus pairs a catalog entry with its derived unlock state.
type AchievementWithStatus struct {
	Achievement
	Unlocked bool `json:"unlocked"`
}

// UnlockedAchievements derives unlock state from the journey's completed set.
func UnlockedAchievements(js *JourneyState) []AchievementWithStatus {
	out := make([]AchievementWithStatus, 0, len(AchievementCatalog))
	for _, a := range AchievementCatalog {
		out = append(out, AchievementWithStatus{
			Achievement: a,
			Unlocked:    a.MilestoneDay > 0 && js.IsDayCompleted(a.MilestoneDay),
		})
	}
	return out
}

// LandmarkCatalog is the 30-slot journey map shown to the client.
var LandmarkCatalog = buildLandmarks()

func buildLandmarks() []Landmark {
	titles := map[int]string{
		1:  "First Steps",
		7:  "Week One Summit",
		14: "Midpoint Ridge",
		21: "Third Week Pass",
		30: "Journey's End",
	}
	out := make([]Landmark, 0, JourneyLength)
	for day := 1; day <= JourneyLength; day++ {
		lm := Landmark{
			Day:       day,
			Title:     titles[day],
			Milestone: MilestoneDays[day],
		}
		if lm.Title == "" {
			lm.Title = "Day " + strconv.Itoa(day)
		}
		if lm.Milestone {
			lm.Description = "Milestone day. Completing it unlocks achievements."
		} else {
			lm.Description = "Complete all daily tasks or meet the activity minimum."
		}
		out = append(out, lm)
	}
	return out
}

