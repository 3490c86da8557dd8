package models

// LifeRoleCategory is static reference data used to decorate and filter
// todos by category id. Not user-mutable and not part of sync correctness.
type LifeRoleCategory struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Emoji       string `json:"emoji"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// LifeRoleCategories is the fixed set of life roles a todo can belong to.
// A todo's category may also be a free-form legacy string that matches none
// of these ids.
var LifeRoleCategories = []LifeRoleCategory{
	{ID: "tennis_coach", Label: "Tennis Coach", Emoji: "🎾", Color: "#ff6b6b", Description: "Coaching activities, lessons, player development"},
	{ID: "relationship", Label: "Relationship", Emoji: "💕", Color: "#ff8cc8", Description: "Date planning, couple activities, relationship goals"},
	{ID: "family", Label: "Family", Emoji: "👨‍👩‍👧‍👦", Color: "#74b9ff", Description: "Family time, calls, events, son/brother responsibilities"},
	{ID: "miss_money_penny", Label: "Miss Money Penny", Emoji: "💰", Color: "#00b894", Description: "Project development, meetings, strategic planning"},
	{ID: "branch", Label: "Branch", Emoji: "🌿", Color: "#55a3ff", Description: "Project milestones, team coordination, deliverables"},
	{ID: "finance", Label: "Finance", Emoji: "💸", Color: "#fdcb6e", Description: "Budget tracking, investments, financial planning"},
	{ID: "health", Label: "Health", Emoji: "🏥", Color: "#e17055", Description: "Medical appointments, fitness, mental health, nutrition"},
	{ID: "personal_dev", Label: "Personal Development", Emoji: "📚", Color: "#a29bfe", Description: "Learning, skills, hobbies, self-improvement"},
	{ID: "other", Label: "Other", Emoji: "📝", Color: "#636e72", Description: "Miscellaneous tasks and activities"},
}

// LifeRoleByID returns the matching role and whether it exists.
func LifeRoleByID(id string) (LifeRoleCategory, bool) {
	for _, role := range LifeRoleCategories {
		if role.ID == id {
			return role, true
		}
	}
	return LifeRoleCategory{}, false
}

// LifeRoleLabel returns the role's label, or "Other" for unknown ids.
func LifeRoleLabel(id string) string {
	if role, ok := LifeRoleByID(id); ok {
		return role.Label
	}
	return "Other"
}

// LifeRoleEmoji returns the role's emoji, or the fallback note emoji.
func LifeRoleEmoji(id string) string {
	if role, ok := LifeRoleByID(id); ok {
		return role.Emoji
	}
	return "📝"
}
