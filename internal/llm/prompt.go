package llm

import (
	"fmt"
)

// promptTemplate embeds the ten labeled profile fields, the five generation
// requirements, and the exact output contract the client validates against.
const promptTemplate = `Based on this user profile, generate exactly 3 daily goals in JSON format.

User Profile:
- Age Range: %s
- Occupation: %s
- Health Priority: %s
- Daily Free Time: %s hours
- Main Challenge: %s
- Interest Categories: %s
- Schedule Preference: %s person
- Stress Level: %s/10
- Goal Difficulty: %s
- Main Motivation: %s

Requirements:
1. Generate exactly 3 goals that can be completed today
2. Each goal should be specific, actionable, and realistic
3. Consider the user's available time, stress level, and preferences
4. Match the difficulty level to their preference
5. Include goals from their areas of interest when possible

Return ONLY a JSON array with this exact structure:
[
  {
    "title": "Goal title (max 100 characters)",
    "description": "Detailed description with specific actions (max 300 characters)",
    "category": "One of: Health, Career, Learning, Relationships, Hobbies"
  },
  {
    "title": "Goal title (max 100 characters)",
    "description": "Detailed description with specific actions (max 300 characters)",
    "category": "One of: Health, Career, Learning, Relationships, Hobbies"
  },
  {
    "title": "Goal title (max 100 characters)",
    "description": "Detailed description with specific actions (max 300 characters)",
    "category": "One of: Health, Career, Learning, Relationships, Hobbies"
  }
]

Make goals practical, motivating, and tailored to this specific user's profile.`

// BuildPrompt renders the generation instruction for a user profile map.
// Pure transformation: fields absent from the profile read "Not specified",
// with no other error cases.
func BuildPrompt(profile map[string]string) string {
	field := func(key string) string {
		if v, ok := profile[key]; ok && v != "" {
			return v
		}
		return "Not specified"
	}

	return fmt.Sprintf(promptTemplate,
		field("age_range"),
		field("occupation"),
		field("health_priority"),
		field("free_time"),
		field("challenge"),
		field("categories"),
		field("schedule"),
		field("stress"),
		field("difficulty"),
		field("motivation"),
	)
}
