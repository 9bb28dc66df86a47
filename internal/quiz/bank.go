package quiz

import "coastal-quiz-service/internal/domain"

// Bank is an ordered, read-only collection of quiz questions.
type Bank []domain.Question

// ForCategory returns the questions matching the category, preserving
// declaration order. An empty category returns the full bank. A category
// that matches nothing yields an empty bank, never an error.
func (b Bank) ForCategory(category domain.Category) Bank {
	if category == "" {
		return b
	}
	filtered := make(Bank, 0, len(b))
	for _, q := range b {
		if q.Category == category {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// DefaultBank returns the compiled-in coastal safety question set:
// three questions per category, fifteen in total.
func DefaultBank() Bank {
	return Bank{
		{
			ID:   1,
			Text: "What is a storm surge?",
			Options: []string{
				"A type of hurricane",
				"A rapid rise in sea level caused by strong winds and low pressure",
				"A tsunami warning",
				"A type of coastal flood",
			},
			CorrectAnswer: 1,
			Explanation:   "A storm surge is a rapid rise in sea level caused by strong winds pushing water toward the shore and low atmospheric pressure allowing the water to rise.",
			Category:      domain.CategoryStormSurge,
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:   2,
			Text: "Which of the following factors most affects storm surge height?",
			Options: []string{
				"Wind speed",
				"Rainfall amount",
				"Temperature",
				"Humidity",
			},
			CorrectAnswer: 0,
			Explanation:   "Wind speed is the primary factor affecting storm surge height. Stronger winds push more water toward the shore.",
			Category:      domain.CategoryStormSurge,
			Difficulty:    domain.DifficultyMedium,
		},
		{
			ID:   3,
			Text: "What should you do if a storm surge warning is issued?",
			Options: []string{
				"Stay at home and wait",
				"Immediately evacuate to higher ground",
				"Go to the beach to watch",
				"Continue normal activities",
			},
			CorrectAnswer: 1,
			Explanation:   "When a storm surge warning is issued, you should immediately evacuate to higher ground as storm surges can be deadly and unpredictable.",
			Category:      domain.CategoryStormSurge,
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:   4,
			Text: "What is the main cause of coastal pollution?",
			Options: []string{
				"Natural erosion",
				"Human activities and waste disposal",
				"Marine animals",
				"Weather patterns",
			},
			CorrectAnswer: 1,
			Explanation:   "Human activities, including improper waste disposal, industrial runoff, and plastic pollution, are the main causes of coastal pollution.",
			Category:      domain.CategoryPollution,
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:   5,
			Text: "Which of the following is NOT a common coastal pollutant?",
			Options: []string{
				"Plastic waste",
				"Oil spills",
				"Agricultural runoff",
				"Volcanic ash",
			},
			CorrectAnswer: 3,
			Explanation:   "Volcanic ash is not a common coastal pollutant. Plastic waste, oil spills, and agricultural runoff are major coastal pollution sources.",
			Category:      domain.CategoryPollution,
			Difficulty:    domain.DifficultyMedium,
		},
		{
			ID:   6,
			Text: "How does coastal pollution affect marine life?",
			Options: []string{
				"It has no effect",
				"It only affects fish",
				"It can cause death, disease, and habitat destruction",
				"It only affects plants",
			},
			CorrectAnswer: 2,
			Explanation:   "Coastal pollution can cause death, disease, and habitat destruction for various marine organisms, disrupting entire ecosystems.",
			Category:      domain.CategoryPollution,
			Difficulty:    domain.DifficultyMedium,
		},
		{
			ID:   7,
			Text: "What is coastal erosion?",
			Options: []string{
				"The building up of sand on beaches",
				"The gradual wearing away of coastal land by natural forces",
				"The creation of new islands",
				"The movement of fish",
			},
			CorrectAnswer: 1,
			Explanation:   "Coastal erosion is the gradual wearing away of coastal land by natural forces like waves, currents, and wind.",
			Category:      domain.CategoryErosion,
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:   8,
			Text: "Which human activity can accelerate coastal erosion?",
			Options: []string{
				"Building seawalls",
				"Planting vegetation",
				"Removing sand dunes",
				"Creating artificial reefs",
			},
			CorrectAnswer: 2,
			Explanation:   "Removing sand dunes can accelerate coastal erosion as dunes act as natural barriers against wave action.",
			Category:      domain.CategoryErosion,
			Difficulty:    domain.DifficultyMedium,
		},
		{
			ID:   9,
			Text: "What is one effective way to prevent coastal erosion?",
			Options: []string{
				"Building more roads",
				"Planting coastal vegetation",
				"Removing all structures",
				"Draining wetlands",
			},
			CorrectAnswer: 1,
			Explanation:   "Planting coastal vegetation like mangroves and beach grasses can help prevent erosion by stabilizing soil and reducing wave impact.",
			Category:      domain.CategoryErosion,
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:   10,
			Text: "What should you do if you're caught in a rip current?",
			Options: []string{
				"Swim directly toward shore",
				"Swim parallel to the shore",
				"Panic and call for help",
				"Dive underwater",
			},
			CorrectAnswer: 1,
			Explanation:   "If caught in a rip current, swim parallel to the shore to escape the current, then swim back to shore.",
			Category:      domain.CategorySafety,
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:   11,
			Text: "What color flag indicates dangerous swimming conditions?",
			Options: []string{
				"Green",
				"Yellow",
				"Red",
				"Blue",
			},
			CorrectAnswer: 2,
			Explanation:   "A red flag indicates dangerous swimming conditions and you should avoid entering the water.",
			Category:      domain.CategorySafety,
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:   12,
			Text: "What should you do before going to the beach?",
			Options: []string{
				"Check the weather forecast",
				"Bring only a towel",
				"Go alone for safety",
				"Ignore warning signs",
			},
			CorrectAnswer: 0,
			Explanation:   "Always check the weather forecast and beach conditions before going to the beach for safety.",
			Category:      domain.CategorySafety,
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:   13,
			Text: "What should be in your emergency kit for coastal areas?",
			Options: []string{
				"Only food and water",
				"Food, water, first aid, flashlight, and important documents",
				"Just a phone",
				"Nothing special",
			},
			CorrectAnswer: 1,
			Explanation:   "An emergency kit should include food, water, first aid supplies, flashlight, and important documents for coastal emergencies.",
			Category:      domain.CategoryPreparedness,
			Difficulty:    domain.DifficultyMedium,
		},
		{
			ID:   14,
			Text: "What is the best way to stay informed about coastal threats?",
			Options: []string{
				"Ignore all warnings",
				"Only check social media",
				"Monitor official weather services and emergency broadcasts",
				"Ask neighbors only",
			},
			CorrectAnswer: 2,
			Explanation:   "Monitor official weather services and emergency broadcasts for accurate and timely information about coastal threats.",
			Category:      domain.CategoryPreparedness,
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:   15,
			Text: "What should you do if a hurricane warning is issued?",
			Options: []string{
				"Go to the beach to watch",
				"Stay at home and wait",
				"Follow evacuation orders and emergency instructions",
				"Continue normal activities",
			},
			CorrectAnswer: 2,
			Explanation:   "If a hurricane warning is issued, follow evacuation orders and emergency instructions from local authorities.",
			Category:      domain.CategoryPreparedness,
			Difficulty:    domain.DifficultyEasy,
		},
	}
}
