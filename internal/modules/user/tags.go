package user

// Habit and hobby vocabularies offered by the profile editor. Free-form tags
// are not accepted; the service filters updates down to these.
var HabitTags = []string{
	"early_riser",
	"night_owl",
	"smoker",
	"non_smoker",
	"vegetarian",
	"vegan",
	"pet_owner",
	"tidy",
	"quiet",
	"sociable",
	"works_from_home",
	"student",
}

var HobbyTags = []string{
	"cooking",
	"gaming",
	"reading",
	"music",
	"sports",
	"hiking",
	"photography",
	"travel",
	"cinema",
	"art",
	"gardening",
	"volunteering",
}

func validTags(requested, vocabulary []string) []string {
	allowed := make(map[string]bool, len(vocabulary))
	for _, t := range vocabulary {
		allowed[t] = true
	}

	out := make([]string, 0, len(requested))
	for _, t := range requested {
		if allowed[t] {
			out = append(out, t)
		}
	}
	return out
}
