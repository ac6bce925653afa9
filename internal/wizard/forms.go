package wizard

import (
	"sort"
	"strconv"

	"github.com/Freeeeeet/tuition_site/internal/service"
)

const (
	FormParent  = "parent"
	FormTutor   = "tutor"
	FormRequest = "request"
)

// Same bounds as the service input validation.
const (
	maxExperienceYears = 60
	maxRate            = 1000
)

var (
	nameStep  = Step{Key: "parent_name", Prompt: "What is your name?", Tag: "min=2,max=120"}
	emailStep = Step{Key: "email", Prompt: "Your e-mail address?", Tag: "email,max=254"}
	phoneStep = Step{Key: "phone", Prompt: "Your mobile number (Singapore)?", Tag: "sgphone"}
)

func ParentForm() *Form {
	return &Form{
		Name:  FormParent,
		Title: "Parent signup",
		Steps: []Step{
			nameStep,
			emailStep,
			phoneStep,
			{Key: "preferred_contact", Prompt: "How should we contact you?", Options: []Option{
				{Value: "whatsapp", Label: "WhatsApp"},
				{Value: "phone", Label: "Phone call"},
				{Value: "email", Label: "E-mail"},
			}},
			{Key: "child_name", Prompt: "Your child's name?", Optional: true, Tag: "max=120"},
			{Key: "child_level", Prompt: "Your child's level (e.g. Primary 5, Sec 3, JC1)?", Tag: "level"},
			{Key: "child_school", Prompt: "Which school?", Optional: true, Tag: "max=120"},
			{Key: "program", Prompt: "Which programme?", Options: []Option{
				{Value: "tuition", Label: "Home tuition"},
				{Value: "enrichment", Label: "School enrichment"},
			}},
			{Key: "subjects", Prompt: "Which subjects? Separate with commas.", List: true, Tag: "max=60"},
			{Key: "location", Prompt: "Your area or nearest MRT?", Optional: true, Tag: "max=120"},
			{Key: "preferences", Prompt: "Anything we should know (schedule, tutor gender, ...)?", Optional: true, Tag: "max=2000"},
		},
	}
}

func TutorForm() *Form {
	return &Form{
		Name:  FormTutor,
		Title: "Tutor application",
		Steps: []Step{
			{Key: "full_name", Prompt: "Your full name?", Tag: "min=2,max=120"},
			emailStep,
			phoneStep,
			{Key: "highest_qualification", Prompt: "Your highest qualification?", Tag: "max=200"},
			{Key: "tutor_type", Prompt: "Which describes you?", Options: []Option{
				{Value: "part_time", Label: "Part-time tutor"},
				{Value: "full_time", Label: "Full-time tutor"},
				{Value: "ex_moe", Label: "Ex-MOE teacher"},
				{Value: "moe", Label: "Current MOE teacher"},
			}},
			{Key: "experience_years", Prompt: "Years of tutoring experience?", Tag: "number", Max: maxExperienceYears},
			{Key: "subjects", Prompt: "Subjects you teach? Separate with commas.", List: true, Tag: "max=60"},
			{Key: "levels", Prompt: "Levels you teach (e.g. P5, Sec 3, JC1)?", List: true, Tag: "level"},
			{Key: "hourly_rate", Prompt: "Your hourly rate in SGD?", Tag: "number", Max: maxRate},
			{Key: "bio", Prompt: "A short introduction for parents.", Optional: true, Tag: "max=3000"},
		},
	}
}

func RequestForm() *Form {
	return &Form{
		Name:  FormRequest,
		Title: "Find a tutor",
		Steps: []Step{
			nameStep,
			emailStep,
			{Key: "phone", Prompt: phoneStep.Prompt, Optional: true, Tag: phoneStep.Tag},
			{Key: "subject", Prompt: "Which subject?", Tag: "max=60"},
			{Key: "level", Prompt: "Which level (e.g. Primary 5, Sec 3, JC1)?", Tag: "level"},
			{Key: "urgency", Prompt: "How soon do you need a tutor?", Options: []Option{
				{Value: "low", Label: "No rush"},
				{Value: "normal", Label: "Within a few weeks"},
				{Value: "urgent", Label: "As soon as possible"},
			}},
			{Key: "budget_min", Prompt: "Minimum budget per hour in SGD?", Optional: true, Tag: "number", Max: maxRate},
			{Key: "budget_max", Prompt: "Maximum budget per hour in SGD?", Optional: true, Tag: "number", Max: maxRate},
			{Key: "notes", Prompt: "Anything else?", Optional: true, Tag: "max=2000"},
		},
	}
}

var registry = map[string]func() *Form{
	FormParent:  ParentForm,
	FormTutor:   TutorForm,
	FormRequest: RequestForm,
}

// Lookup returns a fresh copy of a named form.
func Lookup(name string) (*Form, bool) {
	build, ok := registry[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Names lists the known forms, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Answers are the raw string values collected by a Session.
type Answers map[string]string

func (a Answers) list(key string) []string {
	return SplitList(a[key])
}

func (a Answers) number(key string) int {
	n, _ := strconv.Atoi(a[key])
	return n
}

func (a Answers) ParentInput() service.ParentInput {
	return service.ParentInput{
		ParentName:       a["parent_name"],
		Email:            a["email"],
		Phone:            a["phone"],
		PreferredContact: a["preferred_contact"],
		ChildName:        a["child_name"],
		ChildLevel:       a["child_level"],
		ChildSchool:      a["child_school"],
		Program:          a["program"],
		Subjects:         a.list("subjects"),
		Location:         a["location"],
		Preferences:      a["preferences"],
	}
}

func (a Answers) TutorInput() service.TutorInput {
	return service.TutorInput{
		FullName:             a["full_name"],
		Email:                a["email"],
		Phone:                a["phone"],
		HighestQualification: a["highest_qualification"],
		TutorType:            a["tutor_type"],
		ExperienceYears:      a.number("experience_years"),
		Subjects:             a.list("subjects"),
		Levels:               a.list("levels"),
		HourlyRate:           a.number("hourly_rate"),
		Bio:                  a["bio"],
	}
}

func (a Answers) RequestInput() service.RequestInput {
	return service.RequestInput{
		ParentName: a["parent_name"],
		Email:      a["email"],
		Phone:      a["phone"],
		Subject:    a["subject"],
		Level:      a["level"],
		Urgency:    a["urgency"],
		BudgetMin:  a.number("budget_min"),
		BudgetMax:  a.number("budget_max"),
		Notes:      a["notes"],
	}
}
