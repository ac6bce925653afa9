package service

import (
	"strings"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/validation"
	"github.com/google/uuid"
)

// ParentInput is the payload of the parent signup form.
type ParentInput struct {
	ParentName       string   `json:"parent_name" validate:"required,min=2,max=120"`
	Email            string   `json:"email" validate:"required,email,max=254"`
	Phone            string   `json:"phone" validate:"required,sgphone"`
	PreferredContact string   `json:"preferred_contact" validate:"omitempty,oneof=whatsapp phone email"`
	ChildName        string   `json:"child_name" validate:"max=120"`
	ChildLevel       string   `json:"child_level" validate:"required,level"`
	ChildSchool      string   `json:"child_school" validate:"max=120"`
	Program          string   `json:"program" validate:"omitempty,oneof=tuition enrichment"`
	Subjects         []string `json:"subjects" validate:"required,min=1,max=10,dive,required,max=60"`
	Location         string   `json:"location" validate:"max=120"`
	Preferences      string   `json:"preferences" validate:"max=2000"`
}

func (in *ParentInput) normalize() {
	in.ParentName = strings.TrimSpace(in.ParentName)
	in.Email = normalizeEmail(in.Email)
	in.PreferredContact = strings.ToLower(strings.TrimSpace(in.PreferredContact))
	in.ChildName = strings.TrimSpace(in.ChildName)
	in.ChildLevel = strings.TrimSpace(in.ChildLevel)
	in.ChildSchool = strings.TrimSpace(in.ChildSchool)
	in.Program = strings.ToLower(strings.TrimSpace(in.Program))
	in.Subjects = cleanList(in.Subjects)
	in.Location = strings.TrimSpace(in.Location)
	in.Preferences = strings.TrimSpace(in.Preferences)
}

// toModel must run after validation, so phone and level are known to parse.
func (in *ParentInput) toModel() *model.ParentSubmission {
	phone, _ := validation.NormalizePhone(in.Phone)
	level, _ := model.NormalizeLevel(in.ChildLevel)
	contact := in.PreferredContact
	if contact == "" {
		contact = "whatsapp"
	}
	program := model.Program(in.Program)
	if program == "" {
		program = model.ProgramTuition
	}
	return &model.ParentSubmission{
		ParentName:       in.ParentName,
		Email:            in.Email,
		Phone:            phone,
		PreferredContact: contact,
		ChildName:        in.ChildName,
		ChildLevel:       level,
		ChildSchool:      in.ChildSchool,
		Program:          program,
		Subjects:         in.Subjects,
		Location:         in.Location,
		Preferences:      in.Preferences,
		Status:           model.ParentStatusPending,
	}
}

// TutorInput is the payload of the tutor application form.
type TutorInput struct {
	FullName             string   `json:"full_name" validate:"required,min=2,max=120"`
	Email                string   `json:"email" validate:"required,email,max=254"`
	Phone                string   `json:"phone" validate:"required,sgphone"`
	HighestQualification string   `json:"highest_qualification" validate:"required,max=200"`
	TutorType            string   `json:"tutor_type" validate:"required,oneof=part_time full_time ex_moe moe"`
	ExperienceYears      int      `json:"experience_years" validate:"min=0,max=60"`
	Subjects             []string `json:"subjects" validate:"required,min=1,max=15,dive,required,max=60"`
	Levels               []string `json:"levels" validate:"required,min=1,max=20,dive,required,level"`
	HourlyRate           int      `json:"hourly_rate" validate:"min=0,max=1000"`
	Bio                  string   `json:"bio" validate:"max=3000"`
}

func (in *TutorInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
	in.HighestQualification = strings.TrimSpace(in.HighestQualification)
	in.TutorType = strings.ToLower(strings.TrimSpace(in.TutorType))
	in.Subjects = cleanList(in.Subjects)
	in.Levels = cleanList(in.Levels)
	in.Bio = strings.TrimSpace(in.Bio)
}

func (in *TutorInput) toModel() *model.TutorSubmission {
	phone, _ := validation.NormalizePhone(in.Phone)
	levels := make([]string, 0, len(in.Levels))
	for _, l := range in.Levels {
		level, _ := model.NormalizeLevel(l)
		levels = append(levels, level)
	}
	return &model.TutorSubmission{
		FullName:             in.FullName,
		Email:                in.Email,
		Phone:                phone,
		HighestQualification: in.HighestQualification,
		TutorType:            model.TutorType(in.TutorType),
		ExperienceYears:      in.ExperienceYears,
		Subjects:             in.Subjects,
		Levels:               cleanList(levels),
		HourlyRate:           in.HourlyRate,
		Bio:                  in.Bio,
		Status:               model.TutorStatusPending,
	}
}

// RequestInput is the payload of the "find a tutor" form.
type RequestInput struct {
	ParentSubmissionID string `json:"parent_submission_id" validate:"omitempty,uuid"`
	ParentName         string `json:"parent_name" validate:"required,min=2,max=120"`
	Email              string `json:"email" validate:"required,email,max=254"`
	Phone              string `json:"phone" validate:"omitempty,sgphone"`
	Subject            string `json:"subject" validate:"required,max=60"`
	Level              string `json:"level" validate:"required,level"`
	Urgency            string `json:"urgency" validate:"omitempty,oneof=low normal urgent"`
	BudgetMin          int    `json:"budget_min" validate:"min=0,max=1000"`
	BudgetMax          int    `json:"budget_max" validate:"min=0,max=1000"`
	Notes              string `json:"notes" validate:"max=2000"`
}

func (in *RequestInput) normalize() {
	in.ParentSubmissionID = strings.TrimSpace(in.ParentSubmissionID)
	in.ParentName = strings.TrimSpace(in.ParentName)
	in.Email = normalizeEmail(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Level = strings.TrimSpace(in.Level)
	in.Urgency = strings.ToLower(strings.TrimSpace(in.Urgency))
	in.Notes = strings.TrimSpace(in.Notes)
}

func (in *RequestInput) toModel() *model.TutorRequest {
	phone, _ := validation.NormalizePhone(in.Phone)
	level, _ := model.NormalizeLevel(in.Level)
	urgency := model.Urgency(in.Urgency)
	if urgency == "" {
		urgency = model.UrgencyNormal
	}
	r := &model.TutorRequest{
		ParentName: in.ParentName,
		Email:      in.Email,
		Phone:      phone,
		Subject:    in.Subject,
		Level:      level,
		Urgency:    urgency,
		BudgetMin:  in.BudgetMin,
		BudgetMax:  in.BudgetMax,
		Notes:      in.Notes,
		Status:     model.RequestStatusAnalyzing,
	}
	if id, err := uuid.Parse(in.ParentSubmissionID); err == nil {
		r.ParentSubmissionID = &id
	}
	return r
}

// StatusUpdate is an admin action on a record. Notes is optional; nil keeps
// the stored notes.
type StatusUpdate struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// cleanList trims entries, drops blanks and case-insensitive duplicates.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
