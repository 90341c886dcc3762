package main

import (
	"github.com/lambourne/crownprep/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedReferenceData inserts the civil-service grades and the nine Success
// Profile behaviours. Idempotent: existing rows are left untouched.
func SeedReferenceData(db *gorm.DB) error {
	grades := []model.Grade{
		{ID: "eo", Name: "EO", DisplayName: "Executive Officer", Description: "Entry-level professional role with responsibility for specific tasks and projects.", SalaryRange: "£28,000 - £34,000"},
		{ID: "heo", Name: "HEO", DisplayName: "Higher Executive Officer", Description: "Mid-level role with team leadership and project management responsibilities.", SalaryRange: "£34,000 - £42,000"},
		{ID: "seo", Name: "SEO", DisplayName: "Senior Executive Officer", Description: "Senior professional role with significant managerial and strategic responsibilities.", SalaryRange: "£42,000 - £52,000"},
		{ID: "g7", Name: "G7", DisplayName: "Grade 7", Description: "Senior manager role with cross-departmental responsibilities.", SalaryRange: "£52,000 - £65,000"},
		{ID: "g6", Name: "G6", DisplayName: "Grade 6", Description: "Deputy director level with significant strategic influence.", SalaryRange: "£65,000 - £80,000"},
		{ID: "scs", Name: "SCS", DisplayName: "Senior Civil Service", Description: "Executive leadership positions at the highest level of the Civil Service.", SalaryRange: "£80,000+"},
	}

	behaviours := []model.Behaviour{
		{ID: "seeing-the-big-picture", Name: "Seeing the Big Picture", Description: "Understand how your role supports organisational objectives and the wider Civil Service priorities."},
		{ID: "changing-and-improving", Name: "Changing and Improving", Description: "Seek opportunities to improve, innovate, and review ways of working."},
		{ID: "making-effective-decisions", Name: "Making Effective Decisions", Description: "Use evidence and knowledge to make sound decisions, considering risks and options."},
		{ID: "leadership", Name: "Leadership", Description: "Provide purpose and direction, engaging others and valuing inclusion and diversity."},
		{ID: "communicating-and-influencing", Name: "Communicating and Influencing", Description: "Communicate with clarity and integrity, tailoring messages and respecting others."},
		{ID: "working-together", Name: "Working Together", Description: "Build effective relationships and collaborate across teams and stakeholders."},
		{ID: "developing-self-and-others", Name: "Developing Self and Others", Description: "Commit to continuous learning and support development of others."},
		{ID: "managing-a-quality-service", Name: "Managing a Quality Service", Description: "Deliver services with expertise and efficiency, meeting diverse customer needs."},
		{ID: "delivering-at-pace", Name: "Delivering at Pace", Description: "Deliver timely, high-quality outcomes with focus and drive."},
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&grades).Error; err != nil {
		log.Error().Err(err).Msg("Seeding grades failed")
		return err
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&behaviours).Error; err != nil {
		log.Error().Err(err).Msg("Seeding behaviours failed")
		return err
	}
	log.Info().Int("grades", len(grades)).Int("behaviours", len(behaviours)).Msg("Reference data seeded")
	return nil
}
