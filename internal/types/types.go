package types

import "fmt"

// JobRequirements is the structured form of a job description, produced by
// the job parsing stage.
type JobRequirements struct {
	RoleTitle             string   `json:"role_title"`
	Company               string   `json:"company"`
	RequiredSkills        []string `json:"required_skills"`
	PreferredSkills       []string `json:"preferred_skills"`
	ExperienceLevel       string   `json:"experience_level"`
	EducationRequirements []string `json:"education_requirements"`
	Responsibilities      []string `json:"responsibilities"`
	CultureKeywords       []string `json:"company_culture_keywords"`
	Industry              string   `json:"industry"`
	SeniorityLevel        string   `json:"seniority_level"`
}

// WorkExperience is a single position in a candidate's history.
type WorkExperience struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
}

// Education is a single entry in a candidate's educational background.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	FieldOfStudy   string `json:"field_of_study"`
	GraduationYear string `json:"graduation_year,omitempty"`
}

// ResumeData is the structured form of a resume, produced by the resume
// extraction stage. Name is always present; contact fields are optional.
type ResumeData struct {
	Name           string           `json:"name"`
	Email          string           `json:"email,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Skills         []string         `json:"skills"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Education      []Education      `json:"education"`
	Certifications []string         `json:"certifications"`
	Projects       []string         `json:"projects"`
	Summary        string           `json:"summary,omitempty"`
}

func (r ResumeData) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("resume data missing candidate name")
	}
	return nil
}

// SkillsAnalysis is the skills matching stage's result.
type SkillsAnalysis struct {
	OverallMatchScore     float64             `json:"overall_match_score"`
	MatchedSkills         []string            `json:"matched_skills"`
	MissingCriticalSkills []string            `json:"missing_critical_skills"`
	TransferableSkills    []string            `json:"transferable_skills"`
	SkillCategories       map[string][]string `json:"skill_categories"`
	Recommendations       []string            `json:"recommendations"`
}

func (s SkillsAnalysis) Validate() error {
	return checkScore("overall_match_score", s.OverallMatchScore)
}

// ExperienceAnalysis is the experience evaluation stage's result.
type ExperienceAnalysis struct {
	OverallExperienceScore    float64  `json:"overall_experience_score"`
	RelevantExperienceYears   float64  `json:"relevant_experience_years"`
	IndustryAlignmentScore    float64  `json:"industry_alignment_score"`
	RoleProgressionScore      float64  `json:"role_progression_score"`
	LeadershipExperienceScore float64  `json:"leadership_experience_score"`
	AchievementsQualityScore  float64  `json:"achievements_quality_score"`
	ExperienceGaps            []string `json:"experience_gaps"`
	Strengths                 []string `json:"strengths"`
}

func (e ExperienceAnalysis) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"overall_experience_score", e.OverallExperienceScore},
		{"industry_alignment_score", e.IndustryAlignmentScore},
		{"role_progression_score", e.RoleProgressionScore},
		{"leadership_experience_score", e.LeadershipExperienceScore},
		{"achievements_quality_score", e.AchievementsQualityScore},
	}
	for _, c := range checks {
		if err := checkScore(c.name, c.value); err != nil {
			return err
		}
	}
	if e.RelevantExperienceYears < 0 {
		return fmt.Errorf("relevant_experience_years %.2f is negative", e.RelevantExperienceYears)
	}
	return nil
}

// CertificationAnalysis describes one relevant certification found on the
// resume.
type CertificationAnalysis struct {
	CertificationName   string  `json:"certification_name"`
	RelevanceScore      float64 `json:"relevance_score"`
	ValidityStatus      string  `json:"validity_status"`
	IndustryRecognition string  `json:"industry_recognition"`
}

// EducationAnalysis is the education analysis stage's result.
type EducationAnalysis struct {
	OverallEducationScore        float64                 `json:"overall_education_score"`
	DegreeAlignmentScore         float64                 `json:"degree_alignment_score"`
	FieldOfStudyRelevance        float64                 `json:"field_of_study_relevance"`
	InstitutionQualityScore      float64                 `json:"institution_quality_score"`
	EducationLevelMatch          bool                    `json:"education_level_match"`
	RelevantCertifications       []CertificationAnalysis `json:"relevant_certifications"`
	MissingCertifications        []string                `json:"missing_certifications"`
	ContinuousLearningIndicators []string                `json:"continuous_learning_indicators"`
	EducationStrengths           []string                `json:"education_strengths"`
	EducationGaps                []string                `json:"education_gaps"`
	Recommendations              []string                `json:"recommendations"`
}

func (e EducationAnalysis) Validate() error {
	return checkScore("overall_education_score", e.OverallEducationScore)
}

// CulturalFitAnalysis is the cultural fit stage's result.
type CulturalFitAnalysis struct {
	CulturalFitScore         float64  `json:"cultural_fit_score"`
	SoftSkillsIdentified     []string `json:"soft_skills_identified"`
	CommunicationStyle       string   `json:"communication_style"`
	LeadershipIndicators     []string `json:"leadership_indicators"`
	TeamCollaborationSignals []string `json:"team_collaboration_signals"`
	AdaptabilityScore        float64  `json:"adaptability_score"`
	CulturalAlignmentFactors []string `json:"cultural_alignment_factors"`
}

func (c CulturalFitAnalysis) Validate() error {
	if err := checkScore("cultural_fit_score", c.CulturalFitScore); err != nil {
		return err
	}
	return checkScore("adaptability_score", c.AdaptabilityScore)
}

// InterviewQuestion is a targeted question suggested by the report stage.
type InterviewQuestion struct {
	Category        string `json:"category"`
	Question        string `json:"question"`
	FocusArea       string `json:"focus_area"`
	DifficultyLevel string `json:"difficulty_level"`
}

// RecommendationItem is a development recommendation for the candidate.
type RecommendationItem struct {
	Category       string `json:"category"`
	Priority       string `json:"priority"`
	Recommendation string `json:"recommendation"`
	Timeline       string `json:"timeline"`
	Impact         string `json:"impact"`
}

// RiskFactor describes a hiring risk and its mitigation.
type RiskFactor struct {
	RiskType           string `json:"risk_type"`
	Severity           string `json:"severity"`
	Description        string `json:"description"`
	MitigationStrategy string `json:"mitigation_strategy"`
}

// ComprehensiveReport is the report synthesis stage's result.
type ComprehensiveReport struct {
	ExecutiveSummary           string               `json:"executive_summary"`
	OverallRecommendation      string               `json:"overall_recommendation"`
	HiringConfidence           float64              `json:"hiring_confidence"`
	KeyStrengths               []string             `json:"key_strengths"`
	CriticalConcerns           []string             `json:"critical_concerns"`
	InterviewQuestions         []InterviewQuestion  `json:"interview_questions"`
	DevelopmentRecommendations []RecommendationItem `json:"development_recommendations"`
	RiskFactors                []RiskFactor         `json:"risk_factors"`
	SalaryRecommendationRange  string               `json:"salary_recommendation_range,omitempty"`
	OnboardingSuggestions      []string             `json:"onboarding_suggestions"`
	PerformancePredictions     map[string]string    `json:"performance_predictions"`
}

func (r ComprehensiveReport) Validate() error {
	if r.HiringConfidence < 0 || r.HiringConfidence > 1 {
		return fmt.Errorf("hiring_confidence %.3f out of range [0,1]", r.HiringConfidence)
	}
	return nil
}

// CandidateSummary identifies the candidate and the analyzed role.
type CandidateSummary struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AnalysisDate string `json:"analysis_date"`
	JobTitle     string `json:"job_title"`
	Company      string `json:"company"`
}

// ScoringOverview carries the composite score and its breakdown.
type ScoringOverview struct {
	OverallFitnessScore float64            `json:"overall_fitness_score"`
	RankingCategory     string             `json:"ranking_category"`
	Recommendation      string             `json:"recommendation"`
	ConfidenceLevel     float64            `json:"confidence_level"`
	ScoreBreakdown      map[string]float64 `json:"score_breakdown"`
}

// DetailedMetrics carries per-dimension presentation metrics.
type DetailedMetrics struct {
	SkillsMatchPercentage   float64 `json:"skills_match_percentage"`
	ExperienceRelevance     float64 `json:"experience_relevance"`
	EducationAlignment      float64 `json:"education_alignment"`
	CulturalFitScore        float64 `json:"cultural_fit_score"`
	YearsRelevantExperience float64 `json:"years_relevant_experience"`
}

// RiskSummary is the dashboard's view of one report risk factor.
type RiskSummary struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// KeyInsights groups the strengths, gaps and risks surfaced to reviewers.
type KeyInsights struct {
	TopStrengths     []string      `json:"top_strengths"`
	CriticalGaps     []string      `json:"critical_gaps"`
	RiskFactors      []RiskSummary `json:"risk_factors"`
	DevelopmentAreas []string      `json:"development_areas"`
}

// SuggestedQuestion is the dashboard's view of one interview question.
type SuggestedQuestion struct {
	Category   string `json:"category"`
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
}

// InterviewPreparation summarizes where interviews should focus.
type InterviewPreparation struct {
	FocusAreas           []string            `json:"focus_areas"`
	SuggestedQuestions   []SuggestedQuestion `json:"suggested_questions"`
	AssessmentPriorities []string            `json:"assessment_priorities"`
}

// RadarChart holds fixed-order category scores for the radar visualization.
type RadarChart struct {
	Categories []string  `json:"categories"`
	Scores     []float64 `json:"scores"`
}

// SkillsDistribution counts matched, missing and transferable skills.
type SkillsDistribution struct {
	Matched      int `json:"matched"`
	Missing      int `json:"missing"`
	Transferable int `json:"transferable"`
}

// ExperienceBreakdown holds the experience chart series.
type ExperienceBreakdown struct {
	RelevantYears     float64 `json:"relevant_years"`
	IndustryAlignment float64 `json:"industry_alignment"`
	ProgressionScore  float64 `json:"progression_score"`
}

// EducationMetrics holds the education chart series.
type EducationMetrics struct {
	DegreeRelevance     float64 `json:"degree_relevance"`
	InstitutionQuality  float64 `json:"institution_quality"`
	CertificationsCount int     `json:"certifications_count"`
	ContinuousLearning  int     `json:"continuous_learning"`
}

// ScoreTrend holds the label/value series for the score trend chart.
type ScoreTrend struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// ChartsData aggregates all chart series for the dashboard.
type ChartsData struct {
	RadarChart          RadarChart          `json:"radar_chart"`
	SkillsDistribution  SkillsDistribution  `json:"skills_distribution"`
	ExperienceBreakdown ExperienceBreakdown `json:"experience_breakdown"`
	EducationMetrics    EducationMetrics    `json:"education_metrics"`
	ScoreTrend          ScoreTrend          `json:"score_trend"`
}

// SkillsDetail is the detailed skills view.
type SkillsDetail struct {
	MatchedSkills      []string            `json:"matched_skills"`
	MissingSkills      []string            `json:"missing_skills"`
	TransferableSkills []string            `json:"transferable_skills"`
	SkillCategories    map[string][]string `json:"skill_categories"`
}

// ExperienceDetail is the detailed experience view.
type ExperienceDetail struct {
	RelevantYears     float64 `json:"relevant_years"`
	IndustryAlignment float64 `json:"industry_alignment"`
	LeadershipScore   float64 `json:"leadership_score"`
	CareerProgression float64 `json:"career_progression"`
}

// EducationDetail is the detailed education view.
type EducationDetail struct {
	DegreeMatch        bool                    `json:"degree_match"`
	FieldRelevance     float64                 `json:"field_relevance"`
	Certifications     []CertificationAnalysis `json:"certifications"`
	ContinuousLearning []string                `json:"continuous_learning"`
}

// CulturalFitDetail is the detailed cultural fit view.
type CulturalFitDetail struct {
	SoftSkills          []string `json:"soft_skills"`
	CommunicationStyle  string   `json:"communication_style"`
	TeamIndicators      []string `json:"team_indicators"`
	LeadershipPotential []string `json:"leadership_potential"`
}

// DetailedAnalysis nests the per-dimension detail views.
type DetailedAnalysis struct {
	Skills      SkillsDetail      `json:"skills"`
	Experience  ExperienceDetail  `json:"experience"`
	Education   EducationDetail   `json:"education"`
	CulturalFit CulturalFitDetail `json:"cultural_fit"`
}

// DevelopmentPlanItem is one entry of the recommended development plan.
type DevelopmentPlanItem struct {
	Area           string `json:"area"`
	Priority       string `json:"priority"`
	Action         string `json:"action"`
	Timeline       string `json:"timeline"`
	ExpectedImpact string `json:"expected_impact"`
}

// Recommendations carries the hiring decision and follow-up plans.
type Recommendations struct {
	HiringDecision  string                `json:"hiring_decision"`
	SalaryRange     string                `json:"salary_range"`
	OnboardingPlan  []string              `json:"onboarding_plan"`
	DevelopmentPlan []DevelopmentPlanItem `json:"development_plan"`
}

// DashboardData is the final presentation document returned to callers.
// It is derived entirely from the pipeline results and can be regenerated
// from them at any time.
type DashboardData struct {
	CandidateSummary     CandidateSummary     `json:"candidate_summary"`
	ScoringOverview      ScoringOverview      `json:"scoring_overview"`
	DetailedMetrics      DetailedMetrics      `json:"detailed_metrics"`
	KeyInsights          KeyInsights          `json:"key_insights"`
	InterviewPreparation InterviewPreparation `json:"interview_preparation"`
	ChartsData           ChartsData           `json:"charts_data"`
	DetailedAnalysis     DetailedAnalysis     `json:"detailed_analysis"`
	Recommendations      Recommendations      `json:"recommendations"`
	ExecutiveSummary     string               `json:"executive_summary"`
}

func checkScore(name string, v float64) error {
	if v < 0 || v > 10 {
		return fmt.Errorf("%s %.3f out of range [0,10]", name, v)
	}
	return nil
}
