package dashboard

import (
	"math"
	"time"

	"hiresight/internal/errors"
	"hiresight/internal/types"
)

// Input is everything the projection needs. All analyses are mandatory;
// a missing one is a contract defect in the caller, not a runtime
// condition to recover from.
type Input struct {
	Job          *types.JobRequirements
	Resume       *types.ResumeData
	Skills       *types.SkillsAnalysis
	Experience   *types.ExperienceAnalysis
	Education    *types.EducationAnalysis
	CulturalFit  *types.CulturalFitAnalysis
	Report       *types.ComprehensiveReport
	OverallScore float64
	GeneratedAt  time.Time
}

// Score thresholds for ranking buckets, checked in descending order with
// closed lower bounds.
const (
	thresholdExcellent = 8.5
	thresholdGood      = 7.0
	thresholdFair      = 5.5
)

// Project derives the presentation document from the completed pipeline
// state. Pure function: identical inputs yield identical output, and the
// only timestamp is the caller-supplied GeneratedAt.
func Project(in Input) (*types.DashboardData, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	skillsScore := round1(in.Skills.OverallMatchScore)
	experienceScore := round1(in.Experience.OverallExperienceScore)
	educationScore := round1(in.Education.OverallEducationScore)
	culturalScore := round1(in.CulturalFit.CulturalFitScore)
	ranking, recommendation := rankingInfo(in.OverallScore)

	data := &types.DashboardData{
		CandidateSummary: types.CandidateSummary{
			Name:         candidateName(in.Resume),
			Email:        in.Resume.Email,
			Phone:        in.Resume.Phone,
			AnalysisDate: in.GeneratedAt.Format(time.RFC3339),
			JobTitle:     in.Job.RoleTitle,
			Company:      in.Job.Company,
		},
		ScoringOverview: types.ScoringOverview{
			OverallFitnessScore: round1(in.OverallScore),
			RankingCategory:     ranking,
			Recommendation:      recommendation,
			ConfidenceLevel:     in.Report.HiringConfidence,
			ScoreBreakdown: map[string]float64{
				"Skills Match": skillsScore,
				"Experience":   experienceScore,
				"Education":    educationScore,
				"Cultural Fit": culturalScore,
			},
		},
		DetailedMetrics: types.DetailedMetrics{
			SkillsMatchPercentage:   skillsMatchPercentage(in.Skills),
			ExperienceRelevance:     experienceScore,
			EducationAlignment:      educationScore,
			CulturalFitScore:        culturalScore,
			YearsRelevantExperience: round1(in.Experience.RelevantExperienceYears),
		},
		KeyInsights: types.KeyInsights{
			TopStrengths:     firstN(in.Report.KeyStrengths, 5),
			CriticalGaps:     criticalGaps(in.Skills, in.Experience, in.Education),
			RiskFactors:      riskSummaries(in.Report.RiskFactors),
			DevelopmentAreas: developmentAreas(in.Report.DevelopmentRecommendations),
		},
		InterviewPreparation: types.InterviewPreparation{
			FocusAreas:           interviewFocusAreas(in.Report.InterviewQuestions),
			SuggestedQuestions:   suggestedQuestions(in.Report.InterviewQuestions),
			AssessmentPriorities: assessmentPriorities(in.OverallScore, in.Skills),
		},
		ChartsData: chartsData(in),
		DetailedAnalysis: types.DetailedAnalysis{
			Skills: types.SkillsDetail{
				MatchedSkills:      in.Skills.MatchedSkills,
				MissingSkills:      in.Skills.MissingCriticalSkills,
				TransferableSkills: in.Skills.TransferableSkills,
				SkillCategories:    in.Skills.SkillCategories,
			},
			Experience: types.ExperienceDetail{
				RelevantYears:     round1(in.Experience.RelevantExperienceYears),
				IndustryAlignment: round1(in.Experience.IndustryAlignmentScore),
				LeadershipScore:   round1(in.Experience.LeadershipExperienceScore),
				CareerProgression: round1(in.Experience.RoleProgressionScore),
			},
			Education: types.EducationDetail{
				DegreeMatch:        in.Education.EducationLevelMatch,
				FieldRelevance:     round1(in.Education.FieldOfStudyRelevance),
				Certifications:     in.Education.RelevantCertifications,
				ContinuousLearning: in.Education.ContinuousLearningIndicators,
			},
			CulturalFit: types.CulturalFitDetail{
				SoftSkills:          in.CulturalFit.SoftSkillsIdentified,
				CommunicationStyle:  in.CulturalFit.CommunicationStyle,
				TeamIndicators:      in.CulturalFit.TeamCollaborationSignals,
				LeadershipPotential: in.CulturalFit.LeadershipIndicators,
			},
		},
		Recommendations: types.Recommendations{
			HiringDecision:  in.Report.OverallRecommendation,
			SalaryRange:     in.Report.SalaryRecommendationRange,
			OnboardingPlan:  in.Report.OnboardingSuggestions,
			DevelopmentPlan: developmentPlan(in.Report.DevelopmentRecommendations),
		},
		ExecutiveSummary: in.Report.ExecutiveSummary,
	}

	return data, nil
}

func (in Input) validate() error {
	missing := ""
	switch {
	case in.Job == nil:
		missing = "job requirements"
	case in.Resume == nil:
		missing = "resume data"
	case in.Skills == nil:
		missing = "skills analysis"
	case in.Experience == nil:
		missing = "experience analysis"
	case in.Education == nil:
		missing = "education analysis"
	case in.CulturalFit == nil:
		missing = "cultural fit analysis"
	case in.Report == nil:
		missing = "comprehensive report"
	}
	if missing != "" {
		return errors.NewProjectionError(errors.ErrCodeProjection,
			"Dashboard projection missing required input: "+missing, nil)
	}
	return nil
}

// rankingInfo maps the overall score into its bucket. Closed lower bounds,
// descending order, first match wins.
func rankingInfo(score float64) (category, recommendation string) {
	switch {
	case score >= thresholdExcellent:
		return "Excellent Fit", "Strong candidate - Proceed to final interview"
	case score >= thresholdGood:
		return "Good Fit", "Good candidate - Proceed to technical interview"
	case score >= thresholdFair:
		return "Fair Fit", "Potential candidate - Requires further evaluation"
	default:
		return "Poor Fit", "Not recommended for this position"
	}
}

// skillsMatchPercentage is matched/(matched+missing)*100 to 1 decimal,
// with 0.0 on a zero denominator rather than a division fault.
func skillsMatchPercentage(skills *types.SkillsAnalysis) float64 {
	matched := len(skills.MatchedSkills)
	total := matched + len(skills.MissingCriticalSkills)
	if total == 0 {
		return 0.0
	}
	return round1(float64(matched) / float64(total) * 100)
}

// criticalGaps builds the top-5 gap list in fixed composition order: up to
// two missing skills, then up to two experience gaps, then one education gap.
func criticalGaps(skills *types.SkillsAnalysis, experience *types.ExperienceAnalysis, education *types.EducationAnalysis) []string {
	gaps := make([]string, 0, 5)
	for _, skill := range firstN(skills.MissingCriticalSkills, 2) {
		gaps = append(gaps, "Missing skill: "+skill)
	}
	gaps = append(gaps, firstN(experience.ExperienceGaps, 2)...)
	gaps = append(gaps, firstN(education.EducationGaps, 1)...)
	return firstN(gaps, 5)
}

// interviewFocusAreas groups questions by category and returns the top four
// categories by count, ties broken by first occurrence.
func interviewFocusAreas(questions []types.InterviewQuestion) []string {
	counts := make(map[string]int)
	order := make([]string, 0, len(questions))
	for _, q := range questions {
		if _, seen := counts[q.Category]; !seen {
			order = append(order, q.Category)
		}
		counts[q.Category]++
	}

	// Insertion sort keeps the first-seen order stable for equal counts
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && counts[order[j]] > counts[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	return firstN(order, 4)
}

func suggestedQuestions(questions []types.InterviewQuestion) []types.SuggestedQuestion {
	out := make([]types.SuggestedQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, types.SuggestedQuestion{
			Category:   q.Category,
			Question:   q.Question,
			Difficulty: q.DifficultyLevel,
		})
	}
	return out
}

// assessmentPriorities returns all applicable priorities in fixed order.
func assessmentPriorities(overallScore float64, skills *types.SkillsAnalysis) []string {
	priorities := []string{}

	if overallScore < 7.0 {
		priorities = append(priorities, "Comprehensive technical assessment required")
	}
	if len(skills.MissingCriticalSkills) > 2 {
		priorities = append(priorities, "Focus on skill gap evaluation")
	}
	if overallScore >= 8.0 {
		priorities = append(priorities,
			"Cultural fit and team dynamics assessment",
			"Leadership potential evaluation")
	}

	return priorities
}

func chartsData(in Input) types.ChartsData {
	return types.ChartsData{
		RadarChart: types.RadarChart{
			Categories: []string{"Technical Skills", "Experience", "Education", "Cultural Fit", "Leadership"},
			Scores: []float64{
				round1(in.Skills.OverallMatchScore),
				round1(in.Experience.OverallExperienceScore),
				round1(in.Education.OverallEducationScore),
				round1(in.CulturalFit.CulturalFitScore),
				round1(in.Experience.LeadershipExperienceScore),
			},
		},
		SkillsDistribution: types.SkillsDistribution{
			Matched:      len(in.Skills.MatchedSkills),
			Missing:      len(in.Skills.MissingCriticalSkills),
			Transferable: len(in.Skills.TransferableSkills),
		},
		ExperienceBreakdown: types.ExperienceBreakdown{
			RelevantYears:     round1(in.Experience.RelevantExperienceYears),
			IndustryAlignment: round1(in.Experience.IndustryAlignmentScore),
			ProgressionScore:  round1(in.Experience.RoleProgressionScore),
		},
		EducationMetrics: types.EducationMetrics{
			DegreeRelevance:     round1(in.Education.FieldOfStudyRelevance),
			InstitutionQuality:  round1(in.Education.InstitutionQualityScore),
			CertificationsCount: len(in.Education.RelevantCertifications),
			ContinuousLearning:  len(in.Education.ContinuousLearningIndicators),
		},
		ScoreTrend: types.ScoreTrend{
			Labels: []string{"Skills", "Experience", "Education", "Cultural Fit"},
			Values: []float64{
				round1(in.Skills.OverallMatchScore),
				round1(in.Experience.OverallExperienceScore),
				round1(in.Education.OverallEducationScore),
				round1(in.CulturalFit.CulturalFitScore),
			},
		},
	}
}

func riskSummaries(risks []types.RiskFactor) []types.RiskSummary {
	out := make([]types.RiskSummary, 0, len(risks))
	for _, r := range risks {
		out = append(out, types.RiskSummary{
			Type:        r.RiskType,
			Severity:    r.Severity,
			Description: r.Description,
		})
	}
	return out
}

// developmentAreas surfaces up to five high or medium priority
// recommendations.
func developmentAreas(recs []types.RecommendationItem) []string {
	areas := []string{}
	for _, rec := range recs {
		if rec.Priority == "High" || rec.Priority == "Medium" {
			areas = append(areas, rec.Recommendation)
		}
	}
	return firstN(areas, 5)
}

func developmentPlan(recs []types.RecommendationItem) []types.DevelopmentPlanItem {
	plan := make([]types.DevelopmentPlanItem, 0, len(recs))
	for _, rec := range recs {
		plan = append(plan, types.DevelopmentPlanItem{
			Area:           rec.Category,
			Priority:       rec.Priority,
			Action:         rec.Recommendation,
			Timeline:       rec.Timeline,
			ExpectedImpact: rec.Impact,
		})
	}
	return plan
}

func candidateName(resume *types.ResumeData) string {
	if resume.Name == "" {
		return "Unknown Candidate"
	}
	return resume.Name
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
