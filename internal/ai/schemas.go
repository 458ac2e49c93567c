package ai

import (
	"google.golang.org/genai"

	"hiresight/internal/config"
)

// Response schemas for structured JSON output. Each schema mirrors the
// corresponding result type in internal/types so that result.Text()
// unmarshals directly into it.

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

func jobRequirementsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"role_title":               {Type: genai.TypeString},
			"company":                  {Type: genai.TypeString},
			"required_skills":          stringList(),
			"preferred_skills":         stringList(),
			"experience_level":         {Type: genai.TypeString},
			"education_requirements":   stringList(),
			"responsibilities":         stringList(),
			"company_culture_keywords": stringList(),
			"industry":                 {Type: genai.TypeString},
			"seniority_level":          {Type: genai.TypeString},
		},
		Required: []string{"role_title", "required_skills", "experience_level"},
	}
}

func resumeDataSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":   {Type: genai.TypeString},
			"email":  {Type: genai.TypeString},
			"phone":  {Type: genai.TypeString},
			"skills": stringList(),
			"work_experience": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"company":          {Type: genai.TypeString},
						"position":         {Type: genai.TypeString},
						"duration":         {Type: genai.TypeString},
						"responsibilities": stringList(),
						"achievements":     stringList(),
					},
					Required: []string{"company", "position"},
				},
			},
			"education": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"institution":     {Type: genai.TypeString},
						"degree":          {Type: genai.TypeString},
						"field_of_study":  {Type: genai.TypeString},
						"graduation_year": {Type: genai.TypeString},
					},
					Required: []string{"institution", "degree"},
				},
			},
			"certifications": stringList(),
			"projects":       stringList(),
			"summary":        {Type: genai.TypeString},
		},
		Required: []string{"name", "skills", "work_experience", "education"},
	}
}

func skillsAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overall_match_score":     {Type: genai.TypeNumber},
			"matched_skills":          stringList(),
			"missing_critical_skills": stringList(),
			"transferable_skills":     stringList(),
			"skill_categories": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"technical": stringList(),
					"soft":      stringList(),
					"domain":    stringList(),
					"tools":     stringList(),
				},
			},
			"recommendations": stringList(),
		},
		Required: []string{"overall_match_score", "matched_skills", "missing_critical_skills", "transferable_skills"},
	}
}

func experienceAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overall_experience_score":    {Type: genai.TypeNumber},
			"relevant_experience_years":   {Type: genai.TypeNumber},
			"industry_alignment_score":    {Type: genai.TypeNumber},
			"role_progression_score":      {Type: genai.TypeNumber},
			"leadership_experience_score": {Type: genai.TypeNumber},
			"achievements_quality_score":  {Type: genai.TypeNumber},
			"experience_gaps":             stringList(),
			"strengths":                   stringList(),
		},
		Required: []string{
			"overall_experience_score", "relevant_experience_years", "industry_alignment_score",
			"role_progression_score", "leadership_experience_score", "achievements_quality_score",
		},
	}
}

func certificationAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"certification_name":   {Type: genai.TypeString},
			"relevance_score":      {Type: genai.TypeNumber},
			"validity_status":      {Type: genai.TypeString},
			"industry_recognition": {Type: genai.TypeString},
		},
		Required: []string{"certification_name", "relevance_score"},
	}
}

func educationAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"overall_education_score":   {Type: genai.TypeNumber},
			"degree_alignment_score":    {Type: genai.TypeNumber},
			"field_of_study_relevance":  {Type: genai.TypeNumber},
			"institution_quality_score": {Type: genai.TypeNumber},
			"education_level_match":     {Type: genai.TypeBoolean},
			"relevant_certifications": {
				Type:  genai.TypeArray,
				Items: certificationAnalysisSchema(),
			},
			"missing_certifications":         stringList(),
			"continuous_learning_indicators": stringList(),
			"education_strengths":            stringList(),
			"education_gaps":                 stringList(),
			"recommendations":                stringList(),
		},
		Required: []string{
			"overall_education_score", "degree_alignment_score", "field_of_study_relevance",
			"institution_quality_score", "education_level_match",
		},
	}
}

func culturalFitAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"cultural_fit_score":         {Type: genai.TypeNumber},
			"soft_skills_identified":     stringList(),
			"communication_style":        {Type: genai.TypeString},
			"leadership_indicators":      stringList(),
			"team_collaboration_signals": stringList(),
			"adaptability_score":         {Type: genai.TypeNumber},
			"cultural_alignment_factors": stringList(),
		},
		Required: []string{"cultural_fit_score", "adaptability_score", "communication_style"},
	}
}

func comprehensiveReportSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"executive_summary":      {Type: genai.TypeString},
			"overall_recommendation": {Type: genai.TypeString},
			"hiring_confidence":      {Type: genai.TypeNumber},
			"key_strengths":          stringList(),
			"critical_concerns":      stringList(),
			"interview_questions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category":         {Type: genai.TypeString},
						"question":         {Type: genai.TypeString},
						"focus_area":       {Type: genai.TypeString},
						"difficulty_level": {Type: genai.TypeString},
					},
					Required: []string{"category", "question"},
				},
			},
			"development_recommendations": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category":       {Type: genai.TypeString},
						"priority":       {Type: genai.TypeString},
						"recommendation": {Type: genai.TypeString},
						"timeline":       {Type: genai.TypeString},
						"impact":         {Type: genai.TypeString},
					},
					Required: []string{"category", "priority", "recommendation"},
				},
			},
			"risk_factors": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"risk_type":           {Type: genai.TypeString},
						"severity":            {Type: genai.TypeString},
						"description":         {Type: genai.TypeString},
						"mitigation_strategy": {Type: genai.TypeString},
					},
					Required: []string{"risk_type", "severity", "description"},
				},
			},
			"salary_recommendation_range": {Type: genai.TypeString},
			"onboarding_suggestions":      stringList(),
			"performance_predictions": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"first_90_days": {Type: genai.TypeString},
					"six_months":    {Type: genai.TypeString},
					"one_year":      {Type: genai.TypeString},
				},
			},
		},
		Required: []string{"executive_summary", "overall_recommendation", "hiring_confidence", "key_strengths"},
	}
}

// stageResponseSchema maps a pipeline stage to its response schema.
func stageResponseSchema(stage string) *genai.Schema {
	switch stage {
	case config.StageParseJob:
		return jobRequirementsSchema()
	case config.StageExtractResume:
		return resumeDataSchema()
	case config.StageAnalyzeSkills:
		return skillsAnalysisSchema()
	case config.StageEvaluateExperience:
		return experienceAnalysisSchema()
	case config.StageAnalyzeEducation:
		return educationAnalysisSchema()
	case config.StageAnalyzeCulturalFit:
		return culturalFitAnalysisSchema()
	case config.StageGenerateReport:
		return comprehensiveReportSchema()
	default:
		return nil
	}
}
