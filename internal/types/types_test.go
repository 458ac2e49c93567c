package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

// roundTrip marshals v, unmarshals into out, and fails the test on any error.
func roundTrip(t *testing.T, v, out any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %T: %v", v, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal %T: %v", out, err)
	}
}

func TestPipelineResultsSurviveJSONRoundTrip(t *testing.T) {
	job := JobRequirements{
		RoleTitle:             "Senior Backend Engineer",
		Company:               "Example Corp",
		RequiredSkills:        []string{"Go", "PostgreSQL"},
		PreferredSkills:       []string{"Kubernetes"},
		ExperienceLevel:       "senior",
		EducationRequirements: []string{"BS Computer Science"},
		Responsibilities:      []string{"Design services", "Mentor engineers"},
		CultureKeywords:       []string{"ownership", "collaboration"},
		Industry:              "fintech",
		SeniorityLevel:        "senior",
	}
	var gotJob JobRequirements
	roundTrip(t, job, &gotJob)
	if !reflect.DeepEqual(job, gotJob) {
		t.Errorf("JobRequirements changed across round trip:\n got %+v\nwant %+v", gotJob, job)
	}

	resume := ResumeData{
		Name:   "Jane Smith",
		Email:  "jane@example.com",
		Phone:  "+1-555-0100",
		Skills: []string{"Go", "Terraform"},
		WorkExperience: []WorkExperience{{
			Company:          "Acme",
			Position:         "Platform Engineer",
			Duration:         "2019-2024",
			Responsibilities: []string{"Ran the deploy pipeline"},
			Achievements:     []string{"Cut release time by 40%"},
		}},
		Education: []Education{{
			Institution:    "State University",
			Degree:         "BS",
			FieldOfStudy:   "Computer Science",
			GraduationYear: "2018",
		}},
		Certifications: []string{"CKA"},
		Projects:       []string{"Internal CLI tooling"},
		Summary:        "Infrastructure-focused engineer.",
	}
	var gotResume ResumeData
	roundTrip(t, resume, &gotResume)
	if !reflect.DeepEqual(resume, gotResume) {
		t.Errorf("ResumeData changed across round trip:\n got %+v\nwant %+v", gotResume, resume)
	}
}

func TestAnalysisResultsSurviveJSONRoundTrip(t *testing.T) {
	skills := SkillsAnalysis{
		OverallMatchScore:     8.2,
		MatchedSkills:         []string{"Go"},
		MissingCriticalSkills: []string{"Rust"},
		TransferableSkills:    []string{"CI/CD"},
		SkillCategories:       map[string][]string{"languages": {"Go", "Python"}},
		Recommendations:       []string{"Pair on Rust services"},
	}
	var gotSkills SkillsAnalysis
	roundTrip(t, skills, &gotSkills)
	if !reflect.DeepEqual(skills, gotSkills) {
		t.Errorf("SkillsAnalysis changed across round trip:\n got %+v\nwant %+v", gotSkills, skills)
	}

	experience := ExperienceAnalysis{
		OverallExperienceScore:    7.5,
		RelevantExperienceYears:   6.5,
		IndustryAlignmentScore:    8.0,
		RoleProgressionScore:      7.0,
		LeadershipExperienceScore: 6.0,
		AchievementsQualityScore:  8.5,
		ExperienceGaps:            []string{"No fintech background"},
		Strengths:                 []string{"Steady progression"},
	}
	var gotExperience ExperienceAnalysis
	roundTrip(t, experience, &gotExperience)
	if !reflect.DeepEqual(experience, gotExperience) {
		t.Errorf("ExperienceAnalysis changed across round trip:\n got %+v\nwant %+v", gotExperience, experience)
	}

	education := EducationAnalysis{
		OverallEducationScore:   7.8,
		DegreeAlignmentScore:    8.0,
		FieldOfStudyRelevance:   9.0,
		InstitutionQualityScore: 7.0,
		EducationLevelMatch:     true,
		RelevantCertifications: []CertificationAnalysis{{
			CertificationName:   "CKA",
			RelevanceScore:      8.5,
			ValidityStatus:      "active",
			IndustryRecognition: "high",
		}},
		MissingCertifications:        []string{"AWS SA"},
		ContinuousLearningIndicators: []string{"Recent certification"},
		EducationStrengths:           []string{"Relevant degree"},
		EducationGaps:                []string{},
		Recommendations:              []string{"Consider cloud certification"},
	}
	var gotEducation EducationAnalysis
	roundTrip(t, education, &gotEducation)
	if !reflect.DeepEqual(education, gotEducation) {
		t.Errorf("EducationAnalysis changed across round trip:\n got %+v\nwant %+v", gotEducation, education)
	}

	cultural := CulturalFitAnalysis{
		CulturalFitScore:         8.0,
		SoftSkillsIdentified:     []string{"communication"},
		CommunicationStyle:       "direct",
		LeadershipIndicators:     []string{"Mentored juniors"},
		TeamCollaborationSignals: []string{"Cross-team projects"},
		AdaptabilityScore:        7.5,
		CulturalAlignmentFactors: []string{"ownership mentions"},
	}
	var gotCultural CulturalFitAnalysis
	roundTrip(t, cultural, &gotCultural)
	if !reflect.DeepEqual(cultural, gotCultural) {
		t.Errorf("CulturalFitAnalysis changed across round trip:\n got %+v\nwant %+v", gotCultural, cultural)
	}
}

func TestComprehensiveReportSurvivesJSONRoundTrip(t *testing.T) {
	report := ComprehensiveReport{
		ExecutiveSummary:      "Strong technical candidate with minor domain gaps.",
		OverallRecommendation: "hire",
		HiringConfidence:      0.82,
		KeyStrengths:          []string{"Go expertise"},
		CriticalConcerns:      []string{"No fintech exposure"},
		InterviewQuestions: []InterviewQuestion{{
			Category:        "technical",
			Question:        "Walk through a service you designed end to end.",
			FocusArea:       "system design",
			DifficultyLevel: "hard",
		}},
		DevelopmentRecommendations: []RecommendationItem{{
			Category:       "domain",
			Priority:       "medium",
			Recommendation: "Shadow the payments team",
			Timeline:       "first quarter",
			Impact:         "faster ramp-up",
		}},
		RiskFactors: []RiskFactor{{
			RiskType:           "domain",
			Severity:           "low",
			Description:        "Unfamiliar with payment rails",
			MitigationStrategy: "Structured onboarding",
		}},
		SalaryRecommendationRange: "$150k-$180k",
		OnboardingSuggestions:     []string{"Assign a payments mentor"},
		PerformancePredictions:    map[string]string{"6_months": "fully productive"},
	}

	var got ComprehensiveReport
	roundTrip(t, report, &got)
	if !reflect.DeepEqual(report, got) {
		t.Errorf("ComprehensiveReport changed across round trip:\n got %+v\nwant %+v", got, report)
	}
}
