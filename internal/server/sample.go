package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"hiresight/internal/dashboard"
	"hiresight/internal/types"
	"hiresight/internal/workflow"
)

// SampleDashboard returns a deterministic dashboard document for front-end
// development, projected from a fixed set of pipeline results.
func SampleDashboard() (*types.DashboardData, error) {
	job := &types.JobRequirements{
		RoleTitle:             "Senior Backend Engineer",
		Company:               "Acme Corp",
		RequiredSkills:        []string{"Go", "PostgreSQL", "Kubernetes", "REST APIs"},
		PreferredSkills:       []string{"Terraform", "gRPC"},
		ExperienceLevel:       "5+ years",
		EducationRequirements: []string{"Bachelor's degree in Computer Science or related field"},
		Responsibilities:      []string{"Design and operate backend services", "Mentor junior engineers"},
		CultureKeywords:       []string{"ownership", "collaboration", "continuous learning"},
		Industry:              "Software",
		SeniorityLevel:        "Senior",
	}

	resume := &types.ResumeData{
		Name:  "John Doe",
		Email: "john.doe@example.com",
		Phone: "+1-555-0100",
		Skills: []string{
			"Go", "PostgreSQL", "Kubernetes", "REST APIs", "Docker", "Python",
			"CI/CD", "Linux", "Redis", "Git", "Microservices", "Monitoring",
		},
		WorkExperience: []types.WorkExperience{
			{
				Company:          "TechCo",
				Position:         "Backend Engineer",
				Duration:         "2019 - 2024",
				Responsibilities: []string{"Built payment processing services", "Led on-call rotation"},
				Achievements:     []string{"Reduced p99 latency by 40%"},
			},
		},
		Education: []types.Education{
			{
				Institution:    "State University",
				Degree:         "Bachelor of Science",
				FieldOfStudy:   "Computer Science",
				GraduationYear: "2018",
			},
		},
		Certifications: []string{"CKA"},
		Projects:       []string{"Open source contributions to a Go HTTP router"},
		Summary:        "Backend engineer with six years of distributed systems experience.",
	}

	skills := &types.SkillsAnalysis{
		OverallMatchScore: 8.5,
		MatchedSkills: []string{
			"Go", "PostgreSQL", "Kubernetes", "REST APIs", "Docker", "CI/CD",
			"Linux", "Redis", "Git", "Microservices", "Monitoring", "Python",
		},
		MissingCriticalSkills: []string{"Terraform", "gRPC", "Kafka"},
		TransferableSkills:    []string{"Python", "CI/CD", "Docker", "Monitoring", "Linux"},
		SkillCategories: map[string][]string{
			"technical": {"Go", "PostgreSQL", "Kubernetes"},
			"tools":     {"Docker", "Git"},
			"soft":      {"Mentoring"},
			"domain":    {"Payments"},
		},
		Recommendations: []string{"Gain hands-on Terraform experience"},
	}

	experience := &types.ExperienceAnalysis{
		OverallExperienceScore:    8.0,
		RelevantExperienceYears:   6.0,
		IndustryAlignmentScore:    8.2,
		RoleProgressionScore:      7.8,
		LeadershipExperienceScore: 7.5,
		AchievementsQualityScore:  8.4,
		ExperienceGaps:            []string{"Limited experience with cloud technologies"},
		Strengths:                 []string{"Proven track record of project delivery", "Excellent leadership experience"},
	}

	education := &types.EducationAnalysis{
		OverallEducationScore:   7.5,
		DegreeAlignmentScore:    8.0,
		FieldOfStudyRelevance:   8.5,
		InstitutionQualityScore: 7.0,
		EducationLevelMatch:     true,
		RelevantCertifications: []types.CertificationAnalysis{
			{
				CertificationName:   "CKA",
				RelevanceScore:      8.5,
				ValidityStatus:      "valid",
				IndustryRecognition: "high",
			},
		},
		MissingCertifications:        []string{"No formal certification in required domain"},
		ContinuousLearningIndicators: []string{"Open source contributions"},
		EducationStrengths:           []string{"Computer science fundamentals"},
		EducationGaps:                []string{},
		Recommendations:              []string{"Consider a cloud architecture certification"},
	}

	cultural := &types.CulturalFitAnalysis{
		CulturalFitScore:         8.8,
		SoftSkillsIdentified:     []string{"Communication", "Mentoring", "Ownership"},
		CommunicationStyle:       "Direct and collaborative",
		LeadershipIndicators:     []string{"Led on-call rotation", "Mentored junior engineers"},
		TeamCollaborationSignals: []string{"Cross-team payment project"},
		AdaptabilityScore:        8.0,
		CulturalAlignmentFactors: []string{"ownership", "continuous learning"},
	}

	report := &types.ComprehensiveReport{
		ExecutiveSummary:      "Strong senior backend candidate with deep Go and infrastructure experience.",
		OverallRecommendation: "Strong candidate - Proceed to final interview",
		HiringConfidence:      0.85,
		KeyStrengths: []string{
			"Strong technical skills in required technologies",
			"Excellent leadership experience",
			"Proven track record of project delivery",
		},
		CriticalConcerns: []string{"Limited experience with cloud technologies"},
		InterviewQuestions: []types.InterviewQuestion{
			{
				Category:        "Technical",
				Question:        "Walk through the architecture of the payment service you built.",
				FocusArea:       "System design",
				DifficultyLevel: "Hard",
			},
			{
				Category:        "Leadership",
				Question:        "How do you approach mentoring engineers with different experience levels?",
				FocusArea:       "Team management",
				DifficultyLevel: "Medium",
			},
		},
		DevelopmentRecommendations: []types.RecommendationItem{
			{
				Category:       "Technical",
				Priority:       "High",
				Recommendation: "Build production experience with Terraform",
				Timeline:       "3 months",
				Impact:         "Closes the main infrastructure gap",
			},
		},
		RiskFactors: []types.RiskFactor{
			{
				RiskType:           "Skill gap",
				Severity:           "Low",
				Description:        "No production Terraform experience",
				MitigationStrategy: "Pair with the platform team during onboarding",
			},
		},
		SalaryRecommendationRange: "$150,000 - $175,000",
		OnboardingSuggestions:     []string{"Pair with the platform team for the first month"},
		PerformancePredictions: map[string]string{
			"first_90_days": "Ramped on core services and shipping independently",
			"six_months":    "Owning a service area and mentoring",
			"one_year":      "Leading a major backend initiative",
		},
	}

	overall := workflow.OverallScore(
		skills.OverallMatchScore,
		experience.OverallExperienceScore,
		education.OverallEducationScore,
		cultural.CulturalFitScore,
	)

	return dashboard.Project(dashboard.Input{
		Job:          job,
		Resume:       resume,
		Skills:       skills,
		Experience:   experience,
		Education:    education,
		CulturalFit:  cultural,
		Report:       report,
		OverallScore: overall,
		GeneratedAt:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	})
}

// sampleHandler serves the static sample dashboard document
func (s *Server) sampleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := SampleDashboard()
	if err != nil {
		s.Logger.LogError(err, "Failed to build sample dashboard")
		http.Error(w, "Failed to build sample dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode sample response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
