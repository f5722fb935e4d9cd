package llm

import (
	"context"
	"strings"
)

// DemoResponder serves canned answers when no provider key is configured.
// It never touches the network.
type DemoResponder struct{}

func NewDemoResponder() *DemoResponder {
	return &DemoResponder{}
}

func (d *DemoResponder) Generate(_ context.Context, req Request) (Result, error) {
	lower := strings.ToLower(req.Prompt)
	var content string
	switch {
	case strings.Contains(lower, "blueprint") || strings.Contains(lower, "full") || strings.Contains(lower, "master"):
		content = demoBlueprintJSON
	case strings.Contains(lower, "problem statement") || strings.Contains(lower, "expand"):
		content = demoExpandJSON
	default:
		content = demoMentorText
	}
	return Result{Content: content, Provider: ProviderDemo, Demo: true}, nil
}

func (d *DemoResponder) GenerateJSON(ctx context.Context, req Request) (JSONResult, error) {
	res, err := d.Generate(ctx, req)
	if err != nil {
		return JSONResult{}, err
	}
	return parseJSONContent(res)
}

func (d *DemoResponder) Status() Status {
	return Status{
		Demo: true,
		Providers: map[ProviderName]bool{
			ProviderGemini:     false,
			ProviderGroq:       false,
			ProviderOpenRouter: false,
		},
	}
}

const demoMentorText = "I'm running in demo mode right now, so this is a canned answer. " +
	"Once API keys are configured I can give tailored guidance. " +
	"In the meantime: break the project into milestones, start with the data model, " +
	"and build the simplest end-to-end flow before adding features."

const demoExpandJSON = `{
  "problem_statement": "Students and teachers waste class time on manual attendance, and paper records are easy to lose or falsify.",
  "target_users": ["Students", "Teachers", "Department coordinators"],
  "objectives": [
    "Cut attendance-taking time to under a minute per class",
    "Make attendance records tamper-resistant and auditable",
    "Give teachers a live view of who is present"
  ],
  "scope": "One department, web only, one semester of data",
  "what_this_means": "The project digitizes the roll call with QR codes and a live dashboard.",
  "why_this_matters": "Reclaimed class time and trustworthy records benefit every lecture."
}`

const demoBlueprintJSON = `{
  "summary": {
    "problem_statement": "Manual attendance wastes class time and paper records are unreliable.",
    "target_users": ["Students", "Teachers", "Department coordinators"],
    "objectives": [
      "Reduce attendance-taking time",
      "Prevent proxy attendance",
      "Provide exportable attendance reports"
    ],
    "scope": "One department, web only, one semester of data",
    "what_this_means": "The project replaces the paper roll call with QR check-ins and a live dashboard.",
    "why_this_matters": "Reclaimed class time and trustworthy records benefit every lecture."
  },
  "features": {
    "features": [
      {
        "feature_name": "QR Check-in",
        "what_it_does": "Shows a rotating QR code that students scan to mark themselves present.",
        "why_it_exists": "Manual roll calls are slow and easy to game.",
        "how_it_helps": "Attendance completes in seconds with a device the student already has.",
        "limitations": "Requires students to carry a smartphone."
      },
      {
        "feature_name": "Live Dashboard",
        "what_it_does": "Shows the teacher who has checked in, in real time.",
        "why_it_exists": "Teachers need to spot absentees during class, not after.",
        "how_it_helps": "Absence follow-up happens the same day.",
        "limitations": "Needs a stable network connection in the classroom."
      },
      {
        "feature_name": "Report Export",
        "what_it_does": "Exports per-student and per-class attendance as CSV.",
        "why_it_exists": "Departments require attendance percentages for eligibility rules.",
        "how_it_helps": "Removes manual spreadsheet work at the end of term.",
        "limitations": "Export formats are fixed in the first version."
      }
    ]
  },
  "feasibility": {
    "feasibility_level": "High",
    "feasibility_explanation": "All components use well-documented web technology and a small data model.",
    "strengths": ["Small scope", "Well-understood technology", "Clear user need"],
    "risks": ["QR sharing between students", "Classroom connectivity"],
    "why_this_matters": "A feasible scope means a working demo by mid-semester."
  },
  "system_flow": {
    "flow_title": "Attendance Check-in Flow",
    "steps": [
      {"step_number": 1, "actor": "Teacher", "action": "Starts a session and projects the QR code", "explanation": "The code rotates every few seconds to stop screenshots."},
      {"step_number": 2, "actor": "Student", "action": "Scans the code and confirms identity", "explanation": "The app binds the check-in to the student account and session."},
      {"step_number": 3, "actor": "System", "action": "Records the check-in and updates the dashboard", "explanation": "The teacher sees the roster fill in live."}
    ],
    "summary": "Teacher opens a session, students scan, the system records and displays."
  },
  "tech_stack": {
    "primary_stack": [
      {"category": "Frontend", "technology": "React", "justification": "Component model fits the live dashboard", "skill_level": "Beginner-friendly"},
      {"category": "Backend", "technology": "FastAPI", "justification": "Quick to build a small JSON API", "skill_level": "Beginner-friendly"},
      {"category": "Database", "technology": "PostgreSQL", "justification": "Relational model fits sessions and check-ins", "skill_level": "Intermediate"}
    ],
    "backup_stack": [
      {"category": "Database", "technology": "SQLite", "why_backup": "Zero-setup option for the demo"}
    ]
  },
  "comparison": {
    "existing_solutions": [
      {"solution_name": "Paper registers", "what_it_does": "Manual roll call on paper", "limitations": "Slow, lossy, easy to falsify"},
      {"solution_name": "Biometric scanners", "what_it_does": "Fingerprint-based attendance", "limitations": "Expensive hardware, privacy concerns"}
    ],
    "unique_aspects": ["No dedicated hardware", "Rotating codes resist proxy attendance"],
    "why_this_project_is_still_valuable": ["Low cost", "Works with devices students already own"],
    "summary_insight": "The project trades biometric certainty for zero hardware cost, which fits a college deployment."
  },
  "viva": {
    "project_overview_explanation": "A QR-code attendance system that replaces manual roll calls with instant check-ins.",
    "problem_statement_explanation": "Roll calls waste lecture time and paper records are easy to falsify.",
    "architecture_explanation": "A React frontend talks to a FastAPI backend that stores sessions and check-ins in PostgreSQL.",
    "unique_feature_explanation": "The rotating QR code bounds how long a leaked code stays useful.",
    "common_questions": [
      {"question": "Why rotate the QR code?", "suggested_answer": "A static code can be photographed and shared; rotation bounds the useful lifetime of a leak.", "why_asked": "Tests whether you understand the threat model."}
    ],
    "hackathon_questions": [
      {"question": "What would you build next with one more week?", "suggested_response": "Anomaly detection for check-in patterns that suggest code sharing.", "key_points": ["Know your roadmap", "Tie it to the core problem"]}
    ]
  },
  "pitch": {
    "thirty_second_pitch": "Attendance takes five minutes of every lecture. Our QR check-in cuts it to thirty seconds and gives teachers a live roster.",
    "one_minute_pitch": "Every lecture starts with a roll call that wastes class time and produces records nobody trusts. We built a QR-code attendance system: the teacher projects a rotating code, students scan it, and the dashboard fills in live. Records are auditable, exportable, and hard to fake, and the whole thing runs on devices everyone already carries.",
    "key_points": ["Saves class time", "Tamper-resistant records", "No new hardware"]
  },
  "diagrams": {
    "user_flow_mermaid": "flowchart TD\n    A[Teacher starts session] --> B[QR code displayed]\n    B --> C[Student scans code]\n    C --> D[Check-in recorded]\n    D --> E[Dashboard updates]",
    "tech_stack_mermaid": "flowchart LR\n    React --> FastAPI\n    FastAPI --> PostgreSQL"
  }
}`
