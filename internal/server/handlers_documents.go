package server

import (
	"net/http"

	"github.com/Dileep2896/visapath/internal/rules"
)

// RequiredDocument is one item on a filing checklist.
type RequiredDocument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	WhereToGet  string `json:"where_to_get"`
}

// DocumentChecklist is the full checklist for one application step.
type DocumentChecklist struct {
	Step      string             `json:"step"`
	Documents []RequiredDocument `json:"documents"`
}

// documentRequirements maps application steps to their checklists.
var documentRequirements = map[string]DocumentChecklist{
	"opt_application": {
		Step: "OPT Application",
		Documents: []RequiredDocument{
			{Name: "Form I-765", Description: "Application for Employment Authorization", WhereToGet: "USCIS website (file online or by mail)"},
			{Name: "Updated I-20", Description: "With OPT recommendation from your DSO on page 2", WhereToGet: "Your university DSO office"},
			{Name: "Passport Photos", Description: "2 passport-style photos (2x2 inches, white background)", WhereToGet: "CVS, Walgreens, or online passport photo service"},
			{Name: "I-94 Record", Description: "Most recent arrival/departure record", WhereToGet: "i94.cbp.dhs.gov"},
			{Name: "Passport Copy", Description: "Photo page and US visa stamp page", WhereToGet: "Your passport"},
			{Name: "Previous EAD Cards", Description: "Copies of any previous Employment Authorization Documents", WhereToGet: "Your records"},
			{Name: "All Previous I-20s", Description: "Copies of all I-20 forms from current and previous programs", WhereToGet: "Your records"},
			{Name: "Filing Fee", Description: "I-765 filing fee ($410 as of 2024, check current amount)", WhereToGet: "USCIS fee schedule page"},
		},
	},
	"stem_opt_extension": {
		Step: "STEM OPT Extension",
		Documents: []RequiredDocument{
			{Name: "Form I-765", Description: "Application for Employment Authorization (STEM extension)", WhereToGet: "USCIS website"},
			{Name: "Form I-983", Description: "Training Plan for STEM OPT Students, completed with employer", WhereToGet: "ICE.gov (Study in the States)"},
			{Name: "Updated I-20", Description: "With STEM OPT extension recommendation from DSO", WhereToGet: "Your university DSO office"},
			{Name: "Degree Certificate/Transcript", Description: "Proof of STEM degree completion", WhereToGet: "Your university registrar"},
			{Name: "Current EAD Card", Description: "Copy of your current OPT EAD", WhereToGet: "Your records"},
			{Name: "Passport Photos", Description: "2 passport-style photos (2x2 inches)", WhereToGet: "CVS, Walgreens, or online service"},
			{Name: "E-Verify Confirmation", Description: "Proof that employer is enrolled in E-Verify", WhereToGet: "Your employer's HR department"},
		},
	},
	"h1b_petition": {
		Step: "H-1B Petition",
		Documents: []RequiredDocument{
			{Name: "Labor Condition Application (LCA)", Description: "Filed by employer with DOL before H-1B petition", WhereToGet: "Employer/attorney handles this"},
			{Name: "Form I-129", Description: "Petition for Nonimmigrant Worker", WhereToGet: "Filed by employer/attorney"},
			{Name: "Degree Certificate", Description: "Bachelor's or higher degree relevant to the position", WhereToGet: "Your university"},
			{Name: "Transcripts", Description: "Official transcripts from your degree program", WhereToGet: "Your university registrar"},
			{Name: "Resume/CV", Description: "Updated resume showing qualifications for the position", WhereToGet: "You prepare this"},
			{Name: "Passport Copy", Description: "Valid passport with at least 6 months validity", WhereToGet: "Your passport / consulate for renewal"},
			{Name: "Previous Approval Notices", Description: "Any previous I-797 approval notices", WhereToGet: "Your records"},
			{Name: "Credential Evaluation", Description: "If degree is from outside the US, need credential evaluation", WhereToGet: "WES, ECE, or other NACES member"},
		},
	},
	"green_card_perm": {
		Step: "Green Card - PERM Labor Certification",
		Documents: []RequiredDocument{
			{Name: "ETA Form 9089", Description: "PERM labor certification application", WhereToGet: "Employer/attorney handles filing"},
			{Name: "Resume/CV", Description: "Detailed resume matching the job requirements", WhereToGet: "You prepare this"},
			{Name: "Experience Letters", Description: "Letters from previous employers verifying job duties and dates", WhereToGet: "Previous employers' HR departments"},
			{Name: "Degree Certificates", Description: "All degree certificates and transcripts", WhereToGet: "Your universities"},
			{Name: "Credential Evaluation", Description: "Foreign degree evaluation if applicable", WhereToGet: "WES, ECE, or other NACES member"},
		},
	},
}

// documentSteps lists the checklist step keys in display order.
var documentSteps = []string{"opt_application", "stem_opt_extension", "h1b_petition", "green_card_perm"}

// handleRequiredDocuments returns the checklist for a step, or every
// checklist when no step is given.
func (s *Server) handleRequiredDocuments(w http.ResponseWriter, r *http.Request) {
	step := r.URL.Query().Get("step")
	if step != "" {
		if checklist, ok := documentRequirements[step]; ok {
			s.jsonResponse(w, http.StatusOK, checklist)
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"available_steps": documentSteps,
		"documents":       documentRequirements,
	})
}

// handleVisaTypes returns the visa category catalog.
func (s *Server) handleVisaTypes(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"visa_types":    rules.VisaTypes,
		"degree_levels": rules.DegreeLevels,
	})
}
