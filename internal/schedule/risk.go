package schedule

// Risk tiers for the antenatal compliance heuristic.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// RiskFacts are the observable inputs to the antenatal risk heuristic.
type RiskFacts struct {
	MaternalAge       int  `json:"maternal_age"`
	GestationalWeek   int  `json:"gestational_week"`
	TetanusVaccinated bool `json:"tetanus_vaccinated"`
	IFASStarted       bool `json:"ifas_started"`
	VisitsAttended    int  `json:"visits_attended"`
	VisitsExpected    int  `json:"visits_expected"`
}

// RiskAssessment is the outcome of evaluating the rule table.
type RiskAssessment struct {
	Tier            string   `json:"tier"`
	Factors         []string `json:"factors,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

var tierRank = map[string]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2}

// escalate raises the assessment tier to at least the given severity and
// appends the triggering factor. Severities never downgrade, so rule order
// does not affect the final tier.
func (a *RiskAssessment) escalate(tier, factor, recommendation string) {
	if tierRank[tier] > tierRank[a.Tier] {
		a.Tier = tier
	}
	a.Factors = append(a.Factors, factor)
	if recommendation != "" {
		a.Recommendations = append(a.Recommendations, recommendation)
	}
}

// AssessANCRisk evaluates a flat rule table over the supplied facts. Rules
// are independent and unconditional; none suppresses another. Two or more
// medium-severity findings escalate the overall tier to high.
func AssessANCRisk(f RiskFacts) RiskAssessment {
	a := RiskAssessment{Tier: RiskLow}
	mediums := 0

	if f.MaternalAge > 0 && f.MaternalAge < 18 {
		a.escalate(RiskMedium,
			"Maternal age under 18",
			"Book all contacts at a facility with adolescent-friendly services")
		mediums++
	}
	if f.MaternalAge > 35 {
		a.escalate(RiskMedium,
			"Maternal age over 35",
			"Discuss additional screening with your provider")
		mediums++
	}
	if !f.TetanusVaccinated && f.GestationalWeek >= 20 {
		a.escalate(RiskMedium,
			"No tetanus toxoid dose recorded by week 20",
			"Receive a tetanus toxoid dose at the next contact")
		mediums++
	}
	if !f.IFASStarted && f.GestationalWeek >= 16 {
		a.escalate(RiskMedium,
			"Iron and folic acid supplementation not started by week 16",
			"Start daily IFAS immediately; it is free at public facilities")
		mediums++
	}
	if f.GestationalWeek >= 28 && f.VisitsExpected > 0 && f.VisitsAttended*2 < f.VisitsExpected {
		a.escalate(RiskHigh,
			"Fewer than half of expected ANC contacts attended by third trimester",
			"Attend the next available ANC contact as soon as possible")
	}
	if mediums >= 2 {
		a.escalate(RiskHigh,
			"Multiple moderate risk factors present", "")
	}
	return a
}
