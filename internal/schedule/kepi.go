package schedule

// KEPISchedule is the Kenya Expanded Programme on Immunisation routine
// childhood table, anchored on the date of birth. Offsets follow the
// Ministry of Health schedule; entries sharing a week are given on the same
// visit and keep table order.
var KEPISchedule = []Entry{
	{
		Name: "BCG", Dose: 1, AgeWeeks: 0,
		Method:  "Intradermal, left forearm",
		Purpose: "Protects against severe forms of tuberculosis",
		SideEffects: []string{
			"Small swelling at the injection site that may scar",
		},
		Tips: []string{"A small scar after a few weeks is normal and shows the vaccine worked"},
	},
	{
		Name: "OPV", Dose: 0, AgeWeeks: 0,
		Method:  "Oral drops",
		Purpose: "Birth dose against poliomyelitis",
		Tips:    []string{"Do not feed the baby for 30 minutes after the drops"},
	},
	{
		Name: "OPV", Dose: 1, AgeWeeks: 6,
		Method:  "Oral drops",
		Purpose: "First routine dose against poliomyelitis",
	},
	{
		Name: "DPT-HepB-Hib", Dose: 1, AgeWeeks: 6,
		Method:  "Intramuscular, left outer thigh",
		Purpose: "Diphtheria, pertussis, tetanus, hepatitis B and Hib",
		SideEffects: []string{
			"Mild fever and soreness at the injection site for a day or two",
		},
		Tips: []string{"Give extra fluids; paracetamol may be used for fever as advised"},
	},
	{
		Name: "PCV10", Dose: 1, AgeWeeks: 6,
		Method:  "Intramuscular, right outer thigh",
		Purpose: "Pneumococcal disease (pneumonia, meningitis)",
	},
	{
		Name: "Rotavirus", Dose: 1, AgeWeeks: 6,
		Method:  "Oral",
		Purpose: "Rotavirus diarrhoeal disease",
	},
	{
		Name: "OPV", Dose: 2, AgeWeeks: 10,
		Method:  "Oral drops",
		Purpose: "Second routine dose against poliomyelitis",
	},
	{
		Name: "DPT-HepB-Hib", Dose: 2, AgeWeeks: 10,
		Method:  "Intramuscular, left outer thigh",
		Purpose: "Second pentavalent dose",
	},
	{
		Name: "PCV10", Dose: 2, AgeWeeks: 10,
		Method:  "Intramuscular, right outer thigh",
		Purpose: "Second pneumococcal dose",
	},
	{
		Name: "Rotavirus", Dose: 2, AgeWeeks: 10,
		Method:  "Oral",
		Purpose: "Second rotavirus dose",
	},
	{
		Name: "OPV", Dose: 3, AgeWeeks: 14,
		Method:  "Oral drops",
		Purpose: "Third routine dose against poliomyelitis",
	},
	{
		Name: "DPT-HepB-Hib", Dose: 3, AgeWeeks: 14,
		Method:  "Intramuscular, left outer thigh",
		Purpose: "Third pentavalent dose",
	},
	{
		Name: "PCV10", Dose: 3, AgeWeeks: 14,
		Method:  "Intramuscular, right outer thigh",
		Purpose: "Third pneumococcal dose",
	},
	{
		Name: "IPV", Dose: 1, AgeWeeks: 14,
		Method:  "Intramuscular, right outer thigh",
		Purpose: "Inactivated polio booster",
	},
	{
		Name: "Vitamin A", Dose: 1, AgeWeeks: 26,
		Method:  "Oral",
		Purpose: "Vitamin A supplementation at six months",
		Tips:    []string{"Repeated every six months until age five at well-child visits"},
	},
	{
		Name: "Measles-Rubella", Dose: 1, AgeWeeks: 39,
		Method:  "Subcutaneous, right upper arm",
		Purpose: "Measles and rubella at nine months",
		SideEffects: []string{
			"Mild fever or faint rash five to twelve days after vaccination",
		},
	},
	{
		Name: "Yellow Fever", Dose: 1, AgeWeeks: 39,
		Method:  "Subcutaneous, left upper arm",
		Purpose: "Yellow fever, given with MR1 in endemic counties",
	},
	{
		Name: "Measles-Rubella", Dose: 2, AgeWeeks: 78,
		Method:  "Subcutaneous, right upper arm",
		Purpose: "Second measles-rubella dose at eighteen months",
	},
}
