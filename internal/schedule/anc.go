package schedule

// ANCSchedule is the WHO eight-contact antenatal care cadence adopted by the
// Kenyan focused antenatal care guidelines, anchored on the last menstrual
// period. Doses here are contact ordinals.
var ANCSchedule = []Entry{
	{
		Name: "ANC Contact", Dose: 1, AgeWeeks: 12,
		Method:  "Clinic visit",
		Purpose: "Booking: history, baseline weight and BP, profile bloods, IFAS start",
		Tips: []string{
			"Carry your mother and child health booklet to every visit",
			"Start iron and folic acid supplements and take them daily",
		},
	},
	{
		Name: "ANC Contact", Dose: 2, AgeWeeks: 20,
		Method:  "Clinic visit",
		Purpose: "Ultrasound window, tetanus toxoid dose, fetal movement review",
	},
	{
		Name: "ANC Contact", Dose: 3, AgeWeeks: 26,
		Method:  "Clinic visit",
		Purpose: "Fundal height, anaemia screening, malaria prophylaxis where endemic",
	},
	{
		Name: "ANC Contact", Dose: 4, AgeWeeks: 30,
		Method:  "Clinic visit",
		Purpose: "BP and urine protein check, birth plan discussion",
	},
	{
		Name: "ANC Contact", Dose: 5, AgeWeeks: 34,
		Method:  "Clinic visit",
		Purpose: "Presentation check, danger sign counselling",
	},
	{
		Name: "ANC Contact", Dose: 6, AgeWeeks: 36,
		Method:  "Clinic visit",
		Purpose: "Presentation confirmation, facility delivery planning",
	},
	{
		Name: "ANC Contact", Dose: 7, AgeWeeks: 38,
		Method:  "Clinic visit",
		Purpose: "Term review, repeat bloods where indicated",
	},
	{
		Name: "ANC Contact", Dose: 8, AgeWeeks: 40,
		Method:  "Clinic visit",
		Purpose: "Due date review and referral if undelivered",
		Tips:    []string{"Head to a facility promptly once labour starts"},
	},
}

// GestationDays is the conventional pregnancy length used to derive the
// estimated due date from the last menstrual period.
const GestationDays = 280
