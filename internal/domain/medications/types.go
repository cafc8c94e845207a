package medications

// Frequency define la cadencia de los recordatorios de un medicamento.
// @Enum daily, weekly, monthly
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Category agrupa medicamentos para la UI. No afecta la lógica del core;
// viene del draft del chat o del formulario.
type Category string

const (
	CategoryPrescription Category = "prescription"
	CategoryOTC          Category = "otc"
	CategorySupplement   Category = "supplement"
	CategoryOther        Category = "other"
)
