package meter

// Field identifies one of the 39 electrical parameters carried by a Reading.
type Field int

const (
	FieldFrequency Field = iota

	FieldVoltAN
	FieldVoltBN
	FieldVoltCN
	FieldVoltLNAvg
	FieldVoltAB
	FieldVoltBC
	FieldVoltCA
	FieldVoltLLAvg

	FieldCurrA
	FieldCurrB
	FieldCurrC
	FieldCurrAvg
	FieldCurrN

	FieldWattA
	FieldWattB
	FieldWattC
	FieldWattTotal

	FieldVarA
	FieldVarB
	FieldVarC
	FieldVarTotal

	FieldVAA
	FieldVAB
	FieldVAC
	FieldVATotal

	FieldPFA
	FieldPFB
	FieldPFC
	FieldPFTotal

	FieldDemandW
	FieldDemandVar
	FieldDemandVA

	FieldImportKWh
	FieldExportKWh
	FieldImportKvarh
	FieldExportKvarh

	FieldTHDVolt
	FieldTHDCurr

	numFields
)

type fieldSpec struct {
	name   string
	column string
	get    func(*Reading) *float64
}

// fieldTable is the single parameter-name -> storage-column mapping. The store
// builds its SELECT list from it and the presentation layer reads parameters
// through it, so a renamed column only ever changes one line here.
var fieldTable = [numFields]fieldSpec{
	FieldFrequency: {"frequency", "frequency", func(r *Reading) *float64 { return r.Frequency }},

	FieldVoltAN:    {"voltAN", "volt_an", func(r *Reading) *float64 { return r.VoltAN }},
	FieldVoltBN:    {"voltBN", "volt_bn", func(r *Reading) *float64 { return r.VoltBN }},
	FieldVoltCN:    {"voltCN", "volt_cn", func(r *Reading) *float64 { return r.VoltCN }},
	FieldVoltLNAvg: {"voltLN", "volt_ln_avg", func(r *Reading) *float64 { return r.VoltLNAvg }},
	FieldVoltAB:    {"voltAB", "volt_ab", func(r *Reading) *float64 { return r.VoltAB }},
	FieldVoltBC:    {"voltBC", "volt_bc", func(r *Reading) *float64 { return r.VoltBC }},
	FieldVoltCA:    {"voltCA", "volt_ca", func(r *Reading) *float64 { return r.VoltCA }},
	FieldVoltLLAvg: {"voltLL", "volt_ll_avg", func(r *Reading) *float64 { return r.VoltLLAvg }},

	FieldCurrA:   {"currentA", "curr_a", func(r *Reading) *float64 { return r.CurrA }},
	FieldCurrB:   {"currentB", "curr_b", func(r *Reading) *float64 { return r.CurrB }},
	FieldCurrC:   {"currentC", "curr_c", func(r *Reading) *float64 { return r.CurrC }},
	FieldCurrAvg: {"currentAvg", "curr_avg", func(r *Reading) *float64 { return r.CurrAvg }},
	FieldCurrN:   {"currentN", "curr_n", func(r *Reading) *float64 { return r.CurrN }},

	FieldWattA:     {"wattA", "watt_a", func(r *Reading) *float64 { return r.WattA }},
	FieldWattB:     {"wattB", "watt_b", func(r *Reading) *float64 { return r.WattB }},
	FieldWattC:     {"wattC", "watt_c", func(r *Reading) *float64 { return r.WattC }},
	FieldWattTotal: {"watt", "watt_total", func(r *Reading) *float64 { return r.WattTotal }},

	FieldVarA:     {"varA", "var_a", func(r *Reading) *float64 { return r.VarA }},
	FieldVarB:     {"varB", "var_b", func(r *Reading) *float64 { return r.VarB }},
	FieldVarC:     {"varC", "var_c", func(r *Reading) *float64 { return r.VarC }},
	FieldVarTotal: {"var", "var_total", func(r *Reading) *float64 { return r.VarTotal }},

	FieldVAA:     {"vaA", "va_a", func(r *Reading) *float64 { return r.VAA }},
	FieldVAB:     {"vaB", "va_b", func(r *Reading) *float64 { return r.VAB }},
	FieldVAC:     {"vaC", "va_c", func(r *Reading) *float64 { return r.VAC }},
	FieldVATotal: {"va", "va_total", func(r *Reading) *float64 { return r.VATotal }},

	FieldPFA:     {"powerFactorA", "pf_a", func(r *Reading) *float64 { return r.PFA }},
	FieldPFB:     {"powerFactorB", "pf_b", func(r *Reading) *float64 { return r.PFB }},
	FieldPFC:     {"powerFactorC", "pf_c", func(r *Reading) *float64 { return r.PFC }},
	FieldPFTotal: {"powerFactor", "pf_total", func(r *Reading) *float64 { return r.PFTotal }},

	FieldDemandW:   {"demandW", "demand_w", func(r *Reading) *float64 { return r.DemandW }},
	FieldDemandVar: {"demandVar", "demand_var", func(r *Reading) *float64 { return r.DemandVar }},
	FieldDemandVA:  {"demandVA", "demand_va", func(r *Reading) *float64 { return r.DemandVA }},

	FieldImportKWh:   {"importKwh", "import_kwh", func(r *Reading) *float64 { return r.ImportKWh }},
	FieldExportKWh:   {"exportKwh", "export_kwh", func(r *Reading) *float64 { return r.ExportKWh }},
	FieldImportKvarh: {"importKvarh", "import_kvarh", func(r *Reading) *float64 { return r.ImportKvarh }},
	FieldExportKvarh: {"exportKvarh", "export_kvarh", func(r *Reading) *float64 { return r.ExportKvarh }},

	FieldTHDVolt: {"thdVolt", "thd_volt", func(r *Reading) *float64 { return r.THDVolt }},
	FieldTHDCurr: {"thdCurrent", "thd_curr", func(r *Reading) *float64 { return r.THDCurr }},
}

// Name returns the wire name of the parameter.
func (f Field) Name() string { return fieldTable[f].name }

// Column returns the storage column of the parameter.
func (f Field) Column() string { return fieldTable[f].column }

// Value reads the parameter from a reading without coercing nil.
func Value(r *Reading, f Field) *float64 { return fieldTable[f].get(r) }

// Columns returns the storage columns of all parameters in declaration order.
func Columns() []string {
	cols := make([]string, 0, len(fieldTable))
	for _, spec := range fieldTable {
		cols = append(cols, spec.column)
	}
	return cols
}
