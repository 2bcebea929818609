package domain

// ---------------- Operadores ----------------

// Operator identifica la variante de un Criterion. Es un conjunto cerrado:
// el parser de filtros sólo produce estos valores.
type Operator string

const (
	OpEq        Operator = "exact"     // field=value
	OpIn        Operator = "in"        // field=a,b,c
	OpLt        Operator = "lt"        // field=lt:10
	OpGt        Operator = "gt"        // field=gt:10
	OpEqual     Operator = "eq"        // field=eq:value
	OpNe        Operator = "ne"        // field=ne:value
	OpBool      Operator = "bool"      // field=true | field=false
	OpDateRange Operator = "daterange" // field=2024-01-01:2024-12-31
	OpSearch    Operator = "search"    // search=term
)

type LogicalOperator string

const (
	OpAnd LogicalOperator = "AND"
	OpOr  LogicalOperator = "OR"
)

// ---------------- Criterion ----------------

// Criterion describe una condición neutral de filtrado.
// Value guarda el operando crudo; Values sólo se usa con OpIn y OpDateRange
// (lista de alternativas y par desde/hasta respectivamente).
type Criterion struct {
	Field  string
	Op     Operator
	Value  string
	Values []string
}

// ---------------- Criteria interface ----------------

// Criteria permite transformar filtros a condiciones neutrales
type Criteria interface {
	ToConditions() []Criterion
}

// ToConditions permite usar un Criterion suelto donde se espera Criteria.
func (c Criterion) ToConditions() []Criterion {
	return []Criterion{c}
}

// ---------------- Composite Criteria ----------------

type CompositeCriteria struct {
	Operator  LogicalOperator
	Criterias []Criteria
}

func (c CompositeCriteria) ToConditions() []Criterion {
	var all []Criterion
	for _, crit := range c.Criterias {
		all = append(all, crit.ToConditions()...)
	}
	return all
}

// ---------------- Helpers ----------------

// And crea un CompositeCriteria con operador AND
func And(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpAnd, Criterias: criterias}
}

// Or crea un CompositeCriteria con operador OR
func Or(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpOr, Criterias: criterias}
}
