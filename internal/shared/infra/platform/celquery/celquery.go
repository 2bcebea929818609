// Package celquery filtra records con expresiones CEL sobre la variable "r".
//
//	r.supplyType == "B2B" && r.totalValue > 50000
//	r.invoiceData.BuyerDtls.Stcd in ["29", "36"]
package celquery

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/query"
)

const (
	// RecordVar es el nombre de la variable que contiene el record.
	RecordVar = "r"

	// MaxEvalCost acota el coste de evaluar la expresión sobre un record.
	MaxEvalCost uint64 = 100_000
)

var ErrInvalidExpression = errors.New("invalid expression")

// Program es una expresión ya compilada. Es seguro usarla desde varias goroutines.
type Program struct {
	source string
	prg    cel.Program
}

var env = func() *cel.Env {
	e, err := cel.NewEnv(
		cel.Variable(RecordVar, cel.MapType(cel.StringType, cel.DynType)),
		cel.CrossTypeNumericComparisons(true),
	)
	if err != nil {
		panic(fmt.Sprintf("celquery: building env: %v", err))
	}
	return e
}()

// Compile valida la expresión. Los errores de sintaxis o tipos envuelven ErrInvalidExpression.
func Compile(expr string) (*Program, error) {
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, iss.Err())
	}
	prg, err := env.Program(ast, cel.CostLimit(MaxEvalCost))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return &Program{source: expr, prg: prg}, nil
}

func (p *Program) String() string { return p.source }

// Match evalúa la expresión sobre el record. Un campo inexistente, un resultado
// no booleano o superar MaxEvalCost cuentan como no coincidencia.
func (p *Program) Match(rec query.Record) bool {
	out, _, err := p.prg.Eval(map[string]interface{}{RecordVar: map[string]interface{}(rec)})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

// Filter devuelve los records que cumplen la expresión, en el mismo orden.
func (p *Program) Filter(coll []query.Record) []query.Record {
	out := make([]query.Record, 0, len(coll))
	for _, rec := range coll {
		if p.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}
