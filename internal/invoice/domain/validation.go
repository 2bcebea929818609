package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	SchemaVersion  = "1.1"
	MaxItems       = 1000
	MaxPayloadSize = 2 * 1024 * 1024
)

// Masters del esquema. StateCodes es una muestra, no el catálogo completo.
var (
	SupplyTypes     = []string{"B2B", "SEZWP", "SEZWOP", "EXPWP", "EXPWOP", "DEXP"}
	DocTypes        = []string{"INV", "CRN", "DBN"}
	StateCodes      = []string{"29", "36", "07", "27", "96"}
	MandatoryFields = []string{"Version", "TranDtls", "DocDtls", "SellerDtls", "BuyerDtls", "ItemList", "ValDtls"}
)

// ValidateBasic aplica las comprobaciones mínimas antes de emitir un IRN.
// Devuelve la lista de mensajes; vacía significa válida.
func ValidateBasic(p Payload) []string {
	var errs []string

	if p.Version != SchemaVersion {
		errs = append(errs, "Version must be "+SchemaVersion)
	}
	if !slices.Contains(DocTypes, p.DocDtls.Typ) {
		errs = append(errs, "Invalid document type")
	}
	if strings.TrimSpace(p.SellerDtls.Gstin) == "" {
		errs = append(errs, "Seller GSTIN is required")
	}
	if strings.TrimSpace(p.BuyerDtls.Gstin) == "" {
		errs = append(errs, "Buyer GSTIN is required")
	}
	if len(p.ItemList) == 0 {
		errs = append(errs, "At least one item is required")
	}
	if len(p.ItemList) > MaxItems {
		errs = append(errs, fmt.Sprintf("Maximum %d items allowed", MaxItems))
	}
	if p.TranDtls.SupTyp != "" && !slices.Contains(SupplyTypes, p.TranDtls.SupTyp) {
		errs = append(errs, "Invalid supply type")
	}

	return errs
}

// Validate envuelve ValidateBasic en un *ValidationError.
func Validate(p Payload) error {
	if errs := ValidateBasic(p); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// FinancialYear devuelve el año fiscal indio (abril a marzo) para una fecha dd/mm/yyyy.
func FinancialYear(date string) (string, error) {
	parts := strings.Split(strings.TrimSpace(date), "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date %q: want dd/mm/yyyy", date)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month in %q", date)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("invalid year in %q", date)
	}
	if month >= 4 {
		return fmt.Sprintf("%d-%d", year, year+1), nil
	}
	return fmt.Sprintf("%d-%d", year-1, year), nil
}

// ValidationRules es el documento que sirve GET /validation-rules.
type ValidationRules struct {
	Version            string   `json:"version"`
	MaxItems           int      `json:"maxItems"`
	MaxPayload         string   `json:"maxPayload"`
	MandatoryFields    []string `json:"mandatoryFields"`
	AllowedDocTypes    []string `json:"allowedDocTypes"`
	AllowedSupplyTypes []string `json:"allowedSupplyTypes"`
	StateCodes         []string `json:"stateCodes"`
}

func Rules() ValidationRules {
	return ValidationRules{
		Version:            SchemaVersion,
		MaxItems:           MaxItems,
		MaxPayload:         "2MB",
		MandatoryFields:    MandatoryFields,
		AllowedDocTypes:    DocTypes,
		AllowedSupplyTypes: SupplyTypes,
		StateCodes:         StateCodes,
	}
}
