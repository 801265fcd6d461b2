package catalog

import "github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"

// AttributeSchema describes one filterable detail attribute of a rubro and
// the values its facet control offers.
type AttributeSchema struct {
	Name   string   `json:"name"`
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// SchemaFor returns the facet schema of a rubro. Each rubro carries its own
// attribute shape; "todos" has none, which is why facets require a selected
// rubro. The switch is exhaustive over the storable rubros.
func SchemaFor(r models.Rubro) []AttributeSchema {
	switch r {
	case models.RubroGoods:
		return []AttributeSchema{
			{Name: "condicion", Label: "Condición", Values: []string{"nuevo", "usado", "reacondicionado"}},
			{Name: "entrega", Label: "Entrega", Values: []string{"envio", "retiro"}},
		}
	case models.RubroServices:
		return []AttributeSchema{
			{Name: "modalidad", Label: "Modalidad", Values: []string{"remoto", "presencial"}},
			{Name: "experiencia", Label: "Experiencia", Values: []string{"junior", "intermedio", "experto"}},
		}
	case models.RubroFood:
		return []AttributeSchema{
			{Name: "dieta", Label: "Dieta", Values: []string{"clasico", "vegetariano", "vegano", "sin-tacc"}},
			{Name: "formato", Label: "Formato", Values: []string{"porcion", "viandas", "evento"}},
		}
	case models.RubroExperiences:
		return []AttributeSchema{
			{Name: "duracion", Label: "Duración", Values: []string{"1h", "medio-dia", "dia-completo"}},
			{Name: "personas", Label: "Personas", Values: []string{"individual", "grupal"}},
		}
	default:
		return nil
	}
}

func attributeInSchema(r models.Rubro, attr string) bool {
	for _, s := range SchemaFor(r) {
		if s.Name == attr {
			return true
		}
	}
	return false
}

// ValidateDetails checks a listing's detail payload against its rubro schema:
// every provided attribute must exist in the schema and carry one of the
// schema's values. Attributes the seller leaves out are fine.
func ValidateDetails(r models.Rubro, details map[string]string) error {
	schemas := SchemaFor(r)
	for attr, value := range details {
		var schema *AttributeSchema
		for i := range schemas {
			if schemas[i].Name == attr {
				schema = &schemas[i]
				break
			}
		}
		if schema == nil {
			return &DetailError{Rubro: r, Attribute: attr, Value: value, Reason: "unknown attribute"}
		}
		ok := false
		for _, v := range schema.Values {
			if v == value {
				ok = true
				break
			}
		}
		if !ok {
			return &DetailError{Rubro: r, Attribute: attr, Value: value, Reason: "value not in schema"}
		}
	}
	return nil
}

// DetailError reports an invalid detail attribute on listing create/update.
type DetailError struct {
	Rubro     models.Rubro
	Attribute string
	Value     string
	Reason    string
}

func (e *DetailError) Error() string {
	return "invalid detail " + e.Attribute + "=" + e.Value + " for rubro " + string(e.Rubro) + ": " + e.Reason
}
