package query

// Category is a closed enum of normativa categories.
type Category string

// Normativa categories accepted by the statute search API.
const (
	CategoryLey                    Category = "ley"
	CategoryDecreto                Category = "decreto"
	CategoryCodigo                 Category = "codigo"
	CategoryResolucion             Category = "resolución"
	CategoryAcuerdo                Category = "acuerdo"
	CategoryCircular               Category = "circular"
	CategoryComunicacion           Category = "comunicación"
	CategoryInstruccion            Category = "instrucción"
	CategoryConvenio               Category = "convenio"
	CategoryDecisionAdministrativa Category = "decisión administrativa"
	CategoryDisposicion            Category = "disposición"
	CategoryDecision               Category = "decisión"
	CategoryDirectiva              Category = "directiva"
	CategoryInterpretacion         Category = "interpretación"
	CategoryProtocolo              Category = "protocolo"
	CategoryProvidencia            Category = "providencia"
	CategoryRecomendacion          Category = "recomendación"
	CategoryConstitucion           Category = "constitucion"
	CategoryLaudo                  Category = "laudo"
)

var categories = map[Category]struct{}{
	CategoryLey: {}, CategoryDecreto: {}, CategoryCodigo: {},
	CategoryResolucion: {}, CategoryAcuerdo: {}, CategoryCircular: {},
	CategoryComunicacion: {}, CategoryInstruccion: {}, CategoryConvenio: {},
	CategoryDecisionAdministrativa: {}, CategoryDisposicion: {},
	CategoryDecision: {}, CategoryDirectiva: {}, CategoryInterpretacion: {},
	CategoryProtocolo: {}, CategoryProvidencia: {}, CategoryRecomendacion: {},
	CategoryConstitucion: {}, CategoryLaudo: {},
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// DocumentType selects which corpora a search covers.
type DocumentType string

const (
	// TypeSentencias selects the case-law corpus.
	TypeSentencias DocumentType = "sentencias"
	// TypeNormativas selects the statute corpus.
	TypeNormativas DocumentType = "normativas"
	// TypePersonales selects user-uploaded documents.
	TypePersonales DocumentType = "personales"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case TypeSentencias, TypeNormativas, TypePersonales:
		return true
	}
	return false
}

// JurisdictionNacional is the national scope; every other jurisdiction
// routes to a provincial collection.
const JurisdictionNacional = "nacional"

// Jurisdiction is a searchable legal authority scope.
type Jurisdiction struct {
	ID   string
	Name string
}

// Jurisdictions lists the supported scopes, national first.
var Jurisdictions = []Jurisdiction{
	{ID: JurisdictionNacional, Name: "Nacional"},
	{ID: "chaco", Name: "Chaco"},
	{ID: "corrientes", Name: "Corrientes"},
	{ID: "misiones", Name: "Misiones"},
	{ID: "formosa", Name: "Formosa"},
	{ID: "caba", Name: "Ciudad Autónoma de Buenos Aires"},
}

// ValidJurisdiction reports whether id names a supported jurisdiction.
func ValidJurisdiction(id string) bool {
	for _, j := range Jurisdictions {
		if j.ID == id {
			return true
		}
	}
	return false
}
