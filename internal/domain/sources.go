package domain

// Mode selects which family of sources a query runs against.
type Mode string

const (
	ModeInternational Mode = "international"
	ModeNational      Mode = "national"
)

// Source identifies one funder portal or ministry page.
type Source string

const (
	SourceEC       Source = "european_commission"
	SourceWellcome Source = "wellcome"
	SourceAKA      Source = "aka"
	SourceANR      Source = "anr"
	SourceIBRO     Source = "ibro"
	SourceIDRC     Source = "idrc"

	SourceMinEnergia   Source = "minenergia"
	SourceMinAmbiente  Source = "minambiente"
	SourceMinCiencias  Source = "minciencias"
	SourceMinCultura   Source = "mincultura"
	SourceMinTIC       Source = "mintic"
	SourceMinEducacion Source = "mineducacion"
)

// Category marks how a national call is financed.
type Category string

const (
	CategoryNone      Category = ""
	CategoryRoyalties Category = "regalias"
	CategoryProjects  Category = "proyectos"
)

var internationalSources = []Source{
	SourceEC, SourceWellcome, SourceAKA, SourceANR, SourceIBRO, SourceIDRC,
}

var nationalSources = []Source{
	SourceMinEnergia, SourceMinAmbiente, SourceMinCiencias,
	SourceMinCultura, SourceMinTIC, SourceMinEducacion,
}

var displayNames = map[Source]string{
	SourceEC:           "European Commission",
	SourceWellcome:     "Wellcome",
	SourceAKA:          "Research Council of Finland",
	SourceANR:          "ANR",
	SourceIBRO:         "IBRO",
	SourceIDRC:         "IDRC",
	SourceMinEnergia:   "MinEnergía",
	SourceMinAmbiente:  "MinAmbiente",
	SourceMinCiencias:  "MinCiencias",
	SourceMinCultura:   "MinCultura",
	SourceMinTIC:       "MinTIC",
	SourceMinEducacion: "MinEducación",
}

// SourcesFor returns the fixed source set for a mode, in registry order.
func SourcesFor(mode Mode) []Source {
	switch mode {
	case ModeInternational:
		return append([]Source(nil), internationalSources...)
	case ModeNational:
		return append([]Source(nil), nationalSources...)
	}
	return nil
}

// ValidSource reports whether id names a source belonging to the mode.
func ValidSource(mode Mode, id Source) bool {
	for _, s := range SourcesFor(mode) {
		if s == id {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable site name shown in results.
func (s Source) DisplayName() string {
	if n, ok := displayNames[s]; ok {
		return n
	}
	return string(s)
}
