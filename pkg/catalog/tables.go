package catalog

// ReferenceTable is a contiguous age-indexed series.
type ReferenceTable struct {
	first  int
	values []float64
}

// NewReferenceTable builds a table whose first entry is for age first.
func NewReferenceTable(first int, values []float64) *ReferenceTable {
	return &ReferenceTable{first: first, values: append([]float64(nil), values...)}
}

// MinAge is the youngest age with a defined value.
func (t *ReferenceTable) MinAge() int { return t.first }

// MaxAge is the oldest age with a defined value.
func (t *ReferenceTable) MaxAge() int { return t.first + len(t.values) - 1 }

// At returns the value for age, clamping to the nearest defined age.
func (t *ReferenceTable) At(age int) float64 {
	if age < t.MinAge() {
		age = t.MinAge()
	}
	if age > t.MaxAge() {
		age = t.MaxAge()
	}
	return t.values[age-t.first]
}

// DeviceCategory groups device identifiers that share recommendation text.
type DeviceCategory string

const (
	TabletSmartphone DeviceCategory = "tablet_smartphone"
	Television       DeviceCategory = "television"
	VideoGames       DeviceCategory = "video_games"
	Internet         DeviceCategory = "internet"
)

// DeviceCategories lists every category in display order.
var DeviceCategories = []DeviceCategory{TabletSmartphone, Television, VideoGames, Internet}

// Label is the French display name of the category.
func (c DeviceCategory) Label() string {
	switch c {
	case TabletSmartphone:
		return "Tablette/Smartphone"
	case Television:
		return "Télévision"
	case VideoGames:
		return "Jeux vidéo"
	default:
		return "Internet"
	}
}

// ResolveDevice maps a form device identifier to its category. Unknown
// identifiers fall back to Internet.
func ResolveDevice(id string) DeviceCategory {
	switch id {
	case "smartphone", "tablet":
		return TabletSmartphone
	case "tv":
		return Television
	case "gaming":
		return VideoGames
	default:
		return Internet
	}
}

// Bracket is one age range of the recommendation table.
type Bracket struct {
	Label              string                      `yaml:"label" json:"label"`
	Upper              int                         `yaml:"upper" json:"upper"`
	Devices            map[DeviceCategory]string   `yaml:"devices" json:"devices"`
	General            string                      `yaml:"general" json:"general"`
	Alternatives       string                      `yaml:"alternatives" json:"alternatives"`
	FundamentalRules   []string                    `yaml:"fundamental_rules" json:"fundamental_rules"`
	DeviceAlternatives map[DeviceCategory][]string `yaml:"device_alternatives" json:"device_alternatives"`
}

// RecommendationTable is the ordered list of brackets.
type RecommendationTable struct {
	Brackets []Bracket `yaml:"brackets" json:"brackets"`
}

// Bracket resolves age to the first bracket with age <= Upper. Ages past the
// last bracket clamp to it.
func (t *RecommendationTable) Bracket(age int) *Bracket {
	for i := range t.Brackets {
		if age <= t.Brackets[i].Upper {
			return &t.Brackets[i]
		}
	}
	return &t.Brackets[len(t.Brackets)-1]
}
