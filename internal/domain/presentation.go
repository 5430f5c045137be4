package domain

// UnitKind distinguishes presentational units
type UnitKind int

const (
	UnitRecord UnitKind = iota
	UnitEmpty
	UnitError
)

func (k UnitKind) String() string {
	switch k {
	case UnitRecord:
		return "record"
	case UnitEmpty:
		return "empty"
	case UnitError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name
func (k UnitKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// PresentationUnit is one renderable block. Every text field already holds
// neutralized literal text and never an empty placeholder.
type PresentationUnit struct {
	Kind       UnitKind `json:"kind"`
	Index      int      `json:"index"`
	Title      string   `json:"title,omitempty"`
	Size       string   `json:"size,omitempty"`
	Resolution string   `json:"resolution,omitempty"`
	Seeders    string   `json:"seeders,omitempty"`
	Leechers   string   `json:"leechers,omitempty"`
	Source     string   `json:"source,omitempty"`
	Origin     string   `json:"origin,omitempty"`
	Score      string   `json:"score,omitempty"`
	Message    string   `json:"message,omitempty"`

	// Identifier is the raw value handed to the clipboard sink. It is
	// never interpolated into rendered text.
	Identifier string `json:"identifier,omitempty"`
}

// HasAction reports whether the unit carries a copy affordance
func (u PresentationUnit) HasAction() bool { return u.Kind == UnitRecord }

// PresentationTree is the renderer output
type PresentationTree struct {
	Units []PresentationUnit `json:"units"`
}

// Records returns only the record units
func (t PresentationTree) Records() []PresentationUnit {
	var out []PresentationUnit
	for _, u := range t.Units {
		if u.Kind == UnitRecord {
			out = append(out, u)
		}
	}
	return out
}

// IsZero reports whether nothing is rendered
func (t PresentationTree) IsZero() bool { return len(t.Units) == 0 }
