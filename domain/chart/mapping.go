package chart

// Role names a slot in a FieldMapping bound to a field name.
type Role string

const (
	RoleDimension Role = "dimension"
	RoleMeasures  Role = "measures"
	RoleColor     Role = "colorField"
	RoleSize      Role = "sizeField"
	RoleSeries    Role = "seriesField"
	RoleGeo       Role = "geoField"
	RoleTime      Role = "timeField"
)

// Roles returns every mapping role in a stable order.
func Roles() []Role {
	return []Role{RoleDimension, RoleMeasures, RoleColor, RoleSize, RoleSeries, RoleGeo, RoleTime}
}

// FieldMapping binds semantic roles to field names for one chart instance.
// An empty string means the role is unbound.
type FieldMapping struct {
	Dimension   string   `json:"dimension,omitempty"`
	Measures    []string `json:"measures"`
	ColorField  string   `json:"color_field,omitempty"`
	SizeField   string   `json:"size_field,omitempty"`
	SeriesField string   `json:"series_field,omitempty"`
	GeoField    string   `json:"geo_field,omitempty"`
	TimeField   string   `json:"time_field,omitempty"`
}

// NewFieldMapping returns a clean mapping with no roles bound.
func NewFieldMapping() FieldMapping {
	return FieldMapping{Measures: []string{}}
}

// Clone returns a deep copy. Mappings are treated as values by callers;
// the measures slice is the only shared backing to sever.
func (m FieldMapping) Clone() FieldMapping {
	out := m
	out.Measures = make([]string, len(m.Measures))
	copy(out.Measures, m.Measures)
	return out
}

// HasMeasure reports whether the field name is already a measure.
func (m FieldMapping) HasMeasure(name string) bool {
	for _, v := range m.Measures {
		if v == name {
			return true
		}
	}
	return false
}

// ReferencedFields returns every field name bound to any role.
func (m FieldMapping) ReferencedFields() []string {
	var out []string
	for _, v := range []string{m.Dimension, m.ColorField, m.SizeField, m.SeriesField, m.GeoField, m.TimeField} {
		if v != "" {
			out = append(out, v)
		}
	}
	out = append(out, m.Measures...)
	return out
}
