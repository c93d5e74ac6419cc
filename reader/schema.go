package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/datadrill/query"
)

// SchemaInfo describes one column of a source.
type SchemaInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PhysicalType string `json:"physical_type,omitempty"`
	LogicalType  string `json:"logical_type,omitempty"`
	Required     bool   `json:"required"`
	Optional     bool   `json:"optional"`
	Repeated     bool   `json:"repeated"`
}

// ExtractSchemaInfo lists the leaf columns of a parquet file. Nested fields
// use dot notation ("address.street") and inherit the repeated flag of any
// repeated ancestor.
func ExtractSchemaInfo(path string) ([]SchemaInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	var infos []SchemaInfo
	for _, field := range r.Schema().Fields() {
		infos = append(infos, leafInfo(field, "", false)...)
	}
	return infos, nil
}

func leafInfo(field parquet.Field, prefix string, parentRepeated bool) []SchemaInfo {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}
	repeated := parentRepeated || field.Repeated()

	if children := field.Fields(); len(children) > 0 {
		var infos []SchemaInfo
		for _, child := range children {
			infos = append(infos, leafInfo(child, name, repeated)...)
		}
		return infos
	}

	return []SchemaInfo{{
		Name:         name,
		Type:         friendlyType(field),
		PhysicalType: physicalType(field),
		LogicalType:  logicalType(field),
		Required:     field.Required(),
		Optional:     field.Optional(),
		Repeated:     repeated,
	}}
}

var physicalNames = map[parquet.Kind]string{
	parquet.Boolean:           "BOOLEAN",
	parquet.Int32:             "INT32",
	parquet.Int64:             "INT64",
	parquet.Int96:             "INT96",
	parquet.Float:             "FLOAT",
	parquet.Double:            "DOUBLE",
	parquet.ByteArray:         "BYTE_ARRAY",
	parquet.FixedLenByteArray: "FIXED_LEN_BYTE_ARRAY",
}

// friendlyNames differ from physicalNames only where the physical name is
// misleading to users
var friendlyNames = map[parquet.Kind]string{
	parquet.Float:  "FLOAT32",
	parquet.Double: "FLOAT64",
}

// logicalNames maps logical type names onto the type shown to users. INT is
// absent: its width comes from the physical type.
var logicalNames = map[string]string{
	"STRING":    "STRING",
	"UTF8":      "STRING",
	"ENUM":      "ENUM",
	"UUID":      "UUID",
	"DATE":      "DATE",
	"TIME":      "TIME",
	"TIMESTAMP": "TIMESTAMP",
	"DECIMAL":   "DECIMAL",
	"JSON":      "JSON",
	"BSON":      "BSON",
}

func physicalType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}
	if name, ok := physicalNames[field.Type().Kind()]; ok {
		return name
	}
	return "UNKNOWN"
}

func logicalType(field parquet.Field) string {
	if field.Type() == nil {
		return ""
	}
	lt := field.Type().LogicalType()
	if lt == nil {
		return ""
	}
	return lt.String()
}

func friendlyType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}
	if name, ok := logicalNames[logicalType(field)]; ok {
		return name
	}
	if name, ok := friendlyNames[field.Type().Kind()]; ok {
		return name
	}
	return physicalType(field)
}

// dtypeNames maps query series dtypes onto the names ExtractSchemaInfo uses
var dtypeNames = map[string]string{
	"int64":     "INT64",
	"float64":   "FLOAT64",
	"string":    "STRING",
	"bool":      "BOOLEAN",
	"timestamp": "TIMESTAMP",
	"struct":    "GROUP",
	"null":      "NULL",
	"mixed":     "MIXED",
}

// SchemaFromTable describes the columns of an already loaded table. It serves
// sources without a declared schema, so a column is optional exactly when it
// holds a nil.
func SchemaFromTable(t *query.Table) []SchemaInfo {
	infos := make([]SchemaInfo, 0, t.Width())
	for _, s := range t.Series() {
		dtype, ok := dtypeNames[s.DType()]
		if !ok {
			dtype = s.DType()
		}
		optional := hasNull(s)
		infos = append(infos, SchemaInfo{
			Name:     s.Name(),
			Type:     dtype,
			Required: !optional,
			Optional: optional,
		})
	}
	return infos
}

func hasNull(s *query.Series) bool {
	if s.IsStruct() {
		return false
	}
	for _, v := range s.Values() {
		if v == nil {
			return true
		}
	}
	return false
}
