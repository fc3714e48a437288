package blobindex

import (
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/tablekv/field"
	"github.com/hupe1980/tablekv/table"
)

const (
	colContentType = "metadata:contentType"
	colSize        = "metadata:size"
	colCreatedAt   = "metadata:createdAt"
	colChecksum    = "metadata:checksum"
	colKeywords    = "content:keywords"

	tagColumnPrefix   = "metadata:tag_"
	indexColumnPrefix = "index:"

	defaultContentType = "application/octet-stream"
)

// projectRow flattens an IndexedBlobMetadata into one table row keyed by the
// blob key. Every cell is independently stamped at write time by Row.Set.
func projectRow(m *IndexedMetadata) *table.Row {
	row := table.NewRow(m.Key)

	row.Set(colContentType, field.String(m.ContentType))
	row.Set(colSize, field.Int(m.Size))
	row.Set(colCreatedAt, field.Int(m.CreatedAt.UnixMilli()))
	row.Set(colChecksum, field.String(m.Checksum)) // empty string when absent

	for name, value := range m.Tags {
		row.Set(tagColumnPrefix+name, field.String(value))
	}
	for name, value := range m.Fields {
		row.Set(indexColumnPrefix+name, value.Clone())
	}

	// Special-cased denormalization for the "keywords" field only.
	if kw, ok := m.Fields["keywords"]; ok {
		if items, ok := kw.AsArray(); ok {
			parts := make([]string, len(items))
			for i := range items {
				parts[i] = items[i].EncodeText()
			}
			row.Set(colKeywords, field.String(strings.Join(parts, ",")))
		}
	}

	return row
}

// reconstruct is the inverse of projectRow. Absent metadata columns fall
// back to read defaults; string-typed index columns written by older
// deployments are opportunistically decoded back into structured form.
func reconstruct(row *table.Row) IndexedMetadata {
	im := IndexedMetadata{}
	im.Key = row.Key
	im.ContentType = defaultContentType
	im.CreatedAt = time.Now()

	if cell, ok := row.Columns[colContentType]; ok {
		if s, ok := cell.Value.AsString(); ok && s != "" {
			im.ContentType = s
		}
	}
	if cell, ok := row.Columns[colSize]; ok {
		im.Size = coerceInt64(cell.Value)
	}
	if cell, ok := row.Columns[colCreatedAt]; ok {
		if ms := coerceInt64(cell.Value); ms > 0 {
			im.CreatedAt = time.UnixMilli(ms)
		}
	}
	if cell, ok := row.Columns[colChecksum]; ok {
		im.Checksum, _ = cell.Value.AsString()
	}

	for col, cell := range row.Columns {
		switch {
		case strings.HasPrefix(col, tagColumnPrefix):
			if im.Tags == nil {
				im.Tags = make(map[string]string)
			}
			im.Tags[strings.TrimPrefix(col, tagColumnPrefix)] = cell.Value.EncodeText()
		case strings.HasPrefix(col, indexColumnPrefix):
			if im.Fields == nil {
				im.Fields = make(field.Fields)
			}
			im.Fields[strings.TrimPrefix(col, indexColumnPrefix)] = decodeIndexValue(cell.Value)
		}
	}

	return im
}

// decodeIndexValue re-hydrates a stored index value. Typed values pass
// through; strings run through the opportunistic structural decode for
// compatibility with text-encoded history.
func decodeIndexValue(v field.Value) field.Value {
	if s, ok := v.AsString(); ok {
		return field.DecodeText(s)
	}
	return v.Clone()
}

// indexFields extracts the searchable fields of a row for predicate
// evaluation, keyed without the column prefix.
func indexFields(row *table.Row) field.Fields {
	fields := make(field.Fields)
	for col, cell := range row.Columns {
		if strings.HasPrefix(col, indexColumnPrefix) {
			fields[strings.TrimPrefix(col, indexColumnPrefix)] = decodeIndexValue(cell.Value)
		}
	}
	return fields
}

func coerceInt64(v field.Value) int64 {
	switch v.Kind {
	case field.KindInt:
		return v.I64
	case field.KindFloat:
		return int64(v.F64)
	case field.KindString:
		n, err := strconv.ParseInt(v.S, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
