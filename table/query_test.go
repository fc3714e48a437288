package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tablekv/field"
)

func seedKeys(t *testing.T, s *Store, table string, keys ...string) {
	t.Helper()
	for _, key := range keys {
		require.NoError(t, s.UpsertRow(table, NewRow(key).Set("f:v", field.String(key))))
	}
}

func resultKeys(rows []*Row) []string {
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = row.Key
	}
	return keys
}

func TestQueryKeyRange(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.CreateTable("t", []string{"f"}))
	seedKeys(t, s, "t", "e", "a", "c", "b", "d")

	tests := []struct {
		name     string
		query    Query
		expected []string
	}{
		{"All", Query{}, []string{"a", "b", "c", "d", "e"}},
		{"StartEnd_Inclusive", Query{StartKey: "b", EndKey: "d"}, []string{"b", "c", "d"}},
		{"StartOnly", Query{StartKey: "d"}, []string{"d", "e"}},
		{"EndOnly", Query{EndKey: "b"}, []string{"a", "b"}},
		{"Limit", Query{Limit: 2}, []string{"a", "b"}},
		{"RangeWithLimit", Query{StartKey: "b", Limit: 3}, []string{"b", "c", "d"}},
		{"EmptyRange", Query{StartKey: "x"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := s.Query("t", tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resultKeys(rows))
		})
	}
}

func TestQueryPrefix(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.CreateTable("t", []string{"f"}))
	seedKeys(t, s, "t", "blob/a", "blob/b", "other/x")

	rows, err := s.Query("t", Query{Prefix: "blob/"})
	require.NoError(t, err)
	assert.Equal(t, []string{"blob/a", "blob/b"}, resultKeys(rows))
}

func TestQueryProjection(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.CreateTable("t", []string{"metadata", "index", "content"}))

	row := NewRow("doc1").
		Set("metadata:contentType", field.String("text/plain")).
		Set("index:rating", field.Int(5)).
		Set("content:keywords", field.String("a,b"))
	require.NoError(t, s.UpsertRow("t", row))

	t.Run("ByFamily", func(t *testing.T) {
		rows, err := s.Query("t", Query{ColumnFamilies: []string{"metadata"}})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Len(t, rows[0].Columns, 1)
		assert.Contains(t, rows[0].Columns, "metadata:contentType")
	})

	t.Run("ByExactColumn", func(t *testing.T) {
		rows, err := s.Query("t", Query{Columns: []string{"index:rating"}})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Len(t, rows[0].Columns, 1)
		assert.Equal(t, field.Int(5), rows[0].Columns["index:rating"].Value)
	})

	t.Run("FamilyOrColumnUnion", func(t *testing.T) {
		rows, err := s.Query("t", Query{
			ColumnFamilies: []string{"metadata"},
			Columns:        []string{"content:keywords"},
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Len(t, rows[0].Columns, 2)
	})

	t.Run("EmptyProjectionDropsRow", func(t *testing.T) {
		rows, err := s.Query("t", Query{ColumnFamilies: []string{"nothing"}})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestQueryTableNotFound(t *testing.T) {
	s := NewStore()
	_, err := s.Query("missing", Query{})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestQueryReturnsCopies(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.CreateTable("t", []string{"f"}))
	seedKeys(t, s, "t", "a")

	rows, err := s.Query("t", Query{})
	require.NoError(t, err)
	rows[0].Set("f:v", field.String("mutated"))

	got, err := s.GetRow("t", "a")
	require.NoError(t, err)
	assert.Equal(t, field.String("a"), got.Columns["f:v"].Value)
}
