package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMatches(t *testing.T) {
	doc := Fields{
		"s":      String("hello"),
		"i":      Int(10),
		"f":      Float(2.5),
		"b":      Bool(true),
		"tags":   Strings([]string{"a", "b"}),
		"author": String("mallory"),
	}

	tests := []struct {
		name     string
		filter   Filter
		expected bool
	}{
		{"Equal_String_Match", Eq("s", String("hello")), true},
		{"Equal_String_NoMatch", Eq("s", String("world")), false},
		{"Equal_Int_Match", Eq("i", Int(10)), true},
		{"Equal_Int_Float_CrossKind", Eq("i", Float(10)), true},
		{"NotEqual_Match", Ne("i", Int(11)), true},
		{"NotEqual_NoMatch", Ne("i", Int(10)), false},
		{"GreaterThan_Int", Gt("i", Int(5)), true},
		{"GreaterThan_Int_Boundary", Gt("i", Int(10)), false},
		{"GreaterEqual_Int_Boundary", Gte("i", Int(10)), true},
		{"LessThan_Float", Lt("f", Float(3)), true},
		{"GreaterThan_String_Lexicographic", Gt("author", String("alice")), true},
		{"LessThan_String_Lexicographic", Lt("author", String("zed")), true},
		{"GreaterThan_MixedKinds", Gt("s", Int(1)), false},
		{"In_Match", In("i", Int(1), Int(10), Int(100)), true},
		{"In_NoMatch", In("i", Int(1), Int(2)), false},
		{"Contains_Match", Contains("s", String("ell")), true},
		{"Contains_NoMatch", Contains("s", String("xyz")), false},
		{"Equal_Array", Eq("tags", Strings([]string{"a", "b"})), true},
		{"Equal_Array_NoMatch", Eq("tags", Strings([]string{"a"})), false},
		{"Key_Not_Exists", Eq("missing", Int(10)), false},
		{"Key_Not_Exists_NotEqual", Ne("missing", Int(10)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(doc), "Filter.Matches")

			// Test FilterSet as well
			fs := NewFilterSet(tt.filter)
			assert.Equal(t, tt.expected, fs.Matches(doc), "FilterSet.Matches")
		})
	}
}

func TestFilterSetAND(t *testing.T) {
	doc := Fields{"rating": Int(4), "category": String("tech")}

	all := NewFilterSet(Gt("rating", Int(3)), Eq("category", String("tech")))
	assert.True(t, all.Matches(doc))

	one := NewFilterSet(Gt("rating", Int(5)), Eq("category", String("tech")))
	assert.False(t, one.Matches(doc))

	empty := NewFilterSet()
	assert.True(t, empty.Matches(doc))
}

func TestObjectEquality(t *testing.T) {
	a := Object(map[string]Value{"x": Int(1), "y": String("s")})
	b := Object(map[string]Value{"x": Int(1), "y": String("s")})
	c := Object(map[string]Value{"x": Int(2), "y": String("s")})

	doc := Fields{"o": a}
	eqB := Eq("o", b)
	eqC := Eq("o", c)
	assert.True(t, eqB.Matches(doc))
	assert.False(t, eqC.Matches(doc))
}
