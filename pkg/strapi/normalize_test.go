package strapi

import (
	"reflect"
	"testing"
)

func TestTransformData_FlattensEnvelope(t *testing.T) {
	item := Entry{
		"id": float64(1),
		"attributes": map[string]any{
			"title": "x",
			"body":  "text",
		},
	}

	got := TransformData(item, nil)
	want := Entry{
		"id":    float64(1),
		"title": "x",
		"body":  "text",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("TransformData() = %v, want %v", got, want)
	}
}

func TestTransformData_AlreadyFlatPassthrough(t *testing.T) {
	tests := []struct {
		name string
		item Entry
	}{
		{
			name: "flat entry without attributes",
			item: Entry{"id": float64(3), "title": "x"},
		},
		{
			name: "attributes without id",
			item: Entry{"attributes": map[string]any{"title": "x"}},
		},
		{
			name: "empty entry",
			item: Entry{},
		},
		{
			name: "attributes not an object",
			item: Entry{"id": float64(1), "attributes": "oops"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TransformData(tt.item, []string{"author"})
			if !reflect.DeepEqual(got, tt.item) {
				t.Errorf("TransformData() = %v, want unchanged %v", got, tt.item)
			}
		})
	}
}

func TestTransformData_PopulatedRelationExpanded(t *testing.T) {
	item := Entry{
		"id": float64(1),
		"attributes": map[string]any{
			"title": "x",
			"author": map[string]any{
				"data": map[string]any{
					"id":         float64(2),
					"attributes": map[string]any{"name": "y"},
				},
			},
		},
	}

	got := TransformData(item, []string{"author"})
	want := Entry{
		"id":    float64(1),
		"title": "x",
		"author": map[string]any{
			"id":   float64(2),
			"name": "y",
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("TransformData() = %v, want %v", got, want)
	}
}

func TestTransformData_UnlistedRelationStaysRaw(t *testing.T) {
	rawAuthor := map[string]any{
		"data": map[string]any{
			"id":         float64(2),
			"attributes": map[string]any{"name": "y"},
		},
	}
	item := Entry{
		"id": float64(1),
		"attributes": map[string]any{
			"title":  "x",
			"author": rawAuthor,
		},
	}

	got := TransformData(item, nil)
	if !reflect.DeepEqual(got["author"], rawAuthor) {
		t.Errorf("unlisted relation was normalized: %v", got["author"])
	}
}

func TestTransformData_AlreadyFlatRelation(t *testing.T) {
	item := Entry{
		"id": float64(1),
		"attributes": map[string]any{
			"author": map[string]any{
				"id":         float64(2),
				"attributes": map[string]any{"name": "y"},
			},
		},
	}

	got := TransformData(item, []string{"author"})
	want := map[string]any{"id": float64(2), "name": "y"}
	if !reflect.DeepEqual(got["author"], want) {
		t.Errorf("flat relation = %v, want %v", got["author"], want)
	}
}

func TestSplitPopulate(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []string
	}{
		{name: "empty", spec: "", want: nil},
		{name: "single name", spec: "author", want: []string{"author"}},
		{name: "csv", spec: "author,cover", want: []string{"author", "cover"}},
		{name: "spaces and empties trimmed", spec: " author, ,cover ", want: []string{"author", "cover"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitPopulate(tt.spec); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitPopulate(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}
