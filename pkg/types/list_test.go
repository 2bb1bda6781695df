package types

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestIsValidFieldType(t *testing.T) {
	tests := []struct {
		fieldType string
		want      bool
	}{
		{FieldTypeBoolean, true},
		{FieldTypeText, true},
		{FieldTypeNumber, true},
		{FieldTypeURL, true},
		{FieldTypeImage, true},
		{"timestamp", false},
		{"", false},
		{"Boolean", false},
	}
	for _, tt := range tests {
		t.Run(tt.fieldType, func(t *testing.T) {
			if got := IsValidFieldType(tt.fieldType); got != tt.want {
				t.Errorf("IsValidFieldType(%q) = %v, want %v", tt.fieldType, got, tt.want)
			}
		})
	}
}

func TestNewList(t *testing.T) {
	l, err := NewList("Groceries")
	if err != nil {
		t.Fatalf("NewList error = %v", err)
	}
	if l.Name != "Groceries" {
		t.Errorf("Name = %q, want Groceries", l.Name)
	}
	if l.ID == uuid.Nil {
		t.Error("ID is nil, want a generated UUID")
	}
	if l.Fields == nil || l.Items == nil {
		t.Error("Fields and Items maps must be initialized")
	}
	if len(l.Fields) != 0 || len(l.Items) != 0 {
		t.Error("new list must start empty")
	}
}

func TestSortedFieldIDs(t *testing.T) {
	l, err := NewList("test")
	if err != nil {
		t.Fatal(err)
	}
	first := uuid.MustParse("00000000-0000-7000-8000-000000000001")
	second := uuid.MustParse("00000000-0000-7000-8000-000000000002")
	third := uuid.MustParse("00000000-0000-7000-8000-000000000003")
	l.Fields[third] = &Field{Name: "C", Type: FieldTypeText, Order: 2}
	l.Fields[first] = &Field{Name: "A", Type: FieldTypeText, Order: 0}
	l.Fields[second] = &Field{Name: "B", Type: FieldTypeText, Order: 1}

	got := l.SortedFieldIDs()
	want := []uuid.UUID{first, second, third}
	if len(got) != len(want) {
		t.Fatalf("SortedFieldIDs() returned %d IDs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SortedFieldIDs()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSortedFieldIDs_TieBreakByID(t *testing.T) {
	l, err := NewList("test")
	if err != nil {
		t.Fatal(err)
	}
	a := uuid.MustParse("00000000-0000-7000-8000-00000000000a")
	b := uuid.MustParse("00000000-0000-7000-8000-00000000000b")
	l.Fields[b] = &Field{Name: "B", Type: FieldTypeText, Order: 0}
	l.Fields[a] = &Field{Name: "A", Type: FieldTypeText, Order: 0}

	got := l.SortedFieldIDs()
	if got[0] != a || got[1] != b {
		t.Errorf("SortedFieldIDs() = %v, want [%s %s]", got, a, b)
	}
}

func TestClone(t *testing.T) {
	l, err := NewList("original")
	if err != nil {
		t.Fatal(err)
	}
	fieldID := uuid.MustParse("00000000-0000-7000-8000-000000000001")
	itemID := uuid.MustParse("00000000-0000-7000-8000-000000000010")
	l.Fields[fieldID] = &Field{Name: "Done", Type: FieldTypeBoolean, Order: 0}
	l.Items[itemID] = []FieldValue{{FieldID: fieldID, Value: false}}

	c := l.Clone()
	if c.ID != l.ID || c.Name != l.Name {
		t.Error("clone must carry the same ID and name")
	}

	// Mutating the clone must not reach the original.
	c.Name = "changed"
	c.Fields[fieldID].Name = "Changed"
	c.Items[itemID][0].Value = true

	if l.Name != "original" {
		t.Error("clone name mutation leaked into original")
	}
	if l.Fields[fieldID].Name != "Done" {
		t.Error("clone field mutation leaked into original")
	}
	if l.Items[itemID][0].Value != false {
		t.Error("clone item value mutation leaked into original")
	}
}

func TestValidate(t *testing.T) {
	fieldID := uuid.MustParse("00000000-0000-7000-8000-000000000001")
	otherID := uuid.MustParse("00000000-0000-7000-8000-000000000002")
	itemID := uuid.MustParse("00000000-0000-7000-8000-000000000010")

	valid := func() *List {
		return &List{
			ID:   uuid.MustParse("00000000-0000-7000-8000-0000000000ff"),
			Name: "test",
			Fields: map[uuid.UUID]*Field{
				fieldID: {Name: "Done", Type: FieldTypeBoolean, Order: 0},
			},
			Items: map[uuid.UUID][]FieldValue{
				itemID: {{FieldID: fieldID, Value: true}},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*List)
		wantErr bool
	}{
		{"valid list", func(l *List) {}, false},
		{"nil field", func(l *List) { l.Fields[fieldID] = nil }, true},
		{"empty field name", func(l *List) { l.Fields[fieldID].Name = "" }, true},
		{"unknown field type", func(l *List) { l.Fields[fieldID].Type = "timestamp" }, true},
		{"value references unknown field", func(l *List) {
			l.Items[itemID] = []FieldValue{{FieldID: otherID, Value: true}}
		}, true},
		{"non-scalar value", func(l *List) {
			l.Items[itemID] = []FieldValue{{FieldID: fieldID, Value: []string{"a"}}}
		}, true},
		{"number value", func(l *List) {
			l.Fields[fieldID].Type = FieldTypeNumber
			l.Items[itemID] = []FieldValue{{FieldID: fieldID, Value: float64(3)}}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid()
			tt.mutate(l)
			err := l.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Errorf("Validate() error = %T, want ValidationError", err)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(Validationf("bad value %d", 7)) {
		t.Error("IsValidation(Validationf(...)) = false, want true")
	}
	if IsValidation(errors.New("plain")) {
		t.Error("IsValidation(plain error) = true, want false")
	}
	if IsValidation(ErrNotFound) {
		t.Error("IsValidation(ErrNotFound) = true, want false")
	}
}
