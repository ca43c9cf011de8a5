package cst

import (
	"errors"
	"testing"
)

func TestWithChanges(t *testing.T) {
	name := NewName("old")
	got, err := WithChanges(name, Changes{"Value": "new"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != "new" {
		t.Errorf("Value = %q, want %q", got.Value, "new")
	}
	if name.Value != "old" {
		t.Error("input node was mutated")
	}
	if got == name {
		t.Error("result should be a new node")
	}
}

func TestWithChangesMultipleFields(t *testing.T) {
	assign := NewAssign(NewName("x"), NewInteger("1"))
	got, err := WithChanges(assign, Changes{
		"Value":     NewInteger("2"),
		"Semicolon": &Semicolon{Before: " ", After: " "},
	})
	if err != nil {
		t.Fatal(err)
	}
	if Render(got) != "x = 2 ; " {
		t.Errorf("render = %q", Render(got))
	}
	if assign.Semicolon != nil {
		t.Error("input node was mutated")
	}
}

func TestWithChangesNilClearsOptional(t *testing.T) {
	assign := NewAssign(NewName("x"), NewInteger("1"))
	assign.Semicolon = &Semicolon{Before: "", After: " "}
	got, err := WithChanges(assign, Changes{"Semicolon": nil})
	if err != nil {
		t.Fatal(err)
	}
	if got.Semicolon != nil {
		t.Error("Semicolon should be cleared")
	}
}

func TestWithChangesErrors(t *testing.T) {
	tests := []struct {
		name    string
		changes Changes
	}{
		{"unknown field", Changes{"NoSuchField": 1}},
		{"wrong type", Changes{"Value": 42}},
		{"nil on scalar", Changes{"Value": nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WithChanges(NewName("x"), tt.changes)
			var shapeErr *ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("err = %v, want *ShapeError", err)
			}
		})
	}
}
