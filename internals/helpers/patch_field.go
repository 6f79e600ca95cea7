package helper

import "encoding/json"

/* =========================================================
   PATCH FIELD: tri-state (absent | null | value)
   ========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

// IsNull: dikirim eksplisit sebagai null.
func (p PatchField[T]) IsNull() bool { return p.Present && p.Value == nil }

// Set builds a present field holding v (handy in tests and internal callers).
func Set[T any](v T) PatchField[T] { return PatchField[T]{Present: true, Value: &v} }

// Null builds a present, explicitly cleared field.
func Null[T any]() PatchField[T] { return PatchField[T]{Present: true} }
