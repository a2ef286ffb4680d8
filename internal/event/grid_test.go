package event

import (
	"reflect"
	"testing"
)

func intp(n int) *int { return &n }

func TestParseGridLine(t *testing.T) {
	d := newTestDecoder()
	ev, err := d.Decode("grid_line", []any{
		int64(1), int64(0), int64(0),
		[]any{[]any{"a", int64(5), int64(2)}},
	})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := GridLine{
		Grid:     1,
		Row:      0,
		ColStart: 0,
		Cells:    []Cell{{Text: "a", HlID: intp(5), Repeat: intp(2)}},
	}
	if !reflect.DeepEqual(ev, want) {
		t.Errorf("event = %#v, want %#v", ev, want)
	}
}

func TestParseGridLineOptionalCellFields(t *testing.T) {
	d := newTestDecoder()
	ev, err := d.Decode("grid_line", []any{
		int64(2), int64(3), int64(7),
		[]any{
			[]any{"x", int64(1)},
			[]any{"y"},
		},
		true,
	})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gl, ok := ev.(GridLine)
	if !ok {
		t.Fatalf("event is %T, want GridLine", ev)
	}
	if !gl.Wrap {
		t.Error("wrap flag not picked up")
	}
	if gl.Cells[0].Repeat != nil {
		t.Errorf("cell 0 repeat = %v, want nil", *gl.Cells[0].Repeat)
	}
	if gl.Cells[1].HlID != nil {
		t.Errorf("cell 1 hl_id = %v, want nil (continues previous)", *gl.Cells[1].HlID)
	}
}

func TestParseGridLineRejectsMistypedCell(t *testing.T) {
	d := newTestDecoder()
	_, err := d.Decode("grid_line", []any{
		int64(1), int64(0), int64(0),
		[]any{[]any{"a", "not-an-id"}},
	})
	if err == nil {
		t.Fatal("expected error for mistyped hl_id")
	}
}

func TestParseGridScroll(t *testing.T) {
	d := newTestDecoder()
	ev, err := d.Decode("grid_scroll", []any{
		int64(1), int64(0), int64(20), int64(0), int64(80), int64(-3), int64(0),
	})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := GridScroll{Grid: 1, Top: 0, Bot: 20, Left: 0, Right: 80, Rows: -3, Cols: 0}
	if !reflect.DeepEqual(ev, want) {
		t.Errorf("event = %#v, want %#v", ev, want)
	}
}

func TestParseGridResizeAndClear(t *testing.T) {
	d := newTestDecoder()
	ev, err := d.Decode("grid_resize", []any{int64(1), int64(120), int64(40)})
	if err != nil {
		t.Fatalf("Decode grid_resize: %v", err)
	}
	if want := (GridResize{Grid: 1, Width: 120, Height: 40}); ev != want {
		t.Errorf("event = %#v, want %#v", ev, want)
	}

	ev, err = d.Decode("grid_clear", []any{int64(4)})
	if err != nil {
		t.Fatalf("Decode grid_clear: %v", err)
	}
	if want := (GridClear{Grid: 4}); ev != want {
		t.Errorf("event = %#v, want %#v", ev, want)
	}
}

func TestParseGridLineMissingRequiredField(t *testing.T) {
	d := newTestDecoder()
	_, err := d.Decode("grid_line", []any{int64(1), int64(0)})
	if err == nil {
		t.Fatal("expected error for missing col_start")
	}
}
