package region

import "testing"

func TestImplicitManagerFindEverything(t *testing.T) {
	m := NewImplicitManager("out.hex")
	for _, addr := range []uint16{0x0000, 0x1234, 0xFFFF} {
		if m.Find(addr) == nil {
			t.Errorf("expected implicit region to cover 0x%04X", addr)
		}
	}
}

func TestManagerFirstMatchWins(t *testing.T) {
	m, err := NewManager("base", []RegionConfig{
		{Name: "a", Start: 0x0000, End: 0x0FFF},
		{Name: "b", Start: 0x0800, End: 0x1FFF},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := m.Find(0x0900)
	if r == nil || r.Name != "a" {
		t.Errorf("expected overlap to resolve to region 'a', got %+v", r)
	}
	if m.Find(0x1500).Name != "b" {
		t.Error("expected addresses past the overlap to resolve to region 'b'")
	}
	if m.Find(0x2000) != nil {
		t.Error("expected addresses outside both regions to find nothing")
	}
}

func TestManagerRejectsInvertedBounds(t *testing.T) {
	_, err := NewManager("base", []RegionConfig{{Name: "bad", Start: 0x1000, End: 0x0000}})
	if err == nil {
		t.Error("expected error for start > end")
	}
}

func TestEmitByteContiguity(t *testing.T) {
	m := NewImplicitManager("out.hex")
	r := m.Regions[0]

	r.EmitByte(0xAA, 0x0000)
	r.EmitByte(0xBB, 0x0001)
	r.EmitByte(0xCC, 0x0010)

	want := "@0000\nAA\nBB\n@0010\nCC\n"
	if got := r.Text(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !r.HasContent() {
		t.Error("expected HasContent to be true after emitting")
	}
}

func TestInvalidateContiguityForcesFreshAddr(t *testing.T) {
	m := NewImplicitManager("out.hex")
	r := m.Regions[0]

	r.EmitByte(0x01, 0x0000)
	r.EmitByte(0x02, 0x0001) // would normally be contiguous, no @ line
	m.InvalidateContiguity()
	r.EmitByte(0x03, 0x0002) // forced fresh @ line despite being contiguous

	want := "@0000\n01\n02\n@0002\n03\n"
	if got := r.Text(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRegionWithNoContent(t *testing.T) {
	m := NewImplicitManager("out.hex")
	if m.Regions[0].HasContent() {
		t.Error("fresh region should report no content")
	}
	if m.Regions[0].Text() != "" {
		t.Error("fresh region should render empty text")
	}
}
