package potato

import "testing"

func TestNewTransitionMatrix_RejectsNonPositiveDimension(t *testing.T) {
	if _, err := newTransitionMatrix(0); err == nil {
		t.Fatal("expected error for n=0")
	}
	if _, err := newTransitionMatrix(-1); err == nil {
		t.Fatal("expected error for n=-1")
	}
}

func TestTransitionMatrix_SetAtRoundTrip(t *testing.T) {
	m, err := newTransitionMatrix(2)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Set(0, 1, 0.75); err != nil {
		t.Fatal(err)
	}
	v, err := m.At(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0.75 {
		t.Fatalf("got %g, want 0.75", v)
	}
	if m.Rows() != 2 {
		t.Fatalf("got Rows()=%d, want 2", m.Rows())
	}
}

func TestTransitionMatrix_AtSetOutOfBounds(t *testing.T) {
	m, err := newTransitionMatrix(2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.At(2, 0); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
	if err := m.Set(0, -1, 1.0); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}

func TestTransitionMatrix_RowSum(t *testing.T) {
	m, err := newTransitionMatrix(2)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Set(0, 0, 0.4); err != nil {
		t.Fatal(err)
	}
	if err := m.Set(0, 1, 0.6); err != nil {
		t.Fatal(err)
	}
	sum, err := m.RowSum(0)
	if err != nil {
		t.Fatal(err)
	}
	if sum != 1.0 {
		t.Fatalf("got RowSum=%g, want 1.0", sum)
	}
	if _, err := m.RowSum(5); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}
